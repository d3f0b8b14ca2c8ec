package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// report fields by their label, or json name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Engine returns the shared validator so callers can register custom tags.
func Engine() *validator.Validate { return validate }

// errorMessages maps language -> validation tag -> message template.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "%s required",
		"min":      "%s must be at least %s characters long",
		"max":      "%s must be no longer than %s characters",
		"oneof":    "%s must be one of: %s",
		"datetime": "%s must be a date in layout %s",
		"gte":      "%s must be greater than or equal to %s",
		"lte":      "%s must be less than or equal to %s",
	},
	"zh": {
		"required": "%s 为必填项",
		"min":      "%s 的长度不能少于 %s 个字符",
		"max":      "%s 的长度不能超过 %s 个字符",
		"oneof":    "%s 必须是 %s 之一",
		"datetime": "%s 必须符合日期格式 %s",
		"gte":      "%s 必须大于或等于 %s",
		"lte":      "%s 必须小于或等于 %s",
	},
}

// parseMessage builds a message for a failed tag in the requested language.
func parseMessage(field string, e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 && lang[0] != "" {
		msgLang = lang[0]
	}
	msgs, ok := errorMessages[msgLang]
	if !ok {
		msgs = errorMessages["en"]
	}
	if msg, ok := msgs[e.Tag()]; ok {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, field)
		case 2:
			return fmt.Sprintf(msg, field, e.Param())
		}
	}
	return fmt.Sprintf("%s is invalid: %s", field, e.Tag())
}

// ValidateStruct validates s (a struct or pointer to struct) and returns field
// label (or json name) -> message. An empty map means s is valid.
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return validationErrors
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors["_"] = err.Error()
		return validationErrors
	}
	for _, e := range validationErrs {
		field := e.Field()
		if _, seen := validationErrors[field]; seen {
			continue
		}
		validationErrors[field] = parseMessage(field, e, lang...)
	}
	return validationErrors
}
