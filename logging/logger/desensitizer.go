package logger

import (
	"regexp"
	"strings"

	"github.com/ncobase/taskdesk/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// Bearer credentials that leak into messages or header dumps
var defaultValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`), // JWT
}

// Desensitizer handles sensitive data masking in log fields
type Desensitizer struct {
	config   *config.Desensitization
	patterns []*regexp.Regexp
	mask     string
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	if cfg == nil {
		cfg = config.DefaultDesensitization()
	}
	d := &Desensitizer{
		config:   cfg,
		patterns: append([]*regexp.Regexp{}, defaultValuePatterns...),
		mask:     strings.Repeat(cfg.MaskChar, cfg.FixedMaskLength),
	}
	for _, pattern := range cfg.CustomPatterns {
		if regex, err := regexp.Compile(pattern); err == nil {
			d.patterns = append(d.patterns, regex)
		}
	}
	return d
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	if !d.config.Enabled {
		return fields
	}
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// DesensitizeString masks credentials embedded in free text
func (d *Desensitizer) DesensitizeString(str string) string {
	if !d.config.Enabled || str == "" {
		return str
	}
	for _, pattern := range d.patterns {
		str = pattern.ReplaceAllString(str, d.mask)
	}
	return str
}

// desensitizeValue processes a single value recursively
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if depth > 10 || value == nil {
		return value
	}
	if d.isSensitiveField(key) {
		if s, ok := value.(string); ok && s == "" {
			return s
		}
		return d.mask
	}

	switch v := value.(type) {
	case string:
		return d.DesensitizeString(v)
	case error:
		return d.DesensitizeString(v.Error())
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = d.desensitizeValue(k, item, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			out[k], _ = d.desensitizeValue(k, item, depth+1).(string)
		}
		return out
	case map[string][]string:
		out := make(map[string][]string, len(v))
		for k, items := range v {
			masked := make([]string, len(items))
			for i, item := range items {
				masked[i], _ = d.desensitizeValue(k, item, depth+1).(string)
			}
			out[k] = masked
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = d.DesensitizeString(item)
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	lowerName := strings.ToLower(fieldName)
	for _, sensitiveField := range d.config.SensitiveFields {
		lowerSensitiveField := strings.ToLower(sensitiveField)
		if d.config.ExactFieldMatch {
			if lowerName == lowerSensitiveField {
				return true
			}
		} else if strings.Contains(lowerName, lowerSensitiveField) {
			return true
		}
	}
	return false
}
