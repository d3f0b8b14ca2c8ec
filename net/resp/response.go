package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/ncobase/taskdesk/ecode"
)

// Exception represents a failed remote call.
type Exception struct {
	Status  int               `json:"status,omitempty"`  // HTTP status
	Code    int               `json:"code,omitempty"`    // Business code
	Message string            `json:"message,omitempty"` // Message
	Errors  map[string]string `json:"errors,omitempty"`  // Field errors
}

// Error implements error.
func (e *Exception) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ecode.Text(e.Code)
	}
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, field := range slices.Sorted(maps.Keys(e.Errors)) {
		parts = append(parts, e.Errors[field])
	}
	return fmt.Sprintf("%s (status %d): %s", msg, e.Status, strings.Join(parts, "; "))
}

// NewException builds an exception for an HTTP status.
func NewException(status int, message string) *Exception {
	code := ecode.FromHTTPStatus(status)
	if code == ecode.OK {
		code = ecode.ServerErr
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = ecode.Text(code)
	}
	return &Exception{Status: status, Code: code, Message: message}
}

// Envelope is the body every endpoint answers with.
type Envelope struct {
	Status      int             `json:"status,omitempty"`
	Message     string          `json:"message,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Total       int             `json:"total,omitempty"`
	Detail      json.RawMessage `json:"detail,omitempty"`
	AccessToken string          `json:"access_token,omitempty"` // login only
	TokenType   string          `json:"token_type,omitempty"`   // login only
}

// fieldDetail is one entry of a validation detail list.
type fieldDetail struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// Decode reads body and maps it to an envelope. A non-2xx HTTP status, or a
// body status other than 200 when the body carries one, yields an *Exception.
func Decode(status int, body io.Reader) (*Envelope, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	env := &Envelope{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			if status < 200 || status >= 300 {
				return nil, NewException(status, "")
			}
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	if status < 200 || status >= 300 {
		return nil, env.exception(status)
	}
	if env.Status != 0 && env.Status != http.StatusOK {
		return nil, env.exception(env.Status)
	}
	return env, nil
}

func (e *Envelope) exception(status int) *Exception {
	ex := NewException(status, e.Message)
	msg, fields := parseDetail(e.Detail)
	if e.Message == "" && msg != "" {
		ex.Message = msg
	}
	if len(fields) > 0 {
		ex.Code = ecode.ParamErr
		ex.Errors = fields
	}
	return ex
}

// Into decodes the result field into v. An absent result leaves v untouched.
func (e *Envelope) Into(v any) error {
	if len(e.Result) == 0 || string(e.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Result, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// parseDetail understands both `"detail": "message"` and
// `"detail": [{"loc": ["body", "field"], "msg": "..."}]`.
func parseDetail(raw json.RawMessage) (string, map[string]string) {
	if len(raw) == 0 {
		return "", nil
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg, nil
	}
	var list []fieldDetail
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", nil
	}
	fields := make(map[string]string, len(list))
	for _, d := range list {
		field := "_"
		if n := len(d.Loc); n > 0 {
			field = fmt.Sprint(d.Loc[n-1])
		}
		if _, seen := fields[field]; !seen {
			fields[field] = d.Msg
		}
	}
	return "", fields
}
