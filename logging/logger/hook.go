package logger

import (
	"github.com/sirupsen/logrus"
)

// DesensitizeHook masks credentials in every entry before it is formatted
type DesensitizeHook struct {
	d *Desensitizer
}

// NewDesensitizeHook creates a hook around d
func NewDesensitizeHook(d *Desensitizer) *DesensitizeHook {
	return &DesensitizeHook{d: d}
}

// Levels returns all log levels
func (h *DesensitizeHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire rewrites entry data and message in place
func (h *DesensitizeHook) Fire(entry *logrus.Entry) error {
	entry.Data = h.d.DesensitizeFields(entry.Data)
	entry.Message = h.d.DesensitizeString(entry.Message)
	return nil
}
