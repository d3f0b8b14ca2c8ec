package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/ncobase/taskdesk/ctxutil"
	"github.com/ncobase/taskdesk/logging/logger/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := NewLogger()
	cleanup, err := l.Init(&config.Config{Level: int(logrus.DebugLevel), Format: "json", Output: "stderr"})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func TestLoggerAttachesContextFields(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-abc")
	ctx = ctxutil.SetRequestID(ctx, "req-1")
	ctx = ctxutil.SetUsername(ctx, "alice")
	l.Infof(ctx, "fetched %d tasks", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "fetched 3 tasks", line["msg"])
	assert.Equal(t, "trace-abc", line["trace_id"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "alice", line["user"])
	assert.Equal(t, "1.2.3", line["version"])
}

func TestLoggerMasksCredentials(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.WithContextFields(context.Background(), logrus.Fields{
		"access_token": "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiI3In0.sig",
		"path":         "todo/list",
	}).Warn("request sent with Bearer abc.def.ghi")

	out := buf.String()
	assert.NotContains(t, out, "eyJhbGciOiJIUzI1NiJ9")
	assert.NotContains(t, out, "abc.def.ghi")
	assert.Contains(t, out, "todo/list")
}

func TestDesensitizerNestedValues(t *testing.T) {
	d := NewDesensitizer(config.DefaultDesensitization())
	fields := d.DesensitizeFields(logrus.Fields{
		"body":    map[string]any{"username": "alice", "password": "hunter2"},
		"headers": map[string][]string{"Authorization": {"Bearer xyz"}},
		"empty":   "",
	})

	body := fields["body"].(map[string]any)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "******", body["password"])
	assert.Equal(t, []string{"******"}, fields["headers"].(map[string][]string)["Authorization"])
	assert.Equal(t, "", fields["empty"])
}

func TestDesensitizerDisabled(t *testing.T) {
	cfg := config.DefaultDesensitization()
	cfg.Enabled = false
	d := NewDesensitizer(cfg)
	fields := logrus.Fields{"password": "plain"}
	assert.Equal(t, fields, d.DesensitizeFields(fields))
	assert.Equal(t, "Bearer abc", d.DesensitizeString("Bearer abc"))
}
