package client

import (
	"net/http"

	"github.com/ncobase/taskdesk/consts"
	"github.com/ncobase/taskdesk/ctxutil"
	"github.com/ncobase/taskdesk/version"
)

// headerTransport stamps correlation headers on every outgoing request.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	requestID := ctxutil.GetRequestID(r.Context())
	if requestID == "" {
		requestID = ctxutil.NewRequestID()
	}
	r.Header.Set(consts.RequestIDKey, requestID)
	if traceID := ctxutil.GetTraceID(r.Context()); traceID != "" {
		r.Header.Set(consts.TraceKey, traceID)
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", consts.ContentTypeJSON)
	}
	ua := t.userAgent
	if ua == "" {
		ua = "taskdesk/" + version.Version
	}
	r.Header.Set("User-Agent", ua)

	return t.base.RoundTrip(r)
}
