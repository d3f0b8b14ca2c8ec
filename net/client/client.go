package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/consts"
	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/net/resp"
	"github.com/ncobase/taskdesk/tracing"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
)

var (
	// ErrUnauthorized is returned for 401 and 429 answers; the session is over.
	ErrUnauthorized = errors.New("session expired or rejected")
	// ErrNoCredentials is returned by token sources that hold no token.
	ErrNoCredentials = errors.New("not logged in")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("remote service unavailable")
)

// UnauthorizedFunc is called once per 401/429 answer.
type UnauthorizedFunc func(ctx context.Context, status int)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// TokenSource supplies the bearer token; nil sends every request anonymously.
	TokenSource oauth2.TokenSource
	// Breaker settings, nil uses the defaults.
	Breaker *config.Breaker
	// OnUnauthorized tears the session down.
	OnUnauthorized UnauthorizedFunc
	// Transport is the base round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
	UserAgent string
}

// Client talks to the todo API.
type Client struct {
	base           *url.URL
	authed         *http.Client
	anon           *http.Client
	breaker        *gobreaker.CircuitBreaker
	onUnauthorized UnauthorizedFunc
}

// Request describes one remote call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// JSON body, mutually exclusive with Form
	JSON any
	Form url.Values
	// Public requests are sent without the bearer token
	Public bool
}

// New creates a client from opts.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	rt := opts.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	rt = &headerTransport{base: rt, userAgent: opts.UserAgent}

	c := &Client{
		base:           base,
		anon:           &http.Client{Transport: rt, Timeout: opts.Timeout},
		breaker:        newBreaker(base.Host, opts.Breaker),
		onUnauthorized: opts.OnUnauthorized,
	}
	if opts.TokenSource != nil {
		c.authed = &http.Client{
			Transport: &oauth2.Transport{Source: opts.TokenSource, Base: rt},
			Timeout:   opts.Timeout,
		}
	} else {
		c.authed = c.anon
	}
	return c, nil
}

func newBreaker(name string, s *config.Breaker) *gobreaker.CircuitBreaker {
	if s == nil {
		s = &config.Breaker{MaxRequests: 1, Interval: 30 * time.Second, Timeout: 15 * time.Second, MinRequests: 5, FailureRatio: 0.6}
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.FailureRatio
		},
		// only transport errors and 5xx answers count against the remote
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) {
				return true
			}
			var ex *resp.Exception
			return errors.As(err, &ex) && ex.Status < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf(context.Background(), "circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// Do sends r and decodes the response envelope.
func (c *Client) Do(ctx context.Context, r *Request) (*resp.Envelope, error) {
	ctx, span := tracing.StartSpan(ctx, "client."+strings.ToLower(r.Method),
		attribute.String("http.method", r.Method),
		attribute.String("http.path", r.Path),
	)
	var err error
	defer func() { tracing.End(span, err) }()

	var out any
	out, err = c.breaker.Execute(func() (any, error) {
		return c.do(ctx, r)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, err
	}
	return out.(*resp.Envelope), nil
}

func (c *Client) do(ctx context.Context, r *Request) (*resp.Envelope, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	hc := c.authed
	if r.Public {
		hc = c.anon
	}
	start := time.Now()
	res, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoCredentials) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrNoCredentials)
		}
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer func() { _ = res.Body.Close() }()

	logger.Debugf(ctx, "%s %s -> %d (%s)", r.Method, req.URL.Path, res.StatusCode, time.Since(start))

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, res.Body)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx, res.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, resp.NewException(res.StatusCode, ""))
	}
	return resp.Decode(res.StatusCode, res.Body)
}

func (c *Client) newRequest(ctx context.Context, r *Request) (*http.Request, error) {
	u, err := c.resolve(r.Path)
	if err != nil {
		return nil, err
	}
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(b), consts.ContentTypeJSON
	case r.Form != nil:
		body, contentType = strings.NewReader(r.Form.Encode()), consts.ContentTypeForm
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// resolve joins path onto the base URL; a leading slash is ignored so that
// paths always stay under the base.
func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.base.ResolveReference(ref), nil
}

// Get sends a GET with query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*resp.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*resp.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, JSON: body})
}

// Put sends body as JSON; a nil body sends none.
func (c *Client) Put(ctx context.Context, path string, body any) (*resp.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, JSON: body})
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*resp.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostForm sends form without credentials.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*resp.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form, Public: true})
}

// IsUnauthorized reports whether err ended the session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Code returns the ecode of err, ecode.OK for nil.
func Code(err error) int {
	if err == nil {
		return ecode.OK
	}
	var ex *resp.Exception
	switch {
	case errors.As(err, &ex):
		return ex.Code
	case errors.Is(err, ErrUnauthorized):
		return ecode.Unauthorized
	case errors.Is(err, ErrUnavailable):
		return ecode.ServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return ecode.Deadline
	default:
		return ecode.ServerErr
	}
}
