package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/consts"
	"github.com/ncobase/taskdesk/ctxutil"
	"github.com/ncobase/taskdesk/ecode"
	"github.com/ncobase/taskdesk/net/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL + "/api"
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestGetSendsBearerAndHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = io.WriteString(w, `{"status":200,"result":[1,2,3],"total":3}`)
	}, Options{TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc", TokenType: "Bearer"})})

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	env, err := c.Get(ctx, "todo/list", url.Values{"offset": {"0"}, "limit": {"10"}})
	require.NoError(t, err)

	var items []int
	require.NoError(t, env.Into(&items))
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, 3, env.Total)

	require.NotNil(t, got)
	assert.Equal(t, "/api/todo/list", got.URL.Path)
	assert.Equal(t, "limit=10&offset=0", got.URL.RawQuery)
	assert.Equal(t, "Bearer abc", got.Header.Get(consts.AuthorizationKey))
	assert.Equal(t, "trace-1", got.Header.Get(consts.TraceKey))
	assert.Len(t, got.Header.Get(consts.RequestIDKey), consts.RequestIDSize)
}

func TestPostFormIsPublic(t *testing.T) {
	var auth, contentType string
	var form url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get(consts.AuthorizationKey)
		contentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		form = r.PostForm
		_, _ = io.WriteString(w, `{"access_token":"t"}`)
	}, Options{TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc"})})

	_, err := c.PostForm(context.Background(), "/login", url.Values{"username": {"ann"}, "password": {"pw"}})
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Equal(t, consts.ContentTypeForm, contentType)
	assert.Equal(t, "ann", form.Get("username"))
}

func TestPostJSON(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"status":200,"message":"created"}`)
	}, Options{})

	env, err := c.Post(context.Background(), "todo", map[string]any{"title": "Draft report"})
	require.NoError(t, err)
	assert.Equal(t, "created", env.Message)
	assert.Equal(t, "Draft report", body["title"])
}

func TestUnauthorizedCallsHook(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusTooManyRequests} {
		var calls int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}, Options{OnUnauthorized: func(_ context.Context, s int) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, status, s)
		}})

		_, err := c.Get(context.Background(), "assignee", nil)
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	}
}

type emptySource struct{}

func (emptySource) Token() (*oauth2.Token, error) { return nil, ErrNoCredentials }

func TestMissingCredentials(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}, Options{TokenSource: emptySource{}})

	_, err := c.Get(context.Background(), "todo/list", nil)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, errors.Is(err, ErrNoCredentials))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestServerErrorIsException(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, Options{})

	_, err := c.Delete(context.Background(), "todo/1")
	var ex *resp.Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, http.StatusBadGateway, ex.Status)
	assert.Equal(t, ecode.ServerErr, Code(err))
}

func TestBreakerOpens(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{Breaker: &config.Breaker{MaxRequests: 1, MinRequests: 2, FailureRatio: 0.5, Timeout: 60e9}})

	for range 2 {
		_, err := c.Get(context.Background(), "todo/list", nil)
		require.Error(t, err)
	}
	_, err := c.Get(context.Background(), "todo/list", nil)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, ecode.ServiceUnavailable, Code(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, Options{Breaker: &config.Breaker{MaxRequests: 1, MinRequests: 1, FailureRatio: 0.1, Timeout: 60e9}})

	for range 3 {
		_, err := c.Get(context.Background(), "todo/missing", nil)
		assert.Equal(t, ecode.NothingFound, Code(err))
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
