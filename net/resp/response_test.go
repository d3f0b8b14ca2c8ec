package resp

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/ncobase/taskdesk/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSuccess(t *testing.T) {
	env, err := Decode(http.StatusOK, strings.NewReader(`{"status":200,"result":[{"n":1},{"n":2}],"total":7}`))
	require.NoError(t, err)
	assert.Equal(t, 7, env.Total)

	var items []struct{ N int }
	require.NoError(t, env.Into(&items))
	assert.Len(t, items, 2)
}

func TestDecodeEmptyBody(t *testing.T) {
	env, err := Decode(http.StatusNoContent, strings.NewReader(""))
	require.NoError(t, err)

	var v []int
	require.NoError(t, env.Into(&v))
	assert.Nil(t, v)
}

func TestDecodeBodyStatusFailure(t *testing.T) {
	_, err := Decode(http.StatusOK, strings.NewReader(`{"status":500,"message":"database unavailable"}`))
	var ex *Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 500, ex.Status)
	assert.Equal(t, ecode.ServerErr, ex.Code)
	assert.Equal(t, "database unavailable", ex.Message)
}

func TestDecodeHTTPFailure(t *testing.T) {
	_, err := Decode(http.StatusNotFound, strings.NewReader(`<html>not found</html>`))
	var ex *Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, ecode.NothingFound, ex.Code)
	assert.Equal(t, "Not Found", ex.Message)
}

func TestDecodeFieldDetail(t *testing.T) {
	body := `{"detail":[{"loc":["body","username"],"msg":"field required"},{"loc":["body","password"],"msg":"too short"}]}`
	_, err := Decode(http.StatusUnprocessableEntity, strings.NewReader(body))

	var ex *Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, ecode.ParamErr, ex.Code)
	assert.Equal(t, map[string]string{"username": "field required", "password": "too short"}, ex.Errors)
	assert.Equal(t, "Unprocessable Entity (status 422): too short; field required", ex.Error())
}

func TestDecodeStringDetail(t *testing.T) {
	_, err := Decode(http.StatusBadRequest, strings.NewReader(`{"detail":"Incorrect username or password"}`))

	var ex *Exception
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, "Incorrect username or password", ex.Message)
	assert.Empty(t, ex.Errors)
}

func TestDecodeMalformedSuccessBody(t *testing.T) {
	_, err := Decode(http.StatusOK, strings.NewReader(`{"status":`))
	require.Error(t, err)
	var ex *Exception
	assert.False(t, errors.As(err, &ex))
}
