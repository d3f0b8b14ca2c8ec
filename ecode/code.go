package ecode

import "net/http"

// Error codes
const (
	OK = 0

	NoLogin         = -101
	Unauthorized    = -103
	TooManyRequests = -129

	RequestErr = -400
	ParamErr   = -401

	AccessDenied = -403
	NothingFound = -404
	Conflict     = -409

	ServerErr          = -500
	ServiceUnavailable = -503
	Deadline           = -504
)

var (
	messages = map[int]string{
		OK:                 "ok",
		NoLogin:            "Account not logged in",
		Unauthorized:       "Unauthorized",
		TooManyRequests:    "Too many requests",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		AccessDenied:       "Access denied",
		NothingFound:       "Resource not found",
		Conflict:           "Resource conflict",
		ServerErr:          "Internal server error",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		NoLogin:            http.StatusUnauthorized,
		Unauthorized:       http.StatusUnauthorized,
		TooManyRequests:    http.StatusTooManyRequests,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusUnprocessableEntity,
		AccessDenied:       http.StatusForbidden,
		NothingFound:       http.StatusNotFound,
		Conflict:           http.StatusConflict,
		ServerErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
	}
)

// Text returns the message of code
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a code to an HTTP status
func ToHTTPStatus(code int) int {
	if status, ok := statuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromHTTPStatus maps an HTTP status to a code
func FromHTTPStatus(status int) int {
	switch {
	case status >= 200 && status < 300:
		return OK
	case status == http.StatusUnauthorized:
		return Unauthorized
	case status == http.StatusTooManyRequests:
		return TooManyRequests
	case status == http.StatusForbidden:
		return AccessDenied
	case status == http.StatusNotFound:
		return NothingFound
	case status == http.StatusConflict:
		return Conflict
	case status == http.StatusUnprocessableEntity:
		return ParamErr
	case status == http.StatusServiceUnavailable:
		return ServiceUnavailable
	case status == http.StatusGatewayTimeout:
		return Deadline
	case status >= 400 && status < 500:
		return RequestErr
	default:
		return ServerErr
	}
}
