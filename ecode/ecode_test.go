package ecode

import (
	"net/http"
	"testing"
)

func TestFromHTTPStatus(t *testing.T) {
	cases := map[int]int{
		http.StatusOK:                  OK,
		http.StatusCreated:             OK,
		http.StatusUnauthorized:        Unauthorized,
		http.StatusTooManyRequests:     TooManyRequests,
		http.StatusNotFound:            NothingFound,
		http.StatusTeapot:              RequestErr,
		http.StatusBadGateway:          ServerErr,
		http.StatusServiceUnavailable:  ServiceUnavailable,
		http.StatusUnprocessableEntity: ParamErr,
	}
	for status, want := range cases {
		if got := FromHTTPStatus(status); got != want {
			t.Errorf("FromHTTPStatus(%d) = %d, want %d", status, got, want)
		}
	}
}

func TestTextFallsBackToServerErr(t *testing.T) {
	if got := Text(-9999); got != Text(ServerErr) {
		t.Errorf("unexpected fallback text %q", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	if got := ToHTTPStatus(ParamErr); got != http.StatusUnprocessableEntity {
		t.Errorf("ToHTTPStatus(ParamErr) = %d", got)
	}
	if got := ToHTTPStatus(-9999); got != http.StatusInternalServerError {
		t.Errorf("ToHTTPStatus(-9999) = %d", got)
	}
	for _, code := range []int{NothingFound, Conflict, Deadline} {
		if back := FromHTTPStatus(ToHTTPStatus(code)); back != code {
			t.Errorf("code %d did not survive a status round trip, got %d", code, back)
		}
	}
}

func TestFieldMessages(t *testing.T) {
	if got := FieldIsRequired("title"); got != "title required" {
		t.Errorf("got %q", got)
	}
	if got := FieldIsRequired(); got != "required" {
		t.Errorf("got %q", got)
	}
	if got := InProgress("a submission"); got != "a submission is already in progress" {
		t.Errorf("got %q", got)
	}
	if got := Expired("session"); got != "session expired" {
		t.Errorf("got %q", got)
	}
}
