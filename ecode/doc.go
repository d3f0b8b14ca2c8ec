// Package ecode defines the error codes the client reports, their messages,
// and the mapping between codes and HTTP statuses.
//
// Codes are grouped by range:
//   - 0: Success (OK)
//   - -100 to -199: Authentication errors (NoLogin, Unauthorized, TooManyRequests)
//   - -400 to -499: Request and resource errors
//   - -500+: Server and transport errors
//
// Remote statuses are mapped on the way in:
//
//	code := ecode.FromHTTPStatus(resp.StatusCode)
//	msg := ecode.Text(code)
//
// Field message helpers build the inline messages shown by the form:
//
//	ecode.FieldIsRequired("title") // "title required"
package ecode
