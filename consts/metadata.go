package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token type
const BearerKey string = "Bearer"

// ContentTypeJSON json request body content type
const ContentTypeJSON string = "application/json;charset=UTF-8"

// ContentTypeForm form request body content type
const ContentTypeForm string = "application/x-www-form-urlencoded"

// TraceKey trace id header sent with every remote call
const TraceKey string = "X-Trace-ID"

// RequestIDKey per call request id header
const RequestIDKey string = "X-Request-ID"

// UserKey context key of the signed in user id
const UserKey string = "x-td-uid"

// UsernameKey context key of the signed in username
const UsernameKey string = "x-td-uname"

// TotalKey result total with response
const TotalKey string = "total"
