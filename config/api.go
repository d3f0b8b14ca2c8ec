package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Query dialects understood by the list endpoint
const (
	DialectFilter = "filter" // titleFilter, assigneeFilter, statusFilter, ...
	DialectPlain  = "plain"  // search, user_id, status, ...
)

const defaultTimeout = 10 * time.Second

// API remote resource settings
type API struct {
	BaseURL   string
	Timeout   time.Duration
	Dialect   string
	Endpoints *Endpoints
	Breaker   *Breaker
}

// Endpoints paths relative to BaseURL
type Endpoints struct {
	List     string
	Assignee string
	Todo     string
	Login    string
}

// Breaker circuit breaker settings of the transport
type Breaker struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func getAPIConfig(v *viper.Viper) *API {
	base := v.GetString("api.base_url")
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	dialect := strings.ToLower(text(v, "api.query_dialect", DialectFilter))
	if dialect != DialectPlain {
		dialect = DialectFilter
	}
	return &API{
		BaseURL: base,
		Timeout: setting(v, "api.timeout", defaultTimeout, v.GetDuration),
		Dialect: dialect,
		Endpoints: &Endpoints{
			List:     text(v, "api.endpoints.list", "todo/list"),
			Assignee: text(v, "api.endpoints.assignee", "assignee"),
			Todo:     text(v, "api.endpoints.todo", "todo"),
			Login:    text(v, "api.endpoints.login", "login"),
		},
		Breaker: &Breaker{
			MaxRequests:  setting(v, "api.breaker.max_requests", 1, v.GetUint32),
			Interval:     setting(v, "api.breaker.interval", 30*time.Second, v.GetDuration),
			Timeout:      setting(v, "api.breaker.timeout", 15*time.Second, v.GetDuration),
			MinRequests:  setting(v, "api.breaker.min_requests", 5, v.GetUint32),
			FailureRatio: setting(v, "api.breaker.failure_ratio", 0.6, v.GetFloat64),
		},
	}
}
