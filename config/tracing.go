package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracing OpenTelemetry export settings; an empty Endpoint disables export
type Tracing struct {
	Endpoint      string
	SamplingRate  float64
	BatchTimeout  time.Duration
	ExportTimeout time.Duration
}

func getTracingConfig(v *viper.Viper) *Tracing {
	return &Tracing{
		Endpoint:      v.GetString("tracing.endpoint"),
		SamplingRate:  setting(v, "tracing.sampling_rate", 1, v.GetFloat64),
		BatchTimeout:  setting(v, "tracing.batch_timeout", 5*time.Second, v.GetDuration),
		ExportTimeout: setting(v, "tracing.export_timeout", 10*time.Second, v.GetDuration),
	}
}
