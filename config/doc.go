// Package config loads taskdesk configuration with Viper from a YAML, JSON or
// TOML file plus TASKDESK_* environment overrides.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("")            // search ~/.taskdesk, ., /etc/taskdesk
//	cfg, err := config.LoadConfig("./taskdesk.yaml")
//
// # Configuration Format
//
//	app_name: taskdesk
//	api:
//	  base_url: https://todo.example.com/api/
//	  timeout: 10s
//	  query_dialect: filter        # or plain
//	  endpoints:
//	    list: todo/list
//	    assignee: assignee
//	    todo: todo
//	    login: login
//	  breaker:
//	    min_requests: 5
//	    failure_ratio: 0.6
//	paging:
//	  limit: 10
//	session:
//	  credentials_file: ~/.taskdesk/credentials.json
//	cache:
//	  redis:
//	    addr: localhost:6379
//	  assignee_ttl: 5m
//	tracing:
//	  endpoint: localhost:4317     # OTLP/gRPC collector, empty disables export
//	  sampling_rate: 1
//	logger:
//	  level: 4
//	  format: text
//	  output: stderr
//
// # Hot Reload
//
//	cfg.Watch(func(c *config.Config) { logger.StdLogger().SetLevel(logrus.Level(c.Logger.Level)) }, nil)
package config
