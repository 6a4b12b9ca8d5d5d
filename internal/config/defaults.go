package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Query: QueryConfig{
			Window:    "day",
			Threshold: 100,
			Sections:  24,
			Pages:     1,
		},
		HTTP: HTTPConfig{
			UserAgent:      "besttime/1.0 (best posting time estimator)",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Dir:      "~/.cache/besttime",
			TTLHours: 6,
		},
		Logging: LoggingConfig{
			Level: "error",
		},
	}
}
