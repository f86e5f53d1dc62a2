// internal/workers/requirements/save-generated-app/config.go
package savegeneratedapp

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
