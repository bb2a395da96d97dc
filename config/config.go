package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort uint16 `envconfig:"HEALTHMITRA_HTTP_SERVER_PORT" default:"8080" required:"true"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
