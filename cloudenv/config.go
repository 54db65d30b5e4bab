package cloudenv

import (
	"github.com/caarlos0/env/v11"
)

// Environment variables read by this package.
const (
	EnvVCAPApplication       = "VCAP_APPLICATION"
	EnvVCAPServices          = "VCAP_SERVICES"
	EnvKubernetesServiceHost = "KUBERNETES_SERVICE_HOST"
	EnvPort                  = "PORT"
)

// DefaultPort is used when PORT is unset or empty.
const DefaultPort = "3000"

// Config is the platform-injected environment.
type Config struct {
	VCAPApplication       string `env:"VCAP_APPLICATION"`
	VCAPServices          string `env:"VCAP_SERVICES"`
	KubernetesServiceHost string `env:"KUBERNETES_SERVICE_HOST"`
	Port                  string `env:"PORT"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}
