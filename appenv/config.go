package appenv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvDeployEnv overrides the detected classification when non-empty.
const EnvDeployEnv = "DEPLOY_ENV"

// DotEnvFile is the name of the local environment file read by LoadDotEnv.
const DotEnvFile = ".env"

// Config holds the environment variables appenv reads.
type Config struct {
	DeployEnv string `env:"DEPLOY_ENV"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads <rootDir>/.env into the process environment, if the root
// directory is known and the file exists. Variables that are already set are
// left untouched. Call Reset afterwards when the file may set DEPLOY_ENV.
func (c *Context) LoadDotEnv() error {
	root := c.RootDir()
	if root == "" {
		return nil
	}

	path := filepath.Join(root, DotEnvFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
