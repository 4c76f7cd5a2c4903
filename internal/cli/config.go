package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every variable: SUBWATCH_OFFSET, SUBWATCH_TICK...
const envPrefix = "subwatch"

// envConfig holds fallbacks for flags that were not given on the command
// line.
type envConfig struct {
	Offset  string `envconfig:"OFFSET"`
	Tick    string `envconfig:"TICK"`
	LogFile string `envconfig:"LOG_FILE"`
}

var env envConfig

// loadEnv reads an optional .env from the working directory, then the
// process environment. Variables already set win over the file.
func loadEnv() (envConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return envConfig{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg envConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return envConfig{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
