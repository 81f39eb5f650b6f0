package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".mother"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for scan pipeline settings.
const envPrefix = "MOTHER"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// DefaultIndexingTimeoutSec is how long a scan waits for a freshly started
// LSP server to finish indexing before proceeding anyway.
const DefaultIndexingTimeoutSec = 30

// DefaultNeo4jURI is the connection string assumed for a local development
// Neo4j instance.
const DefaultNeo4jURI = "bolt://localhost:7687"

// DefaultNeo4jUser is the default Neo4j username.
const DefaultNeo4jUser = "neo4j"

// DefaultNeo4jDatabase is the default Neo4j database name.
const DefaultNeo4jDatabase = "neo4j"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) && !errors.Is(readErr, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("neo4j.uri", DefaultNeo4jURI)
	viperCfg.SetDefault("neo4j.user", DefaultNeo4jUser)
	viperCfg.SetDefault("neo4j.database", DefaultNeo4jDatabase)

	viperCfg.SetDefault("scan.languages", []string{})
	viperCfg.SetDefault("scan.indexing_timeout_sec", DefaultIndexingTimeoutSec)
	viperCfg.SetDefault("scan.version", "dev")

	viperCfg.SetDefault("lsp_servers", []map[string]any{})
}
