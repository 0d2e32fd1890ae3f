package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Settings struct {
	DataSource        string
	ListenPort        int
	PageSize          int
	TopFeatures       int
	Neighbors         int
	LoadTimeout       time.Duration
	CategoricalFields []string
	MaxDistinctValues int
}

type ConfigFile struct {
	Data struct {
		Source      string `yaml:"source"`
		LoadTimeout string `yaml:"loadTimeout"`
	} `yaml:"data"`

	Server struct {
		ListenPort int `yaml:"listenPort"`
		PageSize   int `yaml:"pageSize"`
	} `yaml:"server"`

	Analysis struct {
		TopFeatures       int      `yaml:"topFeatures"`
		Neighbors         int      `yaml:"neighbors"`
		CategoricalFields []string `yaml:"categoricalFields"`
		MaxDistinctValues int      `yaml:"maxDistinctValues"`
	} `yaml:"analysis"`
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	loadTimeout, err := time.ParseDuration(config.Data.LoadTimeout)
	if err != nil {
		loadTimeout = 10 * time.Second
	}

	source := getEnvOrDefault("DATA_SOURCE", config.Data.Source)
	if source == "" {
		return Settings{}, fmt.Errorf("data source is required")
	}

	settings := Settings{
		DataSource:        source,
		ListenPort:        getIntFromEnvOrConfig("LISTEN_PORT", config.Server.ListenPort, 8090),
		PageSize:          getIntFromEnvOrConfig("PAGE_SIZE", config.Server.PageSize, 10),
		TopFeatures:       getIntFromEnvOrConfig("TOP_FEATURES", config.Analysis.TopFeatures, 5),
		Neighbors:         getIntFromEnvOrConfig("NEIGHBORS", config.Analysis.Neighbors, 5),
		LoadTimeout:       loadTimeout,
		CategoricalFields: getListFromEnvOrConfig("CATEGORICAL_FIELDS", config.Analysis.CategoricalFields),
		MaxDistinctValues: getIntFromEnvOrConfig("MAX_DISTINCT_VALUES", config.Analysis.MaxDistinctValues, 5),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	source, err := getEnvRequired("DATA_SOURCE")
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		DataSource:        source,
		ListenPort:        getIntOrDefault("LISTEN_PORT", 8090),
		PageSize:          getIntOrDefault("PAGE_SIZE", 10),
		TopFeatures:       getIntOrDefault("TOP_FEATURES", 5),
		Neighbors:         getIntOrDefault("NEIGHBORS", 5),
		LoadTimeout:       getDurationOrDefault("LOAD_TIMEOUT", 10*time.Second),
		CategoricalFields: splitOrDefault(os.Getenv("CATEGORICAL_FIELDS"), nil),
		MaxDistinctValues: getIntOrDefault("MAX_DISTINCT_VALUES", 5),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func getEnvRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is missing", key)
	}
	return v, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func splitOrDefault(v string, def []string) []string {
	if v == "" {
		return def
	}
	return strings.Split(v, ",")
}

func getListFromEnvOrConfig(key string, configValue []string) []string {
	if env := os.Getenv(key); env != "" {
		return strings.Split(env, ",")
	}
	return configValue
}

func getIntFromEnvOrConfig(key string, configValue, defaultValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

// validateSettings performs validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.DataSource == "" {
		return fmt.Errorf("data source is required")
	}

	if settings.ListenPort < 1024 || settings.ListenPort > 65535 {
		return fmt.Errorf("listen port must be between 1024 and 65535, got %d", settings.ListenPort)
	}
	if settings.PageSize <= 0 || settings.PageSize > 500 {
		return fmt.Errorf("page size must be between 1 and 500, got %d", settings.PageSize)
	}
	if settings.TopFeatures <= 0 || settings.TopFeatures > 50 {
		return fmt.Errorf("top features must be between 1 and 50, got %d", settings.TopFeatures)
	}
	if settings.Neighbors <= 0 || settings.Neighbors > 100 {
		return fmt.Errorf("neighbors must be between 1 and 100, got %d", settings.Neighbors)
	}
	if settings.LoadTimeout < time.Second || settings.LoadTimeout > 5*time.Minute {
		return fmt.Errorf("load timeout must be between 1s and 5m, got %v", settings.LoadTimeout)
	}
	if settings.MaxDistinctValues <= 0 || settings.MaxDistinctValues > 100 {
		return fmt.Errorf("max distinct values must be between 1 and 100, got %d", settings.MaxDistinctValues)
	}

	return nil
}
