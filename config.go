package geonames

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects the deployment-time settings of the service. Values come
// from an optional YAML file first, then environment variables override
// field by field.
type Config struct {
	Addr        string `yaml:"addr"`
	DatasetPath string `yaml:"dataset"`
	DatasetURL  string `yaml:"dataset_url"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig mirrors the reference deployment: the RU country dump served
// on port 8000.
func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1:8000",
		DatasetPath: "RU.txt",
		DatasetURL:  "",
		LogLevel:    "info",
	}
}

// LoadConfig builds the effective configuration. path may be empty, in which
// case only defaults and environment variables apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("GEONAMES_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("GEONAMES_DATASET"); ok {
		c.DatasetPath = v
	}
	if v, ok := os.LookupEnv("GEONAMES_DATASET_URL"); ok {
		c.DatasetURL = v
	}
	if v, ok := os.LookupEnv("GEONAMES_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}
