package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the vocabulary used to derive replacement schema names.
type Config struct {
	// MaxNameLength is the longest schema name, in characters, left untouched.
	MaxNameLength int `json:"maxNameLength" yaml:"maxNameLength"`
	// DomainKeywords are namespace segments recognised inside paged responses.
	DomainKeywords []string `json:"domainKeywords" yaml:"domainKeywords"`
	// StripTokens are removed from the start or end of a paged response type name.
	StripTokens []string `json:"stripTokens" yaml:"stripTokens"`
}

// MinNameLength leaves room for the hashed fallback name "Schema_NNNN".
const MinNameLength = len("Schema_9999")

func Default() Config {
	return Config{
		MaxNameLength:  100,
		DomainKeywords: []string{"Transactions", "Customers", "SettlementBatches", "Terminals"},
		StripTokens:    []string{"Response", "GetIsv", "Get", "Isv"},
	}
}

// Load decodes the YAML file at path over the defaults. Omitted fields keep
// their default value.
func Load(path string) (cfg Config, err error) {
	cfg = Default()
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("fail to read config file: %w", err)
	}
	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("fail to decode config file: %w", err)
	}
	if cfg.MaxNameLength < MinNameLength {
		return cfg, fmt.Errorf("invalid maxNameLength %d: must be at least %d", cfg.MaxNameLength, MinNameLength)
	}
	return
}
