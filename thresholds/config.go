package thresholds

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// CatalogFile optionally points at a YAML file with guideline
	// overrides. Values present in the file replace the defaults,
	// everything else keeps the reference catalog.
	CatalogFile string `envconfig:"HEALTHMITRA_THRESHOLDS_FILE"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewCatalog builds the catalog consumed by the classifier and the trend
// analyzer. A malformed override file or an invalid resulting catalog is
// a startup failure, not something to classify around.
func NewCatalog(cfg *Config) (*Catalog, error) {
	catalog := Default()

	if cfg.CatalogFile != "" {
		raw, err := os.ReadFile(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("thresholds: unable to read catalog file %s: %w", cfg.CatalogFile, err)
		}
		if err := yaml.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("thresholds: unable to parse catalog file %s: %w", cfg.CatalogFile, err)
		}
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &catalog, nil
}
