package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file-shaped form of the extractor options. Zero values
// defer to the library defaults.
type Config struct {
	English  English  `yaml:"english"`
	Japanese Japanese `yaml:"japanese"`
	Chinese  Chinese  `yaml:"chinese"`

	MaxSpan   int  `yaml:"max_span"`
	CacheSize int  `yaml:"cache_size"`
	StripHTML bool `yaml:"strip_html"`
}

type English struct {
	// TaggerURL points at a CoreNLP compatible server. Empty selects
	// the in-process tagger.
	TaggerURL string   `yaml:"tagger_url"`
	PosFilter []string `yaml:"pos_filter"`
	Lowercase bool     `yaml:"lowercase"`
	Stem      bool     `yaml:"stem"`
}

type Japanese struct {
	Dict      string   `yaml:"dict"`       // "ipa" or "uni"
	SplitMode string   `yaml:"split_mode"` // "A", "B" or "C"
	PosFilter []string `yaml:"pos_filter"`
}

type Chinese struct {
	PosFilter []string `yaml:"pos_filter"`
}

// Load reads extractor configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}
