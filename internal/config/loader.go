package config

import (
	"fmt"
	"os"

	"github.com/revittco/datapath/internal/datapath"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the top-level datapath.yaml structure.
type FileConfig struct {
	DBPath    string           `yaml:"db_path,omitempty"`
	LogLevel  string           `yaml:"log_level,omitempty"`
	Datapaths []DatapathConfig `yaml:"datapaths"`
}

// DatapathConfig declares one named datapath descriptor.
type DatapathConfig struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// LoadFile reads, parses, and validates a YAML config file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates YAML config data.
func Parse(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *FileConfig) error {
	seen := make(map[string]bool, len(cfg.Datapaths))
	for i, d := range cfg.Datapaths {
		if d.Name == "" {
			return fmt.Errorf("datapaths[%d]: missing name", i)
		}
		if d.Pattern == "" {
			return fmt.Errorf("datapath %q: missing pattern", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("datapath %q: duplicate name", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Descriptors compiles every declared datapath into a descriptor,
// keyed by name.
func (cfg *FileConfig) Descriptors() (map[string]*datapath.Descriptor, error) {
	out := make(map[string]*datapath.Descriptor, len(cfg.Datapaths))
	for _, d := range cfg.Datapaths {
		desc, err := datapath.ParseDescriptor(d.Name, d.Pattern)
		if err != nil {
			return nil, err
		}
		out[d.Name] = desc
	}
	return out, nil
}
