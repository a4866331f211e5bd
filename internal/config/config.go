package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/meshtopo/internal/logging"
	"github.com/aretw0/meshtopo/pkg/tables"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "meshtopo.yaml"

// Config holds the settings of a conversion run.
// Keys use snake_case in YAML and JSON files.
type Config struct {
	Input       string `mapstructure:"input"`
	Geometry    string `mapstructure:"geometry"`
	Topology    string `mapstructure:"topology"`
	EdgeIDs     string `mapstructure:"edge_ids"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsFile string `mapstructure:"metrics_file"`
	Keep3D      bool   `mapstructure:"keep_3d"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Geometry: "geometry.txt",
		Topology: "topology.txt",
		EdgeIDs:  tables.EdgeIDSynthetic.String(),
		LogLevel: "info",
	}
}

// Load reads a config file on top of the defaults.
// An empty path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		// Default to YAML
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := tables.ParseEdgeIDScheme(c.EdgeIDs); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Geometry != "" && c.Geometry == c.Topology {
		return fmt.Errorf("geometry and topology outputs must differ (both %q)", c.Geometry)
	}
	return nil
}
