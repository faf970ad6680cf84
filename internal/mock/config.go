package mock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a mock backend script. YAML, JSON and JSONC files are
// accepted; the extension decides the decoder.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock config: %w", err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mock config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate reports every problem in the script at once
func (c *Config) Validate() error {
	var errs []error

	names := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !knownCommand(name) {
			errs = append(errs, fmt.Errorf("unknown command %q", name))
			continue
		}
		if c.Commands[name].Delay < 0 {
			errs = append(errs, fmt.Errorf("%s: delay must not be negative", name))
		}
	}

	if p := c.Preview; p != nil && (p.ElapsedWeeks < 0 || p.RemainingWeeks < 0) {
		errs = append(errs, errors.New("preview: week counts must not be negative"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	return errors.Join(errs...)
}
