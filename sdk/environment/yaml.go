package environment

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML file at path into cfg. An empty path is a no-op so
// callers can pass an optional --config flag straight through.
func LoadYAML(path string, cfg any) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	return nil
}

// Load applies the YAML file (when given) and then the environment on top of
// it.
func Load(prefix, path string, cfg any) error {
	if err := LoadYAML(path, cfg); err != nil {
		return err
	}
	if err := ParseEnvTags(prefix, cfg); err != nil {
		return errors.Join(errors.New("parse environment"), err)
	}
	return nil
}
