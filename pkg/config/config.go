// Package config loads YAML configuration files. Values may reference
// environment variables with $NAME or ${NAME} syntax; they are expanded
// before the YAML is decoded.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can check themselves
// after decoding.
type Validator interface {
	Validate() error
}

// Load decodes the YAML file at path into target. A missing file is an
// error; use LoadIfPresent when the file is optional.
func Load[T any](path string, target *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(path, data, target)
}

// LoadIfPresent decodes the YAML file at path into target, leaving target
// untouched when the file does not exist. The returned bool reports whether
// the file was loaded.
func LoadIfPresent[T any](path string, target *T) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, validate(target)
	}
	if err != nil {
		return false, fmt.Errorf("config: read %s: %w", path, err)
	}
	return true, decode(path, data, target)
}

func decode[T any](path string, data []byte, target *T) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return validate(target)
}

func validate[T any](target *T) error {
	v, ok := any(target).(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}
