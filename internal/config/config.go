// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/apidiff/internal/log"
)

// FileName is the config file looked up in the user config directory.
const FileName = "apidiff.yaml"

// ErrNotFound is returned by getters when a key has no value and no default
// was given.
var ErrNotFound = errors.New("config key not found")

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dot-prefixed keyspace tried before the bare key,
//     usually the subcommand name (e.g. "report.fail-on" before "fail-on").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-loaded configuration instance.
var Config Type

// Load reads the YAML configuration file and replaces the global Config. The
// namespace, if given, is kept on the loaded config.
func Load(namespace ...string) (Type, error) {
	path, err := File()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("failed to read config: %w", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	Config = Type{Source: path, Data: data}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}
	log.Debugf("config loaded: path=%s keys=%d", path, len(data))
	return Config, nil
}

// File returns the path of the config file. APIDIFF_CFG_FILE, when set, must
// name an existing regular file. Otherwise FileName in os.UserConfigDir is
// used if it exists.
func File() (string, error) {
	if p := os.Getenv("APIDIFF_CFG_FILE"); p != "" {
		info, err := os.Stat(p)
		switch {
		case err != nil:
			return "", fmt.Errorf("config file not found at APIDIFF_CFG_FILE path: %s", p)
		case info.IsDir():
			return "", fmt.Errorf("APIDIFF_CFG_FILE points to a directory: %s", p)
		}
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	p := filepath.Join(dir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, nil
	}
	return "", fmt.Errorf("no config file found in %s", dir)
}

// GetString returns the string at the dotted key path, or the default when
// the key is missing.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer at the dotted key path, or the default when the
// key is missing. YAML floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%s: value is not an int", key)
}

// GetStringSlice returns the string list at the dotted key path, or the
// default when the key is missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	items, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: value is not a list", key)
	}

	result := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: element %d is not a string", key, i)
		}
		result[i] = s
	}
	return result, nil
}

// Decode re-encodes the subtree at key and decodes it into out, which lets
// callers read structured sections (such as ignore rules) into typed values.
// A missing key leaves out untouched and returns ErrNotFound.
func Decode(key string, out interface{}) error {
	val, err := lookup(key)
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(val)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// lookup loads the config on first use and resolves key, trying the
// namespaced form first.
func lookup(key string) (interface{}, error) {
	if len(Config.Data) == 0 {
		ns := Config.Namespace
		if _, err := Load(ns); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
	}
	return Config.get(key)
}

// get walks the configuration tree along a dotted key path (e.g.
// "colors.title"). With a Namespace set, Namespace + "." + kspec is tried
// before kspec itself.
func (cfg *Type) get(kspec string) (interface{}, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, candidate := range candidates {
		var current interface{} = cfg.Data
		found := true
		for _, part := range strings.Split(candidate, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				found = false
				break
			}
			if current, ok = m[part]; !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: no valid path found among %v", ErrNotFound, candidates)
}
