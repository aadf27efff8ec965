// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default configuration directory and file names.
const (
	ConfigDirName  = "scrollcat"
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the path to the scrollcat config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/scrollcat
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the full path to the default config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// envVarPattern matches ${VAR_NAME} patterns
var envVarPattern = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// IsEnvRef returns true if the string is an environment variable reference.
func IsEnvRef(s string) bool {
	return envVarPattern.MatchString(s)
}

// expandEnvVar expands a single ${VAR} reference.
// Returns false if the env var is not set.
func expandEnvVar(s string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(s)
	if len(matches) != 2 {
		return s, true
	}
	return os.LookupEnv(matches[1])
}

// Resolve returns a copy with all ${ENV_VAR} credential references expanded.
// Returns an error if any referenced environment variable is undefined.
func (c ESConfig) Resolve() (ESConfig, error) {
	resolved := c
	fields := []struct {
		name string
		val  *string
	}{
		{"api_key", &resolved.APIKey},
		{"username", &resolved.Username},
		{"password", &resolved.Password},
	}
	for _, f := range fields {
		if !IsEnvRef(*f.val) {
			continue
		}
		val, ok := expandEnvVar(*f.val)
		if !ok {
			return ESConfig{}, fmt.Errorf("undefined environment variable in es.%s: %s", f.name, *f.val)
		}
		*f.val = val
	}
	return resolved, nil
}

// Masked returns a copy of the config with credentials replaced by "****".
func (c Config) Masked() Config {
	masked := c
	for _, s := range []*string{&masked.ES.APIKey, &masked.ES.Username, &masked.ES.Password} {
		if *s != "" {
			*s = "****"
		}
	}
	return masked
}

// String returns a YAML representation of the config with credentials masked.
func (c Config) String() string {
	data, err := yaml.Marshal(c.Masked())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return strings.TrimSpace(string(data))
}

// PermissionWarning returns a warning when the config file holds credentials
// and is readable by group or others, and "" otherwise.
func (c Config) PermissionWarning() string {
	if c.File == "" || (c.ES.APIKey == "" && c.ES.Password == "") {
		return ""
	}
	info, err := os.Stat(c.File)
	if err != nil {
		return ""
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		return fmt.Sprintf("Warning: %s has permissions %04o, should be 0600 for security", c.File, mode)
	}
	return ""
}
