package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultChangesetDir is where changeset records live, relative to the
// workspace root.
const DefaultChangesetDir = ".changeset"

// Settings is the tool configuration, loaded from an optional YAML file.
// Every field has a default, so the tool runs without any file at all, and
// CLI flags override whatever the file sets.
type Settings struct {
	Bump            string   `yaml:"bump"`              // default release bump type
	Scopes          []string `yaml:"scopes"`            // extra dependency scopes unioned onto prod
	ChangesetDir    string   `yaml:"changeset_dir"`     // directory holding changeset files
	SkipIfCommitted bool     `yaml:"skip_if_committed"` // skip generation when the range already has a changeset commit
}

// NewDefaultSettings returns the built-in configuration.
func NewDefaultSettings() *Settings {
	//nolint:exhaustruct // Scopes and SkipIfCommitted default to their zero values
	return &Settings{
		Bump:         string(BumpPatch),
		ChangesetDir: DefaultChangesetDir,
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variable references and filling unset fields with defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal([]byte(expanded), settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if settings.ChangesetDir == "" {
		settings.ChangesetDir = DefaultChangesetDir
	}

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".autochangeset.yaml",
		".autochangeset.yml",
		"autochangeset.yaml",
		"autochangeset.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// BumpType returns the configured default bump type.
func (s *Settings) BumpType() (BumpType, error) {
	return ParseBumpType(s.Bump)
}

// ScopeSet returns the configured scopes normalized onto the default set.
func (s *Settings) ScopeSet() ([]DependencyScope, error) {
	scopes, err := ParseScopes(s.Scopes)
	if err != nil {
		return nil, err
	}
	return NormalizeScopes(scopes), nil
}

// validate checks the configured values once, at the loading boundary.
func (s *Settings) validate() error {
	if _, err := s.BumpType(); err != nil {
		return fmt.Errorf("bump is invalid: %w", err)
	}
	if _, err := s.ScopeSet(); err != nil {
		return fmt.Errorf("scopes is invalid: %w", err)
	}
	return nil
}
