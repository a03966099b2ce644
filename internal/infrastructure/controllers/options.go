package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// loadSettings resolves the configuration: an explicit --config path must
// load, an auto-detected file is used when present, and built-in defaults
// apply otherwise.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return entities.NewSettings(configPath)
	}

	detected, err := entities.FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return entities.NewDefaultSettings(), nil
	}

	logger.Infof("Using config file: %s", detected)
	return entities.NewSettings(detected)
}

// resolveBump returns the bump type, the --bump flag overriding settings.
func resolveBump(cmd *cobra.Command, settings *entities.Settings) (entities.BumpType, error) {
	raw, _ := cmd.Flags().GetString("bump")
	if raw == "" {
		raw = settings.Bump
	}
	return entities.ParseBumpType(raw)
}

// resolveScopes unions the --scope flags onto the configured scopes.
func resolveScopes(cmd *cobra.Command, settings *entities.Settings) ([]entities.DependencyScope, error) {
	flagScopes, _ := cmd.Flags().GetStringSlice("scope")

	raw := make([]string, 0, len(settings.Scopes)+len(flagScopes))
	raw = append(raw, settings.Scopes...)
	raw = append(raw, flagScopes...)

	return entities.ParseScopes(raw)
}
