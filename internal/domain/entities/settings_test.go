package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

func TestNewDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should default to patch bumps in the standard directory", func(t *testing.T) {
		t.Parallel()

		// when
		settings := entities.NewDefaultSettings()

		// then
		assert.Equal(t, "patch", settings.Bump)
		assert.Equal(t, ".changeset", settings.ChangesetDir)
		assert.Empty(t, settings.Scopes)
		assert.False(t, settings.SkipIfCommitted)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should load a full config file", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		content := `
bump: minor
scopes:
  - dev
  - peer
changeset_dir: ".changes"
skip_if_committed: true
`
		require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, "minor", settings.Bump)
		assert.Equal(t, []string{"dev", "peer"}, settings.Scopes)
		assert.Equal(t, ".changes", settings.ChangesetDir)
		assert.True(t, settings.SkipIfCommitted)
	})

	t.Run("should fill unset fields with defaults", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("scopes: [dev]"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, "patch", settings.Bump)
		assert.Equal(t, ".changeset", settings.ChangesetDir)
	})

	t.Run("should expand environment variable references", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_CHANGESET_DIR", ".pending-releases")
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("changeset_dir: ${TEST_CHANGESET_DIR}"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, ".pending-releases", settings.ChangesetDir)
	})

	t.Run("should fall back to the default directory for unset env vars", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile,
			[]byte("changeset_dir: ${DEFINITELY_NOT_SET_VAR_12345}"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.NoError(t, err)
		assert.Equal(t, ".changeset", settings.ChangesetDir)
	})

	t.Run("should fail for a nonexistent file", func(t *testing.T) {
		t.Parallel()

		// given
		path := "/tmp/nonexistent_autochangeset_config_xyz.yaml"

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail for invalid YAML", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "bad.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("{{{{invalid yaml"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("should fail for an invalid bump type", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("bump: huge"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "bump is invalid")
	})

	t.Run("should fail for an invalid scope", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("scopes: [bundled]"), 0o600))

		// when
		settings, err := entities.NewSettings(cfgFile)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "scopes is invalid")
	})
}

func TestSettingsScopeSet(t *testing.T) {
	t.Parallel()

	t.Run("should union configured scopes onto production", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings()
		settings.Scopes = []string{"peer"}

		// when
		scopes, err := settings.ScopeSet()

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.DependencyScope{entities.ScopeProd, entities.ScopePeer}, scopes)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("should return error when no config file exists", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		tmpDir := t.TempDir()
		t.Setenv("HOME", tmpDir)
		t.Chdir(tmpDir)

		// when
		path, err := entities.FindConfigFile()

		// then
		require.Error(t, err)
		assert.Empty(t, path)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("should find autochangeset.yaml in current directory", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		tmpDir := t.TempDir()
		t.Setenv("HOME", tmpDir)
		t.Chdir(tmpDir)
		cfgFile := filepath.Join(tmpDir, "autochangeset.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("bump: patch"), 0o600))

		// when
		path, err := entities.FindConfigFile()

		// then
		require.NoError(t, err)
		assert.Equal(t, "autochangeset.yaml", path)
	})

	t.Run("should prefer the hidden variant in current directory", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		tmpDir := t.TempDir()
		t.Setenv("HOME", tmpDir)
		t.Chdir(tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".autochangeset.yaml"), []byte("bump: patch"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "autochangeset.yaml"), []byte("bump: minor"), 0o600))

		// when
		path, err := entities.FindConfigFile()

		// then
		require.NoError(t, err)
		assert.Equal(t, ".autochangeset.yaml", path)
	})
}
