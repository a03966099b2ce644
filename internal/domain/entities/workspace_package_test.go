package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

func TestWorkspaceSetAll(t *testing.T) {
	t.Parallel()

	t.Run("should append the root package after the members", func(t *testing.T) {
		t.Parallel()

		// given
		set := &entities.WorkspaceSet{
			Root: "/repo",
			Packages: []entities.WorkspacePackage{
				{Dir: "/repo/packages/ui", RelDir: "packages/ui", Manifest: entities.ManifestSnapshot{Name: "@acme/ui"}},
			},
			RootPackage: &entities.WorkspacePackage{
				Dir: "/repo", RelDir: ".", Manifest: entities.ManifestSnapshot{Name: "acme-monorepo", Private: true},
			},
		}

		// when
		all := set.All()

		// then
		require.Len(t, all, 2)
		assert.Equal(t, "@acme/ui", all[0].Name())
		assert.Equal(t, "acme-monorepo", all[1].Name())
	})

	t.Run("should work without a root package", func(t *testing.T) {
		t.Parallel()

		// given
		set := &entities.WorkspaceSet{
			Root: "/repo",
			Packages: []entities.WorkspacePackage{
				{Dir: "/repo/packages/ui", RelDir: "packages/ui", Manifest: entities.ManifestSnapshot{Name: "@acme/ui"}},
			},
		}

		// when
		all := set.All()

		// then
		assert.Len(t, all, 1)
	})
}

func TestWorkspaceSetFindByManifestPath(t *testing.T) {
	t.Parallel()

	set := &entities.WorkspaceSet{
		Root: "/repo",
		Packages: []entities.WorkspacePackage{
			{Dir: "/repo/packages/ui", RelDir: "packages/ui", Manifest: entities.ManifestSnapshot{Name: "@acme/ui"}},
			{Dir: "/repo/packages/core", RelDir: "packages/core", Manifest: entities.ManifestSnapshot{Name: "@acme/core"}},
		},
		RootPackage: &entities.WorkspacePackage{
			Dir: "/repo", RelDir: ".", Manifest: entities.ManifestSnapshot{Name: "acme-monorepo", Private: true},
		},
	}

	t.Run("should match a member manifest exactly", func(t *testing.T) {
		t.Parallel()

		// when
		pkg, found := set.FindByManifestPath("packages/ui/package.json")

		// then
		require.True(t, found)
		assert.Equal(t, "@acme/ui", pkg.Name())
	})

	t.Run("should match the root manifest", func(t *testing.T) {
		t.Parallel()

		// when
		pkg, found := set.FindByManifestPath("package.json")

		// then
		require.True(t, found)
		assert.Equal(t, "acme-monorepo", pkg.Name())
		assert.True(t, pkg.IsPrivate())
	})

	t.Run("should not infer ownership from path prefixes", func(t *testing.T) {
		t.Parallel()

		// when
		_, found := set.FindByManifestPath("packages/ui/dist/package.json")

		// then
		assert.False(t, found)
	})

	t.Run("should not match manifests outside any package", func(t *testing.T) {
		t.Parallel()

		// when
		_, found := set.FindByManifestPath("tools/scripts/package.json")

		// then
		assert.False(t, found)
	})
}

func TestWorkspacePackageManifestPath(t *testing.T) {
	t.Parallel()

	t.Run("should join the directory with the manifest filename", func(t *testing.T) {
		t.Parallel()

		// given
		pkg := entities.WorkspacePackage{
			Dir:      "/repo/packages/ui",
			RelDir:   "packages/ui",
			Manifest: entities.ManifestSnapshot{Name: "@acme/ui"},
		}

		// when
		path := pkg.ManifestPath()

		// then
		assert.Equal(t, "/repo/packages/ui/package.json", path)
	})
}
