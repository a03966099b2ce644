//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// WorkspacePackageBuilder helps create test workspace packages with a fluent interface.
type WorkspacePackageBuilder struct {
	*testkit.BaseBuilder
	dir      string
	relDir   string
	manifest entities.ManifestSnapshot
}

// NewWorkspacePackageBuilder creates a new workspace package builder with sensible defaults.
func NewWorkspacePackageBuilder() *WorkspacePackageBuilder {
	return &WorkspacePackageBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		dir:         "/repo/packages/test-package",
		relDir:      "packages/test-package",
		manifest:    NewManifestBuilder().BuildManifest(),
	}
}

// WithDir sets the absolute package directory.
func (b *WorkspacePackageBuilder) WithDir(dir string) *WorkspacePackageBuilder {
	b.dir = dir
	return b
}

// WithRelDir sets the slash-separated directory relative to the workspace root.
func (b *WorkspacePackageBuilder) WithRelDir(relDir string) *WorkspacePackageBuilder {
	b.relDir = relDir
	return b
}

// WithManifest sets the package manifest.
func (b *WorkspacePackageBuilder) WithManifest(manifest entities.ManifestSnapshot) *WorkspacePackageBuilder {
	b.manifest = manifest
	return b
}

// Build creates the workspace package (satisfies testkit.Builder interface).
func (b *WorkspacePackageBuilder) Build() interface{} {
	return b.BuildWorkspacePackage()
}

// BuildWorkspacePackage creates the workspace package with a concrete return type.
func (b *WorkspacePackageBuilder) BuildWorkspacePackage() entities.WorkspacePackage {
	return entities.WorkspacePackage{
		Dir:      b.dir,
		RelDir:   b.relDir,
		Manifest: b.manifest,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *WorkspacePackageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.dir = "/repo/packages/test-package"
	b.relDir = "packages/test-package"
	b.manifest = NewManifestBuilder().BuildManifest()
	return b
}

// Clone creates a deep copy of the WorkspacePackageBuilder.
func (b *WorkspacePackageBuilder) Clone() testkit.Builder {
	return &WorkspacePackageBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		dir:         b.dir,
		relDir:      b.relDir,
		manifest:    b.manifest,
	}
}
