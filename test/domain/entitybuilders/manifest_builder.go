//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ManifestBuilder helps create test manifests with a fluent interface.
type ManifestBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      string
	private      bool
	dependencies map[entities.DependencyScope]map[string]string
}

// NewManifestBuilder creates a new manifest builder with sensible defaults.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "test-package",
		version:      "1.0.0",
		private:      false,
		dependencies: map[entities.DependencyScope]map[string]string{},
	}
}

// WithName sets the package name.
func (b *ManifestBuilder) WithName(name string) *ManifestBuilder {
	b.name = name
	return b
}

// WithVersion sets the package version.
func (b *ManifestBuilder) WithVersion(version string) *ManifestBuilder {
	b.version = version
	return b
}

// WithPrivate marks the package as private.
func (b *ManifestBuilder) WithPrivate(private bool) *ManifestBuilder {
	b.private = private
	return b
}

// WithDependency adds a production dependency.
func (b *ManifestBuilder) WithDependency(name, version string) *ManifestBuilder {
	return b.WithScopedDependency(entities.ScopeProd, name, version)
}

// WithDevDependency adds a development dependency.
func (b *ManifestBuilder) WithDevDependency(name, version string) *ManifestBuilder {
	return b.WithScopedDependency(entities.ScopeDev, name, version)
}

// WithPeerDependency adds a peer dependency.
func (b *ManifestBuilder) WithPeerDependency(name, version string) *ManifestBuilder {
	return b.WithScopedDependency(entities.ScopePeer, name, version)
}

// WithOptionalDependency adds an optional dependency.
func (b *ManifestBuilder) WithOptionalDependency(name, version string) *ManifestBuilder {
	return b.WithScopedDependency(entities.ScopeOptional, name, version)
}

// WithScopedDependency adds a dependency under the given scope.
func (b *ManifestBuilder) WithScopedDependency(
	scope entities.DependencyScope, name, version string,
) *ManifestBuilder {
	if b.dependencies[scope] == nil {
		b.dependencies[scope] = map[string]string{}
	}
	b.dependencies[scope][name] = version
	return b
}

// Build creates the manifest (satisfies testkit.Builder interface).
func (b *ManifestBuilder) Build() interface{} {
	return b.BuildManifest()
}

// BuildManifest creates the manifest with a concrete return type.
// Dependency maps are copied, so later builder mutations do not leak
// into already built snapshots.
func (b *ManifestBuilder) BuildManifest() entities.ManifestSnapshot {
	return entities.ManifestSnapshot{
		Name:                 b.name,
		Version:              b.version,
		Private:              b.private,
		Dependencies:         copyDependencyMap(b.dependencies[entities.ScopeProd]),
		DevDependencies:      copyDependencyMap(b.dependencies[entities.ScopeDev]),
		PeerDependencies:     copyDependencyMap(b.dependencies[entities.ScopePeer]),
		OptionalDependencies: copyDependencyMap(b.dependencies[entities.ScopeOptional]),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.version = "1.0.0"
	b.private = false
	b.dependencies = map[entities.DependencyScope]map[string]string{}
	return b
}

// Clone creates a deep copy of the ManifestBuilder.
func (b *ManifestBuilder) Clone() testkit.Builder {
	dependencies := map[entities.DependencyScope]map[string]string{}
	for scope, block := range b.dependencies {
		dependencies[scope] = copyDependencyMap(block)
	}
	return &ManifestBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		private:      b.private,
		dependencies: dependencies,
	}
}

func copyDependencyMap(block map[string]string) map[string]string {
	if block == nil {
		return nil
	}
	copied := make(map[string]string, len(block))
	for name, version := range block {
		copied[name] = version
	}
	return copied
}
