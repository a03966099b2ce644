//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ChangesetBuilder helps create test changesets with a fluent interface.
type ChangesetBuilder struct {
	*testkit.BaseBuilder
	id       string
	summary  string
	releases []entities.Release
}

// NewChangesetBuilder creates a new changeset builder with sensible defaults.
// The default summary carries the auto-generated marker.
func NewChangesetBuilder() *ChangesetBuilder {
	return &ChangesetBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          "test-changeset",
		summary:     entities.AutoMarker + "\n\nUpdated dependencies.",
		releases: []entities.Release{
			{Package: "test-package", Bump: entities.BumpPatch},
		},
	}
}

// WithID sets the changeset identifier.
func (b *ChangesetBuilder) WithID(id string) *ChangesetBuilder {
	b.id = id
	return b
}

// WithSummary sets the summary body verbatim.
func (b *ChangesetBuilder) WithSummary(summary string) *ChangesetBuilder {
	b.summary = summary
	return b
}

// WithPackage sets a single patch release for the given package.
func (b *ChangesetBuilder) WithPackage(name string) *ChangesetBuilder {
	b.releases = []entities.Release{
		{Package: name, Bump: entities.BumpPatch},
	}
	return b
}

// WithReleases replaces the release list.
func (b *ChangesetBuilder) WithReleases(releases ...entities.Release) *ChangesetBuilder {
	b.releases = releases
	return b
}

// Build creates the changeset (satisfies testkit.Builder interface).
func (b *ChangesetBuilder) Build() interface{} {
	return b.BuildChangeset()
}

// BuildChangeset creates the changeset with a concrete return type.
func (b *ChangesetBuilder) BuildChangeset() entities.Changeset {
	releases := make([]entities.Release, len(b.releases))
	copy(releases, b.releases)
	return entities.Changeset{
		ID:       b.id,
		Summary:  b.summary,
		Releases: releases,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangesetBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = "test-changeset"
	b.summary = entities.AutoMarker + "\n\nUpdated dependencies."
	b.releases = []entities.Release{
		{Package: "test-package", Bump: entities.BumpPatch},
	}
	return b
}

// Clone creates a deep copy of the ChangesetBuilder.
func (b *ChangesetBuilder) Clone() testkit.Builder {
	releases := make([]entities.Release, len(b.releases))
	copy(releases, b.releases)
	return &ChangesetBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		summary:     b.summary,
		releases:    releases,
	}
}
