package commands

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// Write is the interface for the changeset writing step.
type Write interface {
	Execute(opts WriteOptions) ([]WrittenChangeset, error)
}

// WriteOptions holds runtime options for a single write run.
type WriteOptions struct {
	RootDir      string
	ChangesetDir string // relative to RootDir; empty selects the default
	Bump         entities.BumpType
	Packages     []entities.PublicPackage
	DryRun       bool
}

// WrittenChangeset describes one changeset produced by a write run.
type WrittenChangeset struct {
	ID           string
	Package      string
	Path         string // empty on dry runs
	WasRecreated bool   // an earlier auto-generated changeset was superseded
}

// WriteCommand persists one changeset per changed package, superseding
// earlier auto-generated changesets that release the same packages.
// Hand-authored changesets are never touched.
type WriteCommand struct {
	changesets repositories.ChangesetRepository
}

// NewWriteCommand creates a new WriteCommand with the given repository.
func NewWriteCommand(changesets repositories.ChangesetRepository) *WriteCommand {
	return &WriteCommand{changesets: changesets}
}

// Execute writes one changeset for every package in the options. The
// supersede decisions are taken against the pre-write state first, then
// applied, so a re-run replaces its own earlier output instead of stacking
// duplicates next to it.
func (it *WriteCommand) Execute(opts WriteOptions) ([]WrittenChangeset, error) {
	if len(opts.Packages) == 0 {
		return nil, nil
	}

	dir := opts.ChangesetDir
	if dir == "" {
		dir = entities.DefaultChangesetDir
	}
	changesetDir := filepath.Join(opts.RootDir, dir)

	existing, err := it.changesets.ReadAll(changesetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing changesets: %w", err)
	}

	recreated, removeIDs := supersededChangesets(existing, opts.Packages)

	// Stale records go first, so a failure cannot leave both the old and
	// the new changeset behind.
	for _, id := range removeIDs {
		if opts.DryRun {
			logger.Infof("[dry-run] Would remove superseded changeset %s", id)
			continue
		}
		if removeErr := it.changesets.Remove(changesetDir, id); removeErr != nil {
			return nil, fmt.Errorf("failed to remove superseded changeset %q: %w", id, removeErr)
		}
		logger.Debugf("Removed superseded changeset %s", id)
	}

	written := make([]WrittenChangeset, 0, len(opts.Packages))
	for _, pkg := range opts.Packages {
		name := pkg.Package().Name()
		changeset := entities.Changeset{
			ID:      uuid.NewString(),
			Summary: entities.RenderSummary(pkg.Changes()),
			Releases: []entities.Release{
				{Package: name, Bump: opts.Bump},
			},
		}

		path := ""
		if opts.DryRun {
			logger.Infof("[dry-run] Would write changeset for %q (%d changes)",
				name, len(pkg.Changes()))
		} else {
			var writeErr error
			path, writeErr = it.changesets.Write(changesetDir, changeset)
			if writeErr != nil {
				return nil, fmt.Errorf("failed to write changeset for %q: %w", name, writeErr)
			}
			logger.Infof("Wrote changeset %s for %q", filepath.Base(path), name)
		}

		written = append(written, WrittenChangeset{
			ID:           changeset.ID,
			Package:      name,
			Path:         path,
			WasRecreated: recreated[name],
		})
	}

	return written, nil
}

// supersededChangesets maps, against the pre-write state, each target
// package to whether it replaces an earlier auto-generated changeset, and
// collects the distinct changeset ids to remove.
func supersededChangesets(
	existing []entities.Changeset,
	packages []entities.PublicPackage,
) (map[string]bool, []string) {
	recreated := make(map[string]bool, len(packages))
	var removeIDs []string
	seen := make(map[string]bool)

	for _, pkg := range packages {
		name := pkg.Package().Name()
		for _, changeset := range existing {
			if !changeset.IsAutoGenerated() || !changeset.ReleasesPackage(name) {
				continue
			}
			recreated[name] = true
			if !seen[changeset.ID] {
				seen[changeset.ID] = true
				removeIDs = append(removeIDs, changeset.ID)
			}
		}
	}

	return recreated, removeIDs
}
