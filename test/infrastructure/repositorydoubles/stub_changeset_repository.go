//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// SpyChangesetRepository implements repositories.ChangesetRepository as a
// configurable spy. ReadAll returns the preconfigured Existing slice, it does
// not reflect later Write calls.
type SpyChangesetRepository struct {
	// --- Write ---
	WriteErr    error
	Written     []entities.Changeset
	WrittenDirs []string

	// --- ReadAll ---
	Existing   []entities.Changeset
	ReadAllErr error
	ReadDirs   []string

	// --- Remove ---
	RemoveErr error
	Removed   []string
}

var _ repositories.ChangesetRepository = (*SpyChangesetRepository)(nil)

func (p *SpyChangesetRepository) Write(dir string, changeset entities.Changeset) (string, error) {
	p.WrittenDirs = append(p.WrittenDirs, dir)
	if p.WriteErr != nil {
		return "", p.WriteErr
	}
	p.Written = append(p.Written, changeset)
	return filepath.Join(dir, changeset.ID+".md"), nil
}

func (p *SpyChangesetRepository) ReadAll(dir string) ([]entities.Changeset, error) {
	p.ReadDirs = append(p.ReadDirs, dir)
	if p.ReadAllErr != nil {
		return nil, p.ReadAllErr
	}
	return p.Existing, nil
}

func (p *SpyChangesetRepository) Remove(_, id string) error {
	if p.RemoveErr != nil {
		return p.RemoveErr
	}
	p.Removed = append(p.Removed, id)
	return nil
}
