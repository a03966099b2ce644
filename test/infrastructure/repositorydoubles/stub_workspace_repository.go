//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// SpyWorkspaceRepository implements repositories.WorkspaceRepository as a
// configurable spy.
type SpyWorkspaceRepository struct {
	// --- ListPackages ---
	Workspace   *entities.WorkspaceSet
	ListErr     error
	ListedRoots []string
}

var _ repositories.WorkspaceRepository = (*SpyWorkspaceRepository)(nil)

func (p *SpyWorkspaceRepository) ListPackages(rootDir string) (*entities.WorkspaceSet, error) {
	p.ListedRoots = append(p.ListedRoots, rootDir)
	if p.ListErr != nil {
		return nil, p.ListErr
	}
	return p.Workspace, nil
}
