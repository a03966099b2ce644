package repositories

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// WorkspaceRepository abstracts workspace package discovery on the local
// filesystem.
type WorkspaceRepository interface {
	// ListPackages resolves the workspace definition under the given root
	// and returns every member package with its parsed manifest. A root
	// without any workspace definition resolves to a single-package set.
	ListPackages(rootDir string) (*entities.WorkspaceSet, error)
}
