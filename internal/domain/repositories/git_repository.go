package repositories

import (
	"context"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// GitRepository abstracts read-only access to a local Git repository. Refs
// accept branch names, tag names, and full or abbreviated commit hashes.
type GitRepository interface {
	// ChangedFiles lists the files whose content differs between the trees
	// of two refs, with paths relative to the repository root.
	ChangedFiles(ctx context.Context, dir, baseRef, headRef string) ([]entities.ChangedFile, error)

	// FileContent returns the content of one file as it exists in the tree
	// of the given ref.
	FileContent(ctx context.Context, dir, ref, path string) ([]byte, error)

	// Commits lists the commits reachable from headRef but not from baseRef,
	// newest first.
	Commits(ctx context.Context, dir, baseRef, headRef string) ([]entities.Commit, error)
}
