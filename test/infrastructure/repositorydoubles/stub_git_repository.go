//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable
// spy. FileContent is called concurrently by the detect flow, so the
// recorded calls are mutex guarded.
type SpyGitRepository struct {
	mu sync.Mutex

	// --- ChangedFiles ---
	Files           []entities.ChangedFile
	ChangedFilesErr error
	DiffedRanges    []string

	// --- FileContent ---
	FileContents   map[string]string // keyed "ref:path"
	FileContentErr error
	RequestedFiles []string

	// --- Commits ---
	CommitList   []entities.Commit
	CommitsErr   error
	WalkedRanges []string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (p *SpyGitRepository) ChangedFiles(
	_ context.Context, _, baseRef, headRef string,
) ([]entities.ChangedFile, error) {
	p.mu.Lock()
	p.DiffedRanges = append(p.DiffedRanges, baseRef+".."+headRef)
	p.mu.Unlock()
	return p.Files, p.ChangedFilesErr
}

func (p *SpyGitRepository) FileContent(
	_ context.Context, _, ref, path string,
) ([]byte, error) {
	key := ref + ":" + path
	p.mu.Lock()
	p.RequestedFiles = append(p.RequestedFiles, key)
	p.mu.Unlock()

	if p.FileContents != nil {
		if content, ok := p.FileContents[key]; ok {
			return []byte(content), nil
		}
	}
	if p.FileContentErr != nil {
		return nil, p.FileContentErr
	}
	return nil, fmt.Errorf("file not found: %s", key)
}

func (p *SpyGitRepository) Commits(
	_ context.Context, _, baseRef, headRef string,
) ([]entities.Commit, error) {
	p.mu.Lock()
	p.WalkedRanges = append(p.WalkedRanges, baseRef+".."+headRef)
	p.mu.Unlock()
	return p.CommitList, p.CommitsErr
}
