package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// Generate is the interface for the end-to-end changeset generation flow.
type Generate interface {
	Execute(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions holds runtime options for a single generate run.
type GenerateOptions struct {
	RepoDir         string
	BaseRef         string
	HeadRef         string
	Bump            entities.BumpType
	Scopes          []entities.DependencyScope
	ChangesetDir    string // relative to RepoDir; empty selects the default
	DryRun          bool
	Verbose         bool
	SkipIfCommitted bool // skip when the range already has a changeset commit
}

// GenerateResult is the outcome of one generate run.
type GenerateResult struct {
	Detection *DetectionResult
	Written   []WrittenChangeset
	Skipped   bool // an earlier changeset commit was found in the range
}

// GenerateCommand composes detection and writing into the end-to-end flow:
// diff the commit range, map dependency deltas onto workspace packages, and
// persist one changeset per public package.
type GenerateCommand struct {
	detect Detect
	write  Write
	git    repositories.GitRepository
}

// NewGenerateCommand creates a new GenerateCommand with the given steps.
func NewGenerateCommand(
	detect Detect,
	write Write,
	git repositories.GitRepository,
) *GenerateCommand {
	return &GenerateCommand{
		detect: detect,
		write:  write,
		git:    git,
	}
}

// Execute runs detection and writes the resulting changesets.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	opts GenerateOptions,
) (*GenerateResult, error) {
	repoDir, err := filepath.Abs(opts.RepoDir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if opts.SkipIfCommitted {
		commits, commitsErr := it.git.Commits(ctx, repoDir, opts.BaseRef, opts.HeadRef)
		if commitsErr != nil {
			return nil, fmt.Errorf("failed to list commits %s..%s: %w",
				opts.BaseRef, opts.HeadRef, commitsErr)
		}
		if entities.HasChangesetCommit(commits) {
			logger.Infof("Range %s..%s already contains a changeset commit, skipping",
				opts.BaseRef, opts.HeadRef)
			//nolint:exhaustruct // nothing was detected or written
			return &GenerateResult{Skipped: true}, nil
		}
	}

	detection, detectErr := it.detect.Execute(ctx, DetectOptions{
		RepoDir: repoDir,
		BaseRef: opts.BaseRef,
		HeadRef: opts.HeadRef,
		Scopes:  opts.Scopes,
		Verbose: opts.Verbose,
	})
	if detectErr != nil {
		return nil, detectErr
	}

	written, writeErr := it.write.Execute(WriteOptions{
		RootDir:      repoDir,
		ChangesetDir: opts.ChangesetDir,
		Bump:         opts.Bump,
		Packages:     detection.PublicPackages(),
		DryRun:       opts.DryRun,
	})
	if writeErr != nil {
		return nil, writeErr
	}

	//nolint:exhaustruct // Skipped stays false on a completed run
	return &GenerateResult{
		Detection: detection,
		Written:   written,
	}, nil
}
