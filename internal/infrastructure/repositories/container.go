package repositories

import (
	changesetRepo "github.com/rios0rios0/autochangeset/internal/infrastructure/repositories/changeset"
	gitRepo "github.com/rios0rios0/autochangeset/internal/infrastructure/repositories/git"
	workspaceRepo "github.com/rios0rios0/autochangeset/internal/infrastructure/repositories/workspace"
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Constructors already return the domain interfaces
	if err := container.Provide(gitRepo.NewGoGitRepository); err != nil {
		return err
	}
	if err := container.Provide(workspaceRepo.NewFilesystemWorkspaceRepository); err != nil {
		return err
	}
	if err := container.Provide(changesetRepo.NewMarkdownChangesetRepository); err != nil {
		return err
	}

	return nil
}
