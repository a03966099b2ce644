//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/autochangeset/internal/domain/commands"
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	builders "github.com/rios0rios0/autochangeset/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/autochangeset/test/infrastructure/repositorydoubles"
)

func TestGenerateCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run end to end from range diff to changeset", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			Files: []entities.ChangedFile{
				{Path: "packages/app/package.json", Status: entities.StatusModified},
			},
			FileContents: map[string]string{
				"main:packages/app/package.json": `{"name":"app","dependencies":{"lodash":"^4.17.19"}}`,
				"HEAD:packages/app/package.json": `{"name":"app","dependencies":{"lodash":"^4.17.21"}}`,
			},
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{
			Workspace: &entities.WorkspaceSet{
				Root: "/repo",
				Packages: []entities.WorkspacePackage{
					builders.NewWorkspacePackageBuilder().
						WithDir("/repo/packages/app").
						WithRelDir("packages/app").
						WithManifest(builders.NewManifestBuilder().WithName("app").BuildManifest()).
						BuildWorkspacePackage(),
				},
			},
		}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir: "/repo",
			BaseRef: "main",
			HeadRef: "HEAD",
			Bump:    entities.BumpMinor,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		require.NotNil(t, result.Detection)
		require.Len(t, result.Written, 1)
		assert.Equal(t, "app", result.Written[0].Package)
		require.Len(t, changesetSpy.Written, 1)
		assert.Equal(t, []entities.Release{
			{Package: "app", Bump: entities.BumpMinor},
		}, changesetSpy.Written[0].Releases)
		assert.Contains(t, changesetSpy.Written[0].Summary, "Updated dependency `lodash`")
		assert.Equal(t, []string{"/repo/.changeset"}, changesetSpy.WrittenDirs)
	})

	t.Run("should skip when the range already has a changeset commit", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			CommitList: []entities.Commit{
				{Hash: "a1b2c3", Message: "chore: version packages [autochangeset]"},
			},
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir:         "/repo",
			BaseRef:         "main",
			HeadRef:         "HEAD",
			Bump:            entities.BumpPatch,
			SkipIfCommitted: true,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Nil(t, result.Detection)
		assert.Empty(t, result.Written)
		assert.Empty(t, gitSpy.DiffedRanges) // detection never runs
		assert.Empty(t, changesetSpy.Written)
	})

	t.Run("should proceed when the guard finds no changeset commit", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			CommitList: []entities.Commit{
				{Hash: "a1b2c3", Message: "feat: add login page"},
			},
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir:         "/repo",
			BaseRef:         "main",
			HeadRef:         "HEAD",
			Bump:            entities.BumpPatch,
			SkipIfCommitted: true,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		assert.Len(t, gitSpy.WalkedRanges, 1)
		assert.Len(t, gitSpy.DiffedRanges, 1)
	})

	t.Run("should not walk commits when the guard is disabled", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{}
		workspaceSpy := &doubles.SpyWorkspaceRepository{}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir: "/repo",
			BaseRef: "main",
			HeadRef: "HEAD",
			Bump:    entities.BumpPatch,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		assert.Empty(t, gitSpy.WalkedRanges)
	})

	t.Run("should forward dry runs to the writer", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			Files: []entities.ChangedFile{
				{Path: "packages/app/package.json", Status: entities.StatusModified},
			},
			FileContents: map[string]string{
				"main:packages/app/package.json": `{"name":"app","dependencies":{"lodash":"^4.17.19"}}`,
				"HEAD:packages/app/package.json": `{"name":"app","dependencies":{"lodash":"^4.17.21"}}`,
			},
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{
			Workspace: &entities.WorkspaceSet{
				Root: "/repo",
				Packages: []entities.WorkspacePackage{
					builders.NewWorkspacePackageBuilder().
						WithDir("/repo/packages/app").
						WithRelDir("packages/app").
						WithManifest(builders.NewManifestBuilder().WithName("app").BuildManifest()).
						BuildWorkspacePackage(),
				},
			},
		}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir: "/repo",
			BaseRef: "main",
			HeadRef: "HEAD",
			Bump:    entities.BumpPatch,
			DryRun:  true,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		require.Len(t, result.Written, 1)
		assert.Empty(t, result.Written[0].Path)
		assert.Empty(t, changesetSpy.Written)
	})

	t.Run("should fail when commits cannot be listed", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			CommitsErr: errors.New("unknown revision"),
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir:         "/repo",
			BaseRef:         "main",
			HeadRef:         "HEAD",
			Bump:            entities.BumpPatch,
			SkipIfCommitted: true,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to list commits main..HEAD")
	})

	t.Run("should propagate detection failures", func(t *testing.T) {
		// given
		gitSpy := &doubles.SpyGitRepository{
			ChangedFilesErr: errors.New("bad revision"),
		}
		workspaceSpy := &doubles.SpyWorkspaceRepository{}
		changesetSpy := &doubles.SpyChangesetRepository{}
		cmd := commands.NewGenerateCommand(
			commands.NewDetectCommand(gitSpy, workspaceSpy),
			commands.NewWriteCommand(changesetSpy),
			gitSpy,
		)
		opts := commands.GenerateOptions{
			RepoDir: "/repo",
			BaseRef: "main",
			HeadRef: "HEAD",
			Bump:    entities.BumpPatch,
		}

		// when
		result, err := cmd.Execute(context.Background(), opts)

		// then
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Empty(t, changesetSpy.Written)
	})
}
