package git

import (
	"context"
	"fmt"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// GoGitRepository implements repositories.GitRepository on top of go-git. It
// reads committed trees only and never touches the worktree.
type GoGitRepository struct{}

// NewGoGitRepository creates a new go-git backed repository adapter.
func NewGoGitRepository() repositories.GitRepository {
	return &GoGitRepository{}
}

// ChangedFiles lists the files whose content differs between the trees of
// two refs.
func (p *GoGitRepository) ChangedFiles(
	_ context.Context,
	dir, baseRef, headRef string,
) ([]entities.ChangedFile, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	base, baseErr := resolveCommit(repo, baseRef)
	if baseErr != nil {
		return nil, baseErr
	}
	head, headErr := resolveCommit(repo, headRef)
	if headErr != nil {
		return nil, headErr
	}

	baseTree, baseTreeErr := base.Tree()
	if baseTreeErr != nil {
		return nil, fmt.Errorf("failed to load tree at %q: %w", baseRef, baseTreeErr)
	}
	headTree, headTreeErr := head.Tree()
	if headTreeErr != nil {
		return nil, fmt.Errorf("failed to load tree at %q: %w", headRef, headTreeErr)
	}

	changes, diffErr := baseTree.Diff(headTree)
	if diffErr != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", diffErr)
	}

	var files []entities.ChangedFile
	for _, change := range changes {
		action, actionErr := change.Action()
		if actionErr != nil {
			continue
		}

		switch action {
		case merkletrie.Insert:
			files = append(files, entities.ChangedFile{
				Path:   change.To.Name,
				Status: entities.StatusAdded,
			})
		case merkletrie.Delete:
			files = append(files, entities.ChangedFile{
				Path:   change.From.Name,
				Status: entities.StatusDeleted,
			})
		case merkletrie.Modify:
			files = append(files, entities.ChangedFile{
				Path:   change.From.Name,
				Status: entities.StatusModified,
			})
		}
	}

	return files, nil
}

// FileContent returns the content of one file as it exists in the tree of
// the given ref.
func (p *GoGitRepository) FileContent(
	_ context.Context,
	dir, ref, path string,
) ([]byte, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	commit, resolveErr := resolveCommit(repo, ref)
	if resolveErr != nil {
		return nil, resolveErr
	}

	tree, treeErr := commit.Tree()
	if treeErr != nil {
		return nil, fmt.Errorf("failed to load tree at %q: %w", ref, treeErr)
	}

	file, fileErr := tree.File(path)
	if fileErr != nil {
		return nil, fmt.Errorf("failed to get file %q at %q: %w", path, ref, fileErr)
	}

	reader, readerErr := file.Reader()
	if readerErr != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, readerErr)
	}
	defer reader.Close()

	content, readErr := io.ReadAll(reader)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, readErr)
	}

	return content, nil
}

// Commits walks history from headRef, newest first, and cuts the walk at
// baseRef. The cut is exact for linear history; side branches merged below
// the base may still appear.
func (p *GoGitRepository) Commits(
	_ context.Context,
	dir, baseRef, headRef string,
) ([]entities.Commit, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	base, baseErr := resolveCommit(repo, baseRef)
	if baseErr != nil {
		return nil, baseErr
	}
	head, headErr := resolveCommit(repo, headRef)
	if headErr != nil {
		return nil, headErr
	}

	iter, logErr := repo.Log(&gogit.LogOptions{From: head.Hash})
	if logErr != nil {
		return nil, fmt.Errorf("failed to walk history from %q: %w", headRef, logErr)
	}
	defer iter.Close()

	var commits []entities.Commit
	iterErr := iter.ForEach(func(commit *object.Commit) error {
		if commit.Hash == base.Hash {
			return storer.ErrStop
		}
		commits = append(commits, entities.Commit{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
		})
		return nil
	})
	if iterErr != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", iterErr)
	}

	return commits, nil
}

// open opens the repository containing dir, walking up to find .git so the
// tool also works from a subdirectory.
func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}
	return repo, nil
}

// resolveCommit resolves a ref (branch, tag, hash, or a revision expression
// like HEAD~1) to its commit, peeling annotated tags.
func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	if hash, err := repo.ResolveRevision(plumbing.Revision(ref)); err == nil {
		return commitFromHash(repo, *hash)
	}

	if reference, err := repo.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return commitFromHash(repo, reference.Hash())
	}
	if reference, err := repo.Reference(plumbing.NewTagReferenceName(ref), true); err == nil {
		return commitFromHash(repo, reference.Hash())
	}

	if commit, err := repo.CommitObject(plumbing.NewHash(ref)); err == nil {
		return commit, nil
	}

	return nil, fmt.Errorf("failed to resolve ref %q: not a branch, tag, or commit hash", ref)
}

// commitFromHash loads the commit behind a hash. Annotated tag hashes are
// peeled down to the tagged commit.
func commitFromHash(repo *gogit.Repository, hash plumbing.Hash) (*object.Commit, error) {
	if commit, err := repo.CommitObject(hash); err == nil {
		return commit, nil
	}

	tag, tagErr := repo.TagObject(hash)
	if tagErr != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, tagErr)
	}
	commit, commitErr := tag.Commit()
	if commitErr != nil {
		return nil, fmt.Errorf("failed to peel tag %s: %w", hash, commitErr)
	}
	return commit, nil
}
