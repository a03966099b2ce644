package entities

import (
	"path"
	"strings"
)

// FileStatus is the Git status of one changed file within a commit range.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
)

// ChangedFile is one entry of a commit-range diff, with its path relative to
// the repository root in slash form.
type ChangedFile struct {
	Path   string
	Status FileStatus
}

// IsManifest reports whether the file is a dependency manifest eligible for
// diffing: a package.json that still exists on the head side of the range.
func (f ChangedFile) IsManifest() bool {
	return path.Base(f.Path) == ManifestFileName &&
		(f.Status == StatusAdded || f.Status == StatusModified)
}

// Commit is the minimal commit projection the tool inspects.
type Commit struct {
	Hash    string
	Message string
}

// ChangesetCommitTag marks commits created by changeset tooling. Its
// presence anywhere in a range means changesets were already committed.
const ChangesetCommitTag = "[autochangeset]"

// HasChangesetCommit reports whether any commit message in the range carries
// the changeset commit tag.
func HasChangesetCommit(commits []Commit) bool {
	for _, commit := range commits {
		if strings.Contains(commit.Message, ChangesetCommitTag) {
			return true
		}
	}
	return false
}
