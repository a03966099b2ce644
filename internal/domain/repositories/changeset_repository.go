package repositories

import (
	"github.com/rios0rios0/autochangeset/internal/domain/entities"
)

// ChangesetRepository abstracts persistence of changeset records. The dir
// argument is the changeset directory itself, usually <root>/.changeset.
type ChangesetRepository interface {
	// Write persists a changeset and returns the path of the created file.
	// The directory is created when it does not exist yet.
	Write(dir string, changeset entities.Changeset) (string, error)

	// ReadAll loads every parseable changeset in the directory. A missing
	// directory yields an empty result, not an error.
	ReadAll(dir string) ([]entities.Changeset, error)

	// Remove deletes the changeset with the given identifier.
	Remove(dir, id string) error
}
