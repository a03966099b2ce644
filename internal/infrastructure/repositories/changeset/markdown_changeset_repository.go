package changeset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

const (
	markdownExtension = ".md"
	frontmatterFence  = "---"
	readmeFileName    = "README.md"
	dirPermissions    = 0o755
	filePermissions   = 0o644
)

// MarkdownChangesetRepository implements repositories.ChangesetRepository
// with one Markdown file per changeset: a YAML frontmatter block listing the
// released packages, followed by the summary body.
type MarkdownChangesetRepository struct{}

// NewMarkdownChangesetRepository creates a new Markdown backed changeset
// repository.
func NewMarkdownChangesetRepository() repositories.ChangesetRepository {
	return &MarkdownChangesetRepository{}
}

// Write persists a changeset as <id>.md, creating the directory on demand.
func (p *MarkdownChangesetRepository) Write(dir string, changeset entities.Changeset) (string, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("failed to create changeset directory %q: %w", dir, err)
	}

	releases := make(map[string]string, len(changeset.Releases))
	for _, release := range changeset.Releases {
		releases[release.Package] = string(release.Bump)
	}

	frontmatter, err := yaml.Marshal(releases)
	if err != nil {
		return "", fmt.Errorf("failed to render frontmatter: %w", err)
	}

	content := frontmatterFence + "\n" + string(frontmatter) + frontmatterFence +
		"\n\n" + changeset.Summary + "\n"

	path := filepath.Join(dir, changeset.ID+markdownExtension)
	if writeErr := os.WriteFile(path, []byte(content), filePermissions); writeErr != nil {
		return "", fmt.Errorf("failed to write changeset %q: %w", path, writeErr)
	}

	return path, nil
}

// ReadAll loads every parseable changeset in the directory, ordered by file
// name. Files this tool cannot parse are warned about and skipped, so a
// broken foreign file never aborts a run.
func (p *MarkdownChangesetRepository) ReadAll(dir string) ([]entities.Changeset, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read changeset directory %q: %w", dir, err)
	}

	var changesets []entities.Changeset
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == readmeFileName || !strings.HasSuffix(name, markdownExtension) {
			continue
		}

		path := filepath.Join(dir, name)
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read changeset %q: %w", path, readErr)
		}

		id := strings.TrimSuffix(name, markdownExtension)
		changeset, parseErr := parseChangeset(id, data)
		if parseErr != nil {
			logger.Warnf("Skipping unparseable changeset %q: %v", path, parseErr)
			continue
		}
		changesets = append(changesets, changeset)
	}

	return changesets, nil
}

// Remove deletes the changeset with the given identifier.
func (p *MarkdownChangesetRepository) Remove(dir, id string) error {
	path := filepath.Join(dir, id+markdownExtension)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove changeset %q: %w", path, err)
	}
	return nil
}

// parseChangeset splits one changeset file into its frontmatter releases
// and summary body. Releases come out sorted by package name.
func parseChangeset(id string, data []byte) (entities.Changeset, error) {
	rest, hasOpen := strings.CutPrefix(string(data), frontmatterFence+"\n")
	if !hasOpen {
		return entities.Changeset{}, fmt.Errorf("changeset %q has no frontmatter", id)
	}
	front, body, hasClose := strings.Cut(rest, "\n"+frontmatterFence)
	if !hasClose {
		return entities.Changeset{}, fmt.Errorf("changeset %q has an unterminated frontmatter", id)
	}

	var releases map[string]string
	if err := yaml.Unmarshal([]byte(front), &releases); err != nil {
		return entities.Changeset{}, fmt.Errorf("changeset %q has invalid frontmatter: %w", id, err)
	}

	names := make([]string, 0, len(releases))
	for name := range releases {
		names = append(names, name)
	}
	sort.Strings(names)

	changeset := entities.Changeset{
		ID:       id,
		Summary:  strings.TrimSpace(body),
		Releases: make([]entities.Release, 0, len(names)),
	}
	for _, name := range names {
		bump, bumpErr := entities.ParseBumpType(releases[name])
		if bumpErr != nil {
			return entities.Changeset{}, fmt.Errorf("changeset %q: %w", id, bumpErr)
		}
		changeset.Releases = append(changeset.Releases, entities.Release{
			Package: name,
			Bump:    bump,
		})
	}

	return changeset, nil
}
