package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/autochangeset/internal/domain/entities"
	"github.com/rios0rios0/autochangeset/internal/domain/repositories"
)

// pnpmWorkspaceFileName is the pnpm workspace definition, checked before the
// manifest workspaces field.
const pnpmWorkspaceFileName = "pnpm-workspace.yaml"

// FilesystemWorkspaceRepository implements repositories.WorkspaceRepository
// by resolving workspace globs against the local filesystem.
type FilesystemWorkspaceRepository struct{}

// NewFilesystemWorkspaceRepository creates a new filesystem backed workspace
// repository.
func NewFilesystemWorkspaceRepository() repositories.WorkspaceRepository {
	return &FilesystemWorkspaceRepository{}
}

// pnpmWorkspace mirrors the subset of pnpm-workspace.yaml the tool reads.
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// workspacesField accepts both shapes of the manifest "workspaces" field: a
// plain pattern array, or an object carrying a "packages" array.
type workspacesField struct {
	Patterns []string
}

func (w *workspacesField) UnmarshalJSON(data []byte) error {
	var patterns []string
	if err := json.Unmarshal(data, &patterns); err == nil {
		w.Patterns = patterns
		return nil
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}
	w.Patterns = object.Packages
	return nil
}

// ListPackages resolves the workspace definition under rootDir. The member
// globs come from pnpm-workspace.yaml when present, otherwise from the root
// manifest workspaces field; a root without either resolves to a
// single-package set.
func (p *FilesystemWorkspaceRepository) ListPackages(rootDir string) (*entities.WorkspaceSet, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	rootManifestPath := filepath.Join(root, entities.ManifestFileName)
	data, readErr := os.ReadFile(rootManifestPath)
	if readErr != nil {
		return nil, fmt.Errorf("no %s at workspace root %q: %w",
			entities.ManifestFileName, root, readErr)
	}

	rootManifest, parseErr := entities.ParseManifest(data)
	if parseErr != nil {
		return nil, fmt.Errorf("invalid root manifest %q: %w", rootManifestPath, parseErr)
	}

	rootPackage := entities.WorkspacePackage{
		Dir:      root,
		RelDir:   ".",
		Manifest: rootManifest,
	}
	//nolint:exhaustruct // Packages is filled below when globs resolve
	set := &entities.WorkspaceSet{
		Root:        root,
		RootPackage: &rootPackage,
	}

	patterns, patternsErr := workspacePatterns(root, data)
	if patternsErr != nil {
		return nil, patternsErr
	}
	if len(patterns) == 0 {
		logger.Debugf("No workspace definition under %q, treating it as a single package", root)
		return set, nil
	}

	members, membersErr := expandPatterns(root, patterns)
	if membersErr != nil {
		return nil, membersErr
	}
	set.Packages = members

	return set, nil
}

// workspacePatterns resolves the member glob patterns, preferring
// pnpm-workspace.yaml over the manifest workspaces field.
func workspacePatterns(root string, manifestData []byte) ([]string, error) {
	pnpmPath := filepath.Join(root, pnpmWorkspaceFileName)
	if pnpmData, err := os.ReadFile(pnpmPath); err == nil {
		var workspace pnpmWorkspace
		if unmarshalErr := yaml.Unmarshal(pnpmData, &workspace); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", pnpmWorkspaceFileName, unmarshalErr)
		}
		return workspace.Packages, nil
	}

	var manifest struct {
		Workspaces workspacesField `json:"workspaces"`
	}
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces field: %w", err)
	}
	return manifest.Workspaces.Patterns, nil
}

// expandPatterns globs the positive patterns under root, drops matches
// covered by negated patterns, and loads a manifest for every remaining
// package directory. Matched directories without a manifest are not
// packages and are silently skipped.
func expandPatterns(root string, patterns []string) ([]entities.WorkspacePackage, error) {
	var positive, negated []string
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			negated = append(negated, strings.TrimPrefix(pattern, "!"))
			continue
		}
		positive = append(positive, pattern)
	}

	rootFS := os.DirFS(root)
	seen := make(map[string]bool)
	var packages []entities.WorkspacePackage

	for _, pattern := range positive {
		matches, err := doublestar.Glob(rootFS, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if match == "." || seen[match] {
				continue
			}
			seen[match] = true

			if isNegated(match, negated) || hasNodeModules(match) {
				continue
			}

			dir := filepath.Join(root, filepath.FromSlash(match))
			info, statErr := os.Stat(dir)
			if statErr != nil || !info.IsDir() {
				continue
			}

			manifestPath := filepath.Join(dir, entities.ManifestFileName)
			data, readErr := os.ReadFile(manifestPath)
			if readErr != nil {
				continue
			}

			manifest, parseErr := entities.ParseManifest(data)
			if parseErr != nil {
				return nil, fmt.Errorf("invalid manifest %q: %w", manifestPath, parseErr)
			}

			packages = append(packages, entities.WorkspacePackage{
				Dir:      dir,
				RelDir:   match,
				Manifest: manifest,
			})
		}
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].RelDir < packages[j].RelDir
	})
	return packages, nil
}

// isNegated reports whether the path matches any negated pattern.
func isNegated(path string, negated []string) bool {
	for _, pattern := range negated {
		if match, err := doublestar.Match(pattern, path); err == nil && match {
			return true
		}
	}
	return false
}

// hasNodeModules reports whether any path segment is node_modules.
func hasNodeModules(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == "node_modules" {
			return true
		}
	}
	return false
}
