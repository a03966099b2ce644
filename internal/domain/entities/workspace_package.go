package entities

import "path/filepath"

// WorkspacePackage is one package discovered in the workspace, with its
// manifest as present in the worktree.
type WorkspacePackage struct {
	Dir      string // absolute package directory
	RelDir   string // slash-separated directory relative to the workspace root, "." for the root package
	Manifest ManifestSnapshot
}

// Name returns the manifest package name.
func (p WorkspacePackage) Name() string {
	return p.Manifest.Name
}

// IsPrivate reports whether the manifest opts the package out of publishing.
func (p WorkspacePackage) IsPrivate() bool {
	return p.Manifest.Private
}

// ManifestPath returns the absolute path of the package manifest.
func (p WorkspacePackage) ManifestPath() string {
	return filepath.Join(p.Dir, ManifestFileName)
}

// WorkspaceSet is the full set of packages of one workspace, loaded once per
// run and treated as read-only afterwards. The root package is kept apart
// from the glob-discovered members so it never appears twice.
type WorkspaceSet struct {
	Root        string // absolute workspace root
	Packages    []WorkspacePackage
	RootPackage *WorkspacePackage
}

// All returns the member packages plus the root package when one exists.
func (s *WorkspaceSet) All() []WorkspacePackage {
	packages := make([]WorkspacePackage, 0, len(s.Packages)+1)
	packages = append(packages, s.Packages...)
	if s.RootPackage != nil {
		packages = append(packages, *s.RootPackage)
	}
	return packages
}

// FindByManifestPath maps a changed manifest path, relative to the workspace
// root as reported by Git, to its owning package. Only an exact match of the
// package directory joined with the manifest filename counts; ownership is
// never inferred from path prefixes.
func (s *WorkspaceSet) FindByManifestPath(relPath string) (WorkspacePackage, bool) {
	absolute := filepath.Clean(filepath.Join(s.Root, filepath.FromSlash(relPath)))
	for _, pkg := range s.All() {
		if pkg.ManifestPath() == absolute {
			return pkg, true
		}
	}
	return WorkspacePackage{}, false
}
