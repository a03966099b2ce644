package entities

// ChangedPackage is the per-package outcome of one detection run. It is a
// closed union: a package either needs a changeset (PublicPackage, carrying
// its dependency changes) or is excluded by policy (PrivatePackage, carrying
// none).
type ChangedPackage interface {
	Package() WorkspacePackage
	changedPackage()
}

// PrivatePackage marks a changed package that is excluded from changeset
// generation because its manifest declares it private.
type PrivatePackage struct {
	pkg WorkspacePackage
}

// NewPrivatePackage wraps a private package.
func NewPrivatePackage(pkg WorkspacePackage) PrivatePackage {
	return PrivatePackage{pkg: pkg}
}

// Package returns the underlying workspace package.
func (p PrivatePackage) Package() WorkspacePackage {
	return p.pkg
}

func (p PrivatePackage) changedPackage() {}

// PublicPackage carries the dependency deltas of a package that needs a
// changeset. It always holds at least one change.
type PublicPackage struct {
	pkg     WorkspacePackage
	changes []DependencyChange
}

// NewPublicPackage wraps a public package with its detected changes.
func NewPublicPackage(pkg WorkspacePackage, changes []DependencyChange) PublicPackage {
	return PublicPackage{pkg: pkg, changes: changes}
}

// Package returns the underlying workspace package.
func (p PublicPackage) Package() WorkspacePackage {
	return p.pkg
}

// Changes returns the dependency deltas detected for the package.
func (p PublicPackage) Changes() []DependencyChange {
	return p.changes
}

func (p PublicPackage) changedPackage() {}
