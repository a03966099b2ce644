package entities

import "sort"

// ChangeKind classifies how a dependency entry changed between two snapshots.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// DependencyChange is a single classified delta for one dependency name
// within one scope. Added changes carry only NewVersion, Removed changes
// only OldVersion, Updated changes carry both with differing values.
type DependencyChange struct {
	Name       string
	Scope      DependencyScope
	Kind       ChangeKind
	OldVersion string
	NewVersion string
}

// Delta classifies the version direction of an Updated change.
func (c DependencyChange) Delta() VersionDelta {
	if c.Kind != ChangeUpdated {
		return DeltaUnknown
	}
	return ClassifyVersionDelta(c.OldVersion, c.NewVersion)
}

// DiffManifests compares the selected dependency blocks of two manifest
// snapshots. A dependency moved between blocks shows up as two independent
// events, a removal in the old scope and an addition in the new one. The
// result order is deterministic: scopes in canonical order, dependency names
// sorted within each scope.
func DiffManifests(base, head ManifestSnapshot, scopes []DependencyScope) []DependencyChange {
	var changes []DependencyChange

	for _, scope := range scopes {
		baseBlock := scope.Block(base)
		headBlock := scope.Block(head)

		for _, name := range unionKeys(baseBlock, headBlock) {
			oldVersion, inBase := baseBlock[name]
			newVersion, inHead := headBlock[name]

			switch {
			case inBase && inHead && oldVersion != newVersion:
				changes = append(changes, DependencyChange{
					Name:       name,
					Scope:      scope,
					Kind:       ChangeUpdated,
					OldVersion: oldVersion,
					NewVersion: newVersion,
				})
			case !inBase && inHead:
				changes = append(changes, DependencyChange{
					Name:       name,
					Scope:      scope,
					Kind:       ChangeAdded,
					NewVersion: newVersion,
				})
			case inBase && !inHead:
				changes = append(changes, DependencyChange{
					Name:       name,
					Scope:      scope,
					Kind:       ChangeRemoved,
					OldVersion: oldVersion,
				})
			}
		}
	}

	return changes
}

// unionKeys returns the sorted union of the keys of both blocks.
func unionKeys(base, head map[string]string) []string {
	seen := make(map[string]bool, len(base)+len(head))
	keys := make([]string, 0, len(base)+len(head))
	for name := range base {
		seen[name] = true
		keys = append(keys, name)
	}
	for name := range head {
		if !seen[name] {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}
