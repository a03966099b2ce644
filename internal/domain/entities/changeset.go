package entities

import (
	"fmt"
	"sort"
	"strings"
)

// BumpType is the semantic version release type a changeset requests.
type BumpType string

const (
	BumpPatch BumpType = "patch"
	BumpMinor BumpType = "minor"
	BumpMajor BumpType = "major"
)

// ParseBumpType validates a user supplied bump type.
func ParseBumpType(raw string) (BumpType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	default:
		return "", fmt.Errorf("unknown bump type: %q (expected patch, minor or major)", raw)
	}
}

// Release pairs one package name with the bump it should receive.
type Release struct {
	Package string
	Bump    BumpType
}

// Changeset is one persisted pending-release record.
type Changeset struct {
	ID       string
	Summary  string
	Releases []Release
}

// AutoMarker is the banner prefixed to every summary this tool writes. A
// changeset counts as auto-generated if and only if its summary starts with
// this exact string; anything else is hand-authored and is never touched.
const AutoMarker = "<!-- autochangeset -->"

// IsAutoGenerated reports whether the changeset was written by this tool.
func (c Changeset) IsAutoGenerated() bool {
	return strings.HasPrefix(c.Summary, AutoMarker)
}

// ReleasesPackage reports whether the changeset lists the given package name.
func (c Changeset) ReleasesPackage(name string) bool {
	for _, release := range c.Releases {
		if release.Package == name {
			return true
		}
	}
	return false
}

// RenderSummary builds the changeset summary for a set of dependency
// changes, always prefixed with the AutoMarker banner. A single change
// renders as one sentence, several changes render as a heading followed by
// one bullet per change, grouped as updated, then added, then removed. The
// output is deterministic, so identical input reproduces identical bytes.
func RenderSummary(changes []DependencyChange) string {
	var body string
	switch len(changes) {
	case 0:
		body = "Updated dependencies."
	case 1:
		body = describeChange(changes[0]) + "."
	default:
		body = "Dependency changes:\n\n" + renderBullets(changes)
	}
	return AutoMarker + "\n\n" + body
}

// renderBullets emits one bullet per change, grouped by kind and sorted by
// name within each group.
func renderBullets(changes []DependencyChange) string {
	ordered := make([]DependencyChange, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		if kindRank(ordered[i].Kind) != kindRank(ordered[j].Kind) {
			return kindRank(ordered[i].Kind) < kindRank(ordered[j].Kind)
		}
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return scopeRank(ordered[i].Scope) < scopeRank(ordered[j].Scope)
	})

	lines := make([]string, 0, len(ordered))
	for _, change := range ordered {
		lines = append(lines, "- "+describeChange(change))
	}
	return strings.Join(lines, "\n")
}

// describeChange renders one change as a sentence without the trailing
// period. Changes outside the production scope carry a scope annotation.
func describeChange(change DependencyChange) string {
	var text string
	switch change.Kind {
	case ChangeUpdated:
		text = fmt.Sprintf("Updated dependency `%s` from `%s` to `%s`",
			change.Name, change.OldVersion, change.NewVersion)
	case ChangeAdded:
		text = fmt.Sprintf("Added dependency `%s` at `%s`", change.Name, change.NewVersion)
	case ChangeRemoved:
		text = fmt.Sprintf("Removed dependency `%s` (was `%s`)", change.Name, change.OldVersion)
	}
	if change.Scope != ScopeProd {
		text += fmt.Sprintf(" (%s)", change.Scope)
	}
	return text
}

func kindRank(kind ChangeKind) int {
	switch kind {
	case ChangeUpdated:
		return 0
	case ChangeAdded:
		return 1
	case ChangeRemoved:
		return 2
	default:
		return 3
	}
}

func scopeRank(scope DependencyScope) int {
	for index, candidate := range AllScopes {
		if candidate == scope {
			return index
		}
	}
	return len(AllScopes)
}
