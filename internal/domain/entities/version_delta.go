package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// VersionDelta classifies the direction of a version range update.
type VersionDelta string

const (
	DeltaUpgrade   VersionDelta = "upgrade"
	DeltaDowngrade VersionDelta = "downgrade"
	DeltaUnchanged VersionDelta = "unchanged"
	DeltaUnknown   VersionDelta = "unknown"
)

// ClassifyVersionDelta compares two version range strings after stripping
// common range operators. Ranges that do not reduce to plain semantic
// versions (wildcards, URLs, workspace protocols) classify as unknown.
func ClassifyVersionDelta(oldVersion, newVersion string) VersionDelta {
	oldNormalized := normalizeRange(oldVersion)
	newNormalized := normalizeRange(newVersion)

	if !semver.IsValid(oldNormalized) || !semver.IsValid(newNormalized) {
		return DeltaUnknown
	}

	switch comparison := semver.Compare(newNormalized, oldNormalized); {
	case comparison > 0:
		return DeltaUpgrade
	case comparison < 0:
		return DeltaDowngrade
	default:
		return DeltaUnchanged
	}
}

// normalizeRange strips range operators and whitespace and ensures the "v"
// prefix the semver package expects.
func normalizeRange(version string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(version), "^~=<> ")
	trimmed = strings.TrimPrefix(trimmed, "v")
	if trimmed == "" {
		return ""
	}
	return "v" + trimmed
}
