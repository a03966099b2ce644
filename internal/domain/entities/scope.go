package entities

import (
	"fmt"
	"strings"
)

// DependencyScope identifies one dependency block of a manifest.
type DependencyScope string

const (
	ScopeProd     DependencyScope = "prod"
	ScopeDev      DependencyScope = "dev"
	ScopePeer     DependencyScope = "peer"
	ScopeOptional DependencyScope = "optional"
)

// AllScopes fixes the canonical scope order used wherever deterministic
// iteration over scopes is required.
var AllScopes = []DependencyScope{ScopeProd, ScopeDev, ScopePeer, ScopeOptional}

// ParseScope converts a user supplied scope name into a DependencyScope.
func ParseScope(raw string) (DependencyScope, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "prod", "production", "dependencies":
		return ScopeProd, nil
	case "dev", "development", "devdependencies":
		return ScopeDev, nil
	case "peer", "peerdependencies":
		return ScopePeer, nil
	case "optional", "optionaldependencies":
		return ScopeOptional, nil
	default:
		return "", fmt.Errorf("unknown dependency scope: %q", raw)
	}
}

// ParseScopes converts a list of scope names, rejecting the first unknown one.
func ParseScopes(raw []string) ([]DependencyScope, error) {
	scopes := make([]DependencyScope, 0, len(raw))
	for _, name := range raw {
		scope, err := ParseScope(name)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// NormalizeScopes unions the requested scopes onto the always-present
// production scope and returns them deduplicated, in canonical order.
// Requesting extra scopes broadens the selection, it never replaces it.
func NormalizeScopes(requested []DependencyScope) []DependencyScope {
	selected := map[DependencyScope]bool{ScopeProd: true}
	for _, scope := range requested {
		selected[scope] = true
	}

	scopes := make([]DependencyScope, 0, len(selected))
	for _, scope := range AllScopes {
		if selected[scope] {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}

// Block returns the manifest dependency block this scope selects.
func (s DependencyScope) Block(manifest ManifestSnapshot) map[string]string {
	switch s {
	case ScopeProd:
		return manifest.Dependencies
	case ScopeDev:
		return manifest.DevDependencies
	case ScopePeer:
		return manifest.PeerDependencies
	case ScopeOptional:
		return manifest.OptionalDependencies
	default:
		return nil
	}
}
