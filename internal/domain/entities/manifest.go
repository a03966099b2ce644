package entities

import (
	"encoding/json"
	"fmt"
)

// ManifestFileName is the dependency manifest file every package carries.
const ManifestFileName = "package.json"

// ManifestSnapshot is one parsed package.json as it existed at a single Git
// ref. Snapshots are value objects: parsed once, never mutated afterwards.
type ManifestSnapshot struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// ParseManifest decodes raw package.json bytes into a snapshot.
func ParseManifest(data []byte) (ManifestSnapshot, error) {
	var snapshot ManifestSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return ManifestSnapshot{}, fmt.Errorf("failed to parse %s: %w", ManifestFileName, err)
	}
	return snapshot, nil
}
