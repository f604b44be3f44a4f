package minecraft

import "encoding/json"

// VersionManifest is the global list of all vanilla versions
// (version_manifest_v2.json)
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// VersionEntry points to the launch manifest of a single version
type VersionEntry struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
	// Sha1 of the launch manifest, only set in the v2 format
	Sha1        string `json:"sha1,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty"`
}

// ParseVersionManifest parses a version_manifest_v2.json document
func ParseVersionManifest(data []byte) (*VersionManifest, error) {
	manifest := &VersionManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Find returns the entry with the given id
func (v *VersionManifest) Find(id string) (*VersionEntry, bool) {
	for i := range v.Versions {
		if v.Versions[i].ID == id {
			return &v.Versions[i], true
		}
	}
	return nil, false
}
