package minecraft

import (
	"encoding/json"
	"strings"
)

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
	// URL overrides the resources server for this object
	URL string `json:"url,omitempty"`
}

// ParseAssetIndex parses an asset index document
func ParseAssetIndex(data []byte) (*AssetIndex, error) {
	index := &AssetIndex{}
	if err := json.Unmarshal(data, index); err != nil {
		return nil, err
	}
	return index, nil
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the explicit url of this asset or, if it has none,
// its path below base (usually "https://resources.download.minecraft.net")
func (a *AssetObject) DownloadURL(base string) string {
	if a.URL != "" {
		return a.URL
	}
	return strings.TrimRight(base, "/") + "/" + a.UnixPath()
}
