// Package profile reads the declarative description of what to launch
package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/paths"
	strcase "github.com/stoewer/go-strcase"
)

// ErrMissingVersion is returned when a profile has no minecraft version
var ErrMissingVersion = errors.New("profile is missing the required mcVersion field")

// Profile is a minecraft version, an optional mod loader and the content to launch it with
type Profile struct {
	// ID is derived from the file (or directory) name if not set
	ID        string  `toml:"id" json:"id"`
	MCVersion string  `toml:"mcVersion" json:"mcVersion"`
	Loader    *Loader `toml:"loader" json:"loader,omitempty"`
	Runtime   Runtime `toml:"runtime" json:"runtime"`

	Mods          []ContentRef `toml:"mods" json:"mods,omitempty"`
	ResourcePacks []ContentRef `toml:"resourcepacks" json:"resourcepacks,omitempty"`
	ShaderPacks   []ContentRef `toml:"shaderpacks" json:"shaderpacks,omitempty"`
}

// Loader selects a mod loader. Version can be "latest"
type Loader struct {
	Type    string `toml:"type" json:"type"`
	Version string `toml:"version" json:"version"`
}

// Runtime contains overrides for the java process
type Runtime struct {
	// Java is the java executable to use
	Java string `toml:"java" json:"java,omitempty"`
	// Memory is the max heap size like "4G" (passed as -Xmx)
	Memory string `toml:"memory" json:"memory,omitempty"`
	// Args are additional jvm arguments
	Args []string `toml:"args" json:"args,omitempty"`
}

// ContentRef references a file in the content store by its sha256 hash
type ContentRef struct {
	Name string `toml:"name" json:"name"`
	Hash string `toml:"hash" json:"hash"`
	// FileName is used instead of Name for the file in the instance
	FileName string `toml:"fileName" json:"file_name,omitempty"`
	// Enabled defaults to true
	Enabled *bool `toml:"enabled" json:"enabled,omitempty"`
}

// IsEnabled returns true unless the content was explicitly disabled
func (c *ContentRef) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// HasLoader returns true if a mod loader is requested
func (p *Profile) HasLoader() bool {
	return p.Loader != nil && p.Loader.Type != ""
}

// Parse reads a profile from TOML or JSON (detected by the first character)
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, p); err != nil {
			return nil, errors.Wrap(err, "invalid profile json")
		}
	} else if err := toml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrap(err, "invalid profile toml")
	}

	if p.MCVersion == "" {
		return nil, ErrMissingVersion
	}
	return p, nil
}

// Load reads the profile at path. The id defaults to the kebab cased file name
// ("My Pack.toml" becomes "my-pack"), or the directory name for "profile.json" files
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read profile %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	if p.ID == "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if name == "profile" {
			name = filepath.Base(filepath.Dir(path))
		}
		p.ID = strcase.KebabCase(name)
	}
	return p, nil
}

// LoadByID reads profiles/<id>/profile.toml (or profile.json)
func LoadByID(p *paths.Paths, id string) (*Profile, error) {
	dir := filepath.Join(p.Profiles, id)
	for _, name := range []string{"profile.toml", "profile.json"} {
		file := filepath.Join(dir, name)
		if _, err := os.Stat(file); err == nil {
			profile, err := Load(file)
			if err != nil {
				return nil, err
			}
			if profile.ID == "" || profile.ID != id {
				profile.ID = id
			}
			return profile, nil
		}
	}
	return nil, errors.Errorf("profile %s not found in %s", id, dir)
}
