package paths

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Paths describes where shard keeps its files. Everything lives below
// one base directory (defaults to ~/.shard)
type Paths struct {
	Base string

	StoreMods          string
	StoreResourcePacks string
	StoreShaderPacks   string
	Profiles           string
	Instances          string
	CacheDownloads     string
	CacheManifests     string

	// MinecraftRoot is the directory loader installers are pointed at
	MinecraftRoot      string
	MinecraftVersions  string
	MinecraftLibraries string
	AssetsRoot         string
	AssetObjects       string
	AssetIndexes       string
}

// New returns the layout below base. Relative bases are made absolute.
func New(base string) (*Paths, error) {
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "could not determine home directory")
		}
		base = filepath.Join(home, ".shard")
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base directory %s", base)
	}

	mcRoot := filepath.Join(abs, "minecraft")
	assets := filepath.Join(mcRoot, "assets")
	return &Paths{
		Base:               abs,
		StoreMods:          filepath.Join(abs, "store", "mods", "sha256"),
		StoreResourcePacks: filepath.Join(abs, "store", "resourcepacks", "sha256"),
		StoreShaderPacks:   filepath.Join(abs, "store", "shaderpacks", "sha256"),
		Profiles:           filepath.Join(abs, "profiles"),
		Instances:          filepath.Join(abs, "instances"),
		CacheDownloads:     filepath.Join(abs, "caches", "downloads"),
		CacheManifests:     filepath.Join(abs, "caches", "manifests"),
		MinecraftRoot:      mcRoot,
		MinecraftVersions:  filepath.Join(mcRoot, "versions"),
		MinecraftLibraries: filepath.Join(mcRoot, "libraries"),
		AssetsRoot:         assets,
		AssetObjects:       filepath.Join(assets, "objects"),
		AssetIndexes:       filepath.Join(assets, "indexes"),
	}, nil
}

// Ensure creates all directories of the layout
func (p *Paths) Ensure() error {
	dirs := []string{
		p.StoreMods,
		p.StoreResourcePacks,
		p.StoreShaderPacks,
		p.Profiles,
		p.Instances,
		p.CacheDownloads,
		p.CacheManifests,
		p.MinecraftVersions,
		p.MinecraftLibraries,
		p.AssetObjects,
		p.AssetIndexes,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	return nil
}

// VersionDir returns the directory holding the descriptor and client jar of a version
func (p *Paths) VersionDir(id string) string {
	return filepath.Join(p.MinecraftVersions, id)
}

// VersionJSON returns the path of the version descriptor for id
func (p *Paths) VersionJSON(id string) string {
	return filepath.Join(p.VersionDir(id), id+".json")
}

// VersionJar returns the path of the client jar for id
func (p *Paths) VersionJar(id string) string {
	return filepath.Join(p.VersionDir(id), id+".jar")
}

// Library returns the local path for a maven style (slash separated) path
func (p *Paths) Library(mavenPath string) string {
	return filepath.Join(p.MinecraftLibraries, filepath.FromSlash(mavenPath))
}

// AssetIndex returns the local path of an asset index document
func (p *Paths) AssetIndex(id string) string {
	return filepath.Join(p.AssetIndexes, id+".json")
}

// AssetObject returns the content addressed path of an asset object.
// hash has to be at least 2 characters long.
func (p *Paths) AssetObject(hash string) string {
	return filepath.Join(p.AssetObjects, hash[:2], hash)
}

// ManifestCache returns the path of a cached remote manifest
func (p *Paths) ManifestCache(name string) string {
	return filepath.Join(p.CacheManifests, name)
}

// Download returns the path of a cached download (installers for example)
func (p *Paths) Download(name string) string {
	return filepath.Join(p.CacheDownloads, name)
}

// InstanceDir returns the working directory of a profile
func (p *Paths) InstanceDir(profileID string) string {
	return filepath.Join(p.Instances, profileID)
}

// ProfileOverrides returns the directory whose content is copied over the instance
func (p *Paths) ProfileOverrides(profileID string) string {
	return filepath.Join(p.Profiles, profileID, "overrides")
}

// StoreDir returns the content store directory for "mods", "resourcepacks" or "shaderpacks"
func (p *Paths) StoreDir(kind string) string {
	switch kind {
	case "resourcepacks":
		return p.StoreResourcePacks
	case "shaderpacks":
		return p.StoreShaderPacks
	default:
		return p.StoreMods
	}
}
