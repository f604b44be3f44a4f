package instances

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/paths"
	"github.com/shardmc/shard/internals/profile"
)

var contentKinds = []struct {
	dir        string
	defaultExt string
	refs       func(p *profile.Profile) []profile.ContentRef
}{
	{"mods", "jar", func(p *profile.Profile) []profile.ContentRef { return p.Mods }},
	{"resourcepacks", "zip", func(p *profile.Profile) []profile.ContentRef { return p.ResourcePacks }},
	{"shaderpacks", "zip", func(p *profile.Profile) []profile.ContentRef { return p.ShaderPacks }},
}

// Materialize creates the instance directory of a profile and returns its path.
// The content directories are emptied and filled again with links into the content
// store, then the profile overrides are copied over (existing files are kept).
func Materialize(p *paths.Paths, prof *profile.Profile) (string, error) {
	instanceDir := p.InstanceDir(prof.ID)
	if err := os.MkdirAll(instanceDir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "failed to create instance dir %s", instanceDir)
	}

	for _, kind := range contentKinds {
		target := filepath.Join(instanceDir, kind.dir)
		if err := os.RemoveAll(target); err != nil {
			return "", errors.Wrapf(err, "failed to clear %s", target)
		}
		if err := os.MkdirAll(target, os.ModePerm); err != nil {
			return "", err
		}

		for _, ref := range kind.refs(prof) {
			if !ref.IsEnabled() {
				continue
			}
			src := filepath.Join(p.StoreDir(kind.dir), ref.Hash)
			if _, err := os.Stat(src); err != nil {
				// not downloaded (yet), nothing we can do here
				continue
			}

			name := ref.FileName
			if name == "" {
				name = ref.Name
			}
			name = SanitizeFileName(name)
			if filepath.Ext(name) == "" {
				name += "." + kind.defaultExt
			}
			if err := linkOrCopy(src, UniquePath(target, name)); err != nil {
				return "", err
			}
		}
	}

	if err := CopyOverrides(p.ProfileOverrides(prof.ID), instanceDir); err != nil {
		return "", errors.Wrap(err, "failed to copy overrides")
	}
	return instanceDir, nil
}

// SanitizeFileName replaces path separators. An empty name becomes "file"
func SanitizeFileName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, name)
	if sanitized == "" {
		return "file"
	}
	return sanitized
}

// UniquePath returns dir/name or, if that exists, dir/name-1.ext, dir/name-2.ext …
func UniquePath(dir string, name string) string {
	candidate := filepath.Join(dir, name)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i < 1000; i++ {
		candidate = filepath.Join(dir, stem+"-"+strconv.Itoa(i)+ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
	return filepath.Join(dir, name)
}

func linkOrCopy(src string, dest string) error {
	if err := os.Symlink(src, dest); err == nil {
		return nil
	}
	// symlinks need special permissions on windows
	return copyFile(src, dest)
}

func copyFile(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy %s to %s", src, dest)
	}
	return out.Close()
}

// CopyOverrides copies everything from src into dest without replacing existing files.
// A missing src is fine
func CopyOverrides(src string, dest string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(src, func(fullPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		// get a relative path
		path, err := filepath.Rel(src, fullPath)
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}

		destPath := filepath.Join(dest, path)
		if info.IsDir() {
			return os.MkdirAll(destPath, os.ModePerm)
		}
		// never overwrite what is already there
		if _, err := os.Lstat(destPath); err == nil {
			return nil
		}
		return copyFile(fullPath, destPath)
	})
}
