package instances

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mholt/archiver/v3"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/merrors"
)

// ExtractNatives extracts the native archive into dest. Entries starting with
// one of the exclude prefixes are skipped. An entry that would end up outside
// of dest fails the whole extraction.
func ExtractNatives(archive string, dest string, exclude []string) error {
	root, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return errors.Wrapf(err, "invalid natives directory %s", dest)
	}

	// archiver only returns formatted errors, so the actual one is kept here
	var failure error
	walkErr := archiver.NewZip().Walk(archive, func(f archiver.File) error {
		name := entryName(f)
		if f.IsDir() || strings.HasSuffix(name, "/") {
			return nil
		}

		target, err := containedPath(root, name)
		if err != nil {
			failure = &merrors.IntegrityError{Subject: archive + "!" + name, Err: err}
			return archiver.ErrStopWalk
		}

		for _, prefix := range exclude {
			if strings.HasPrefix(name, prefix) {
				return nil
			}
		}

		if err := writeEntry(target, f); err != nil {
			failure = errors.Wrapf(err, "failed to extract %s", name)
			return archiver.ErrStopWalk
		}
		return nil
	})

	if failure != nil {
		return failure
	}
	if walkErr != nil {
		return errors.Wrapf(walkErr, "failed to read native archive %s", archive)
	}
	return nil
}

// entryName returns the full (slash separated) path of a zip entry.
// f.Name() only contains the base name
func entryName(f archiver.File) string {
	switch h := f.Header.(type) {
	case zip.FileHeader:
		return h.Name
	case *zip.FileHeader:
		return h.Name
	}
	return f.Name()
}

// containedPath joins name onto root and makes sure the result stays inside root
func containedPath(root string, name string) (string, error) {
	normalized := strings.ReplaceAll(name, `\`, "/")
	if normalized == "" ||
		strings.HasPrefix(normalized, "/") ||
		filepath.IsAbs(name) ||
		filepath.VolumeName(name) != "" {
		return "", ErrZipSlip
	}

	target := filepath.Join(root, filepath.FromSlash(normalized))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrZipSlip
	}
	return target, nil
}

func writeEntry(target string, src io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
