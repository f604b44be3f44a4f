package instances

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/downloadmgr"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/minecraft"
	"go.uber.org/zap"
)

// Libraries is the result of [Preparer.ResolveLibraries]
type Libraries struct {
	// Classpath contains the library jars followed by the client jars
	Classpath []string
	// NativesDir contains the extracted native libraries
	NativesDir string
}

// ClasspathString joins the classpath with the platform separator
func (l *Libraries) ClasspathString() string {
	return strings.Join(l.Classpath, ClasspathSeparator())
}

// NativesDir returns the natives directory of an instance
func NativesDir(instanceDir string) string {
	return filepath.Join(instanceDir, "natives")
}

// ResolveLibraries downloads every library that applies to the platform and extracts
// the natives into the instance. clientJars are appended to the classpath as they are.
//
// The natives directory is deleted and created again on every call, so two
// launches of the same instance must not run at the same time.
func (p *Preparer) ResolveLibraries(ctx context.Context, merged *minecraft.LaunchManifest, instanceDir string, clientJars []string) (*Libraries, error) {
	nativesDir := NativesDir(instanceDir)
	if err := os.RemoveAll(nativesDir); err != nil {
		return nil, errors.Wrapf(err, "failed to clear natives directory %s", nativesDir)
	}
	if err := os.MkdirAll(nativesDir, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "failed to create natives directory %s", nativesDir)
	}

	classpath := make([]string, 0, len(merged.Libraries)+len(clientJars))
	for i := range merged.Libraries {
		lib := &merged.Libraries[i]
		if !lib.Applies(p.Rules) {
			p.logger().Debug("skipping library", zap.String("name", lib.Name))
			continue
		}

		jar, err := p.ensureArtifact(ctx, lib)
		if err != nil {
			return nil, err
		}
		if jar != "" {
			classpath = append(classpath, jar)
		}

		classifier, ok := lib.NativeClassifier(p.Rules)
		if !ok {
			continue
		}
		native, err := p.ensureNative(ctx, lib, classifier)
		if err != nil {
			return nil, err
		}
		if native == "" {
			continue
		}
		if err := ExtractNatives(native, nativesDir, lib.ExcludePrefixes()); err != nil {
			return nil, err
		}
	}

	classpath = append(classpath, clientJars...)
	return &Libraries{Classpath: classpath, NativesDir: nativesDir}, nil
}

// ensureArtifact downloads the main jar of a library and returns its local path.
//
// Libraries without an artifact fall back to the derived maven path, except
// natives only libraries: a library with classifier downloads and a natives
// map but no artifact gets no classpath entry. Their main jar (old
// lwjgl-platform releases) does not exist on the repository, so the fallback
// would fail with a 404. An empty path is returned for them.
func (p *Preparer) ensureArtifact(ctx context.Context, lib *minecraft.Library) (string, error) {
	if lib.Downloads != nil && lib.Downloads.Artifact != nil {
		artifact := lib.Downloads.Artifact
		mavenPath := artifact.Path
		if mavenPath == "" {
			coord, err := minecraft.ParseCoordinate(lib.Name)
			if err != nil {
				return "", errors.Wrapf(err, "library %s has no path", lib.Name)
			}
			mavenPath = coord.Path()
		}
		target := p.Paths.Library(mavenPath)
		if err := p.download(ctx, artifact.URL, target, artifact.Sha1); err != nil {
			return "", errors.Wrapf(err, "failed to acquire library %s", lib.Name)
		}
		return target, nil
	}

	// old manifests list natives only libraries without an artifact
	if lib.Downloads != nil && len(lib.Downloads.Classifiers) != 0 && len(lib.Natives) != 0 {
		return "", nil
	}

	coord, err := minecraft.ParseCoordinate(lib.Name)
	if err != nil {
		p.logger().Warn("skipping library with invalid name", zap.String("name", lib.Name))
		return "", nil
	}
	target := p.Paths.Library(coord.Path())
	// no checksum available, any non empty file is trusted
	if err := p.download(ctx, p.libraryURL(lib, coord.Path()), target, ""); err != nil {
		return "", errors.Wrapf(err, "failed to acquire library %s", lib.Name)
	}
	return target, nil
}

// ensureNative downloads the native archive of a library for classifier
func (p *Preparer) ensureNative(ctx context.Context, lib *minecraft.Library, classifier string) (string, error) {
	if lib.Downloads != nil {
		if artifact, ok := lib.Downloads.Classifiers[classifier]; ok {
			mavenPath := artifact.Path
			if mavenPath == "" {
				coord, err := minecraft.ParseCoordinate(lib.Name)
				if err != nil {
					return "", errors.Wrapf(err, "native %s of %s has no path", classifier, lib.Name)
				}
				mavenPath = coord.WithClassifier(classifier).Path()
			}
			target := p.Paths.Library(mavenPath)
			if err := p.download(ctx, artifact.URL, target, artifact.Sha1); err != nil {
				return "", errors.Wrapf(err, "failed to acquire native %s of %s", classifier, lib.Name)
			}
			return target, nil
		}
	}

	coord, err := minecraft.ParseCoordinate(lib.Name)
	if err != nil {
		return "", nil
	}
	nativePath := coord.WithClassifier(classifier).Path()
	target := p.Paths.Library(nativePath)
	if err := p.download(ctx, p.libraryURL(lib, nativePath), target, ""); err != nil {
		return "", errors.Wrapf(err, "failed to acquire native %s of %s", classifier, lib.Name)
	}
	return target, nil
}

// libraryURL uses the repository of the library or the default one
func (p *Preparer) libraryURL(lib *minecraft.Library, mavenPath string) string {
	base := lib.URL
	if base == "" {
		base = p.Endpoints.Libraries
	}
	return endpoints.JoinURL(base, mavenPath)
}

func (p *Preparer) download(ctx context.Context, url string, target string, sha1 string) error {
	item := &downloadmgr.HTTPItem{Client: p.HTTPClient, URL: url, Target: target, Sha1: sha1}
	return item.Download(ctx)
}
