// Package versions resolves a version id into its inheritance chain of launch
// manifests and merges them into one effective manifest.
package versions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/downloadmgr"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"go.uber.org/zap"
)

const manifestCacheName = "version_manifest_v2.json"

// DefaultManifestTTL is how long the cached version manifest is used before it is fetched again
const DefaultManifestTTL = 24 * time.Hour

var (
	// ErrVersionNotFound is returned when a version is neither local nor in the version manifest
	ErrVersionNotFound = errors.New("version not found")
	// ErrInheritanceCycle is returned when a manifest (indirectly) inherits from itself
	ErrInheritanceCycle = errors.New("inheritance cycle detected")
	// ErrEmptyChain is returned when not a single manifest could be loaded
	ErrEmptyChain = errors.New("empty version chain")
)

// Resolver loads launch manifests from the versions directory and
// fetches missing ones using the remote version manifest
type Resolver struct {
	Paths       *paths.Paths
	Client      *resty.Client
	ManifestURL string
	ManifestTTL time.Duration
	Logger      *zap.Logger

	now func() time.Time
}

// Resolved is the result of [Resolver.Resolve]
type Resolved struct {
	// Merged is the effective manifest of the whole chain
	Merged *minecraft.LaunchManifest
	// Chain contains every loaded manifest, most specific first
	Chain []*minecraft.LaunchManifest
}

// New returns a resolver using the default http client
func New(p *paths.Paths, manifestURL string) *Resolver {
	return &Resolver{
		Paths:       p,
		Client:      resty.NewWithClient(ownhttp.New()),
		ManifestURL: manifestURL,
		ManifestTTL: DefaultManifestTTL,
		Logger:      zap.NewNop(),
		now:         time.Now,
	}
}

// Resolve follows `inheritsFrom` starting at id and folds the chain into one manifest
func (r *Resolver) Resolve(ctx context.Context, id string) (*Resolved, error) {
	chain := make([]*minecraft.LaunchManifest, 0, 2)
	visited := make(map[string]struct{})

	for current := id; current != ""; {
		if _, ok := visited[current]; ok {
			return nil, &merrors.ResolutionError{Subject: current, Err: ErrInheritanceCycle}
		}
		visited[current] = struct{}{}

		manifest, err := r.Load(ctx, current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, manifest)
		r.logger().Debug("loaded version manifest",
			zap.String("id", current),
			zap.String("inheritsFrom", manifest.InheritsFrom),
		)
		current = manifest.InheritsFrom
	}

	if len(chain) == 0 {
		return nil, &merrors.ResolutionError{Subject: id, Err: ErrEmptyChain}
	}

	return &Resolved{Merged: minecraft.FoldChain(chain), Chain: chain}, nil
}

// Load returns the manifest for id. Local manifests are used as they are,
// missing ones are fetched and persisted verbatim.
func (r *Resolver) Load(ctx context.Context, id string) (*minecraft.LaunchManifest, error) {
	target := r.Paths.VersionJSON(id)

	data, err := os.ReadFile(target)
	switch {
	case err == nil:
		manifest, err := minecraft.ParseLaunchManifest(data)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version manifest %s", target)
		}
		return manifest, nil
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "could not read %s", target)
	}

	versions, err := r.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := versions.Find(id)
	if !ok {
		return nil, &merrors.ResolutionError{Subject: id, Err: ErrVersionNotFound}
	}

	r.logger().Info("fetching version manifest", zap.String("id", id), zap.String("url", entry.URL))
	item := &downloadmgr.HTTPItem{
		Client: r.Client.GetClient(),
		URL:    entry.URL,
		Target: target,
		Sha1:   entry.Sha1,
	}
	if err := item.Download(ctx); err != nil {
		return nil, errors.Wrapf(err, "could not fetch version %s", id)
	}

	data, err = os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	manifest, err := minecraft.ParseLaunchManifest(data)
	if err != nil {
		// do not keep garbage around, it would be picked up as a local manifest next time
		os.Remove(target)
		return nil, errors.Wrapf(err, "invalid version manifest for %s", id)
	}
	return manifest, nil
}

// Manifest returns the remote version manifest. It is cached on disk
// and only fetched again after ManifestTTL or when the cache is unreadable.
func (r *Resolver) Manifest(ctx context.Context) (*minecraft.VersionManifest, error) {
	cache := r.Paths.ManifestCache(manifestCacheName)

	cached, fresh := r.readCachedManifest(cache)
	if cached != nil && fresh {
		return cached, nil
	}

	res, err := r.Client.R().SetContext(ctx).Get(r.ManifestURL)
	if err == nil && res.IsError() {
		err = fmt.Errorf("unexpected status %s", res.Status())
	}
	if err != nil {
		if cached != nil {
			r.logger().Warn("using outdated version manifest", zap.Error(err))
			return cached, nil
		}
		return nil, errors.Wrapf(err, "could not fetch version manifest from %s", r.ManifestURL)
	}

	manifest, err := minecraft.ParseVersionManifest(res.Body())
	if err != nil {
		return nil, errors.Wrap(err, "invalid version manifest")
	}
	if err := writeFile(cache, res.Body()); err != nil {
		r.logger().Warn("could not cache version manifest", zap.Error(err))
	}
	return manifest, nil
}

// readCachedManifest returns the cached manifest (if readable) and whether it is still fresh
func (r *Resolver) readCachedManifest(cache string) (*minecraft.VersionManifest, bool) {
	stat, err := os.Stat(cache)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(cache)
	if err != nil {
		return nil, false
	}
	manifest, err := minecraft.ParseVersionManifest(data)
	if err != nil {
		r.logger().Debug("ignoring broken version manifest cache", zap.Error(err))
		return nil, false
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	ttl := r.ManifestTTL
	if ttl <= 0 {
		ttl = DefaultManifestTTL
	}
	return manifest, now().Sub(stat.ModTime()) < ttl
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
