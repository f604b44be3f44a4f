package instances

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/downloadmgr"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/minecraft"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EnsureAssets downloads the asset index of merged and every object it lists.
// It returns the asset index id
func (p *Preparer) EnsureAssets(ctx context.Context, merged *minecraft.LaunchManifest) (string, error) {
	ref := merged.AssetIndex
	if ref == nil || ref.ID == "" {
		return "", &merrors.ResolutionError{Subject: merged.ID, Err: ErrMissingAssetIndex}
	}

	indexPath := p.Paths.AssetIndex(ref.ID)
	if err := p.download(ctx, ref.URL, indexPath, ref.Sha1); err != nil {
		return "", errors.Wrapf(err, "failed to acquire asset index %s", ref.ID)
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return "", err
	}
	index, err := minecraft.ParseAssetIndex(data)
	if err != nil {
		return "", errors.Wrapf(err, "invalid asset index %s", ref.ID)
	}

	// sorted, so downloads (and errors) happen in a stable order
	names := maps.Keys(index.Objects)
	slices.Sort(names)

	mgr := downloadmgr.New(p.Workers)
	queued := make(map[string]struct{}, len(names))
	for _, name := range names {
		object := index.Objects[name]
		if len(object.Hash) < 2 {
			continue
		}
		// the same object can be listed under multiple names
		if _, ok := queued[object.Hash]; ok {
			continue
		}
		queued[object.Hash] = struct{}{}

		mgr.Add(&downloadmgr.HTTPItem{
			Client: p.HTTPClient,
			URL:    object.DownloadURL(p.Endpoints.Resources),
			Target: p.Paths.AssetObject(object.Hash),
			Size:   object.Size,
			Sha1:   object.Hash,
		})
	}

	p.logger().Debug("ensuring assets", zap.String("index", ref.ID), zap.Int("objects", mgr.Len()))
	if err := mgr.Start(ctx); err != nil {
		return "", errors.Wrapf(err, "failed to acquire assets of %s", ref.ID)
	}
	return ref.ID, nil
}

// EnsureClientJars downloads the client jar of every chain entry that declares one.
// The returned jars belong on the classpath, unless the loader repackages the
// client itself (forge and neoforge) in which case nothing is returned.
func (p *Preparer) EnsureClientJars(ctx context.Context, chain []*minecraft.LaunchManifest, repackaged bool) ([]string, error) {
	jars := make([]string, 0, 1)
	for _, entry := range chain {
		if entry.Downloads == nil {
			continue
		}
		if !entry.HasClientDownload() {
			return nil, &merrors.ResolutionError{Subject: entry.ID, Err: ErrMissingClientDownload}
		}
		client := entry.Downloads.Client
		target := p.Paths.VersionJar(entry.ID)
		if err := p.download(ctx, client.URL, target, client.Sha1); err != nil {
			return nil, errors.Wrapf(err, "failed to acquire client jar of %s", entry.ID)
		}
		if !repackaged {
			jars = append(jars, target)
		}
	}
	return jars, nil
}
