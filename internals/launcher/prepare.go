package launcher

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/instances"
	"github.com/shardmc/shard/internals/loader"
	"github.com/shardmc/shard/internals/profile"
	"github.com/shardmc/shard/internals/versions"
	"go.uber.org/zap"
)

// Prepare makes sure everything needed to launch prof is on disk and returns
// the launch plan. Stages: queued, preparing and done (or error).
//
// Launches of the same profile must not be prepared at the same time.
func (l *Launcher) Prepare(ctx context.Context, prof *profile.Profile) (*instances.LaunchPlan, error) {
	l.notify(StageQueued, prof.ID)
	plan, err := l.prepare(ctx, prof)
	if err != nil {
		l.fail(err)
		return nil, err
	}
	l.notify(StageDone, "")
	return plan, nil
}

func (l *Launcher) prepare(ctx context.Context, prof *profile.Profile) (*instances.LaunchPlan, error) {
	l.notify(StagePreparing, prof.ID)
	logger := l.logger().With(zap.String("profile", prof.ID))

	if err := l.Paths.Ensure(); err != nil {
		return nil, err
	}
	instanceDir, err := instances.Materialize(l.Paths, prof)
	if err != nil {
		return nil, errors.Wrap(err, "materializing instance")
	}

	versionID, repackaged, err := l.provisionLoader(ctx, prof)
	if err != nil {
		return nil, errors.Wrap(err, "provisioning loader")
	}

	resolver := versions.New(l.Paths, l.Endpoints.VersionManifest)
	resolver.Client = resty.NewWithClient(l.HTTPClient)
	if l.ManifestTTL > 0 {
		resolver.ManifestTTL = l.ManifestTTL
	}
	resolver.Logger = logger
	resolved, err := resolver.Resolve(ctx, versionID)
	if err != nil {
		return nil, errors.Wrap(err, "resolving version chain")
	}
	logger.Info("resolved version chain",
		zap.String("version", resolved.Merged.ID),
		zap.Int("depth", len(resolved.Chain)),
	)

	prep := instances.NewPreparer(l.Paths, l.Endpoints)
	prep.HTTPClient = l.HTTPClient
	prep.Rules = l.Rules
	prep.Logger = logger
	if l.Workers > 0 {
		prep.Workers = l.Workers
	}

	clientJars, err := prep.EnsureClientJars(ctx, resolved.Chain, repackaged)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring client jar")
	}
	assetIndex, err := prep.EnsureAssets(ctx, resolved.Merged)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring assets")
	}
	libs, err := prep.ResolveLibraries(ctx, resolved.Merged, instanceDir, clientJars)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring libraries")
	}

	plan, err := instances.BuildLaunchPlan(&instances.PlanInput{
		Manifest:        resolved.Merged,
		Account:         l.Account,
		Runtime:         prof.Runtime,
		InstanceDir:     instanceDir,
		AssetsRoot:      l.Paths.AssetsRoot,
		LibraryDir:      l.Paths.MinecraftLibraries,
		AssetIndexID:    assetIndex,
		Libraries:       libs,
		Java:            l.java(ctx, prof, resolved),
		Rules:           l.Rules,
		LauncherVersion: l.Version,
		Logger:          logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building launch plan")
	}
	return plan, nil
}

// provisionLoader returns the version id to resolve and whether the loader
// repackages the client jar
func (l *Launcher) provisionLoader(ctx context.Context, prof *profile.Profile) (string, bool, error) {
	if !prof.HasLoader() {
		return prof.MCVersion, false, nil
	}

	loaderType, err := loader.ParseType(prof.Loader.Type)
	if err != nil {
		return "", false, err
	}
	provisioner, err := loader.New(loaderType, &loader.Options{
		Paths:      l.Paths,
		Endpoints:  l.Endpoints,
		Java:       l.javaOverride(prof),
		Runner:     l.Runner,
		Logger:     l.logger(),
		OnProgress: l.OnProgress,
	})
	if err != nil {
		return "", false, err
	}

	id, err := provisioner.Provision(ctx, prof.MCVersion, prof.Loader.Version)
	if err != nil {
		return "", false, err
	}
	l.logger().Info("provisioned loader",
		zap.Stringer("loader", loaderType),
		zap.String("version", id),
	)
	return id, loaderType.RepackagesClient(), nil
}
