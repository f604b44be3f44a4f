package loader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

type forgePromotions struct {
	Promos map[string]string `json:"promos"`
}

type forgeProvisioner struct {
	opts *Options
}

// ForgeVersionID returns the "<mc>-<forge>" version used in forge maven paths.
// Loader versions that already contain a dash are used as they are.
func ForgeVersionID(mcVersion string, loaderVersion string) string {
	if strings.Contains(loaderVersion, "-") {
		return loaderVersion
	}
	return mcVersion + "-" + loaderVersion
}

func (f *forgeProvisioner) Provision(ctx context.Context, mcVersion string, loaderVersion string) (string, error) {
	if isLatest(loaderVersion) {
		latest, err := f.latest(ctx, mcVersion)
		if err != nil {
			return "", err
		}
		loaderVersion = latest
	}

	versionID := ForgeVersionID(mcVersion, loaderVersion)
	id := "forge-" + versionID
	target := f.opts.Paths.VersionJSON(id)
	if _, err := os.Stat(target); err == nil {
		return id, nil
	}

	installerURL := endpoints.JoinURL(f.opts.Endpoints.ForgeMaven, fmt.Sprintf(
		"net/minecraftforge/forge/%s/forge-%s-installer.jar",
		versionID, versionID,
	))
	if err := runInstaller(ctx, f.opts, installerURL, "forge-"+versionID+"-installer.jar"); err != nil {
		return "", err
	}

	// the installer writes "<mc>-forge-<forge>". legacy versions have more dashes
	// ("1.7.10-10.13.4.1614-1.7.10") so only the first one separates the mc version
	forgeVersion := versionID
	if _, after, found := strings.Cut(versionID, "-"); found {
		forgeVersion = after
	}
	installerID := mcVersion + "-forge-" + forgeVersion
	raw, err := os.ReadFile(f.opts.Paths.VersionJSON(installerID))
	if err != nil {
		return "", &merrors.ResolutionError{Subject: "forge installer did not create " + installerID, Err: ErrMissingProfile}
	}

	patched, err := sjson.SetBytes(raw, "id", id)
	if err != nil {
		return "", errors.Wrapf(err, "could not rewrite id of %s", installerID)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, patched, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write forge version json")
	}
	f.opts.Logger.Info("installed forge", zap.String("id", id), zap.String("installerID", installerID))
	return id, nil
}

// latest prefers the recommended promotion over the latest one
func (f *forgeProvisioner) latest(ctx context.Context, mcVersion string) (string, error) {
	promotions := &forgePromotions{}
	res, err := f.opts.Client.R().SetContext(ctx).SetResult(promotions).Get(f.opts.Endpoints.ForgePromotions)
	if err != nil {
		return "", errors.Wrap(err, "could not fetch forge promotions")
	}
	if res.IsError() {
		return "", fmt.Errorf("forge promotions did respond with unexpected status %s", res.Status())
	}

	for _, key := range []string{mcVersion + "-recommended", mcVersion + "-latest"} {
		if v := promotions.Promos[key]; v != "" {
			return v, nil
		}
	}
	return "", &merrors.ResolutionError{Subject: "forge for minecraft " + mcVersion, Err: ErrNoLoaderVersion}
}

type neoForgeVersions struct {
	IsSnapshot bool     `json:"isSnapshot"`
	Versions   []string `json:"versions"`
}

type neoForgeProvisioner struct {
	opts *Options
}

func (n *neoForgeProvisioner) Provision(ctx context.Context, mcVersion string, loaderVersion string) (string, error) {
	if isLatest(loaderVersion) {
		latest, err := n.latest(ctx, mcVersion)
		if err != nil {
			return "", err
		}
		loaderVersion = latest
	}

	// the installer already uses this id, nothing to rewrite
	id := "neoforge-" + loaderVersion
	target := n.opts.Paths.VersionJSON(id)
	if _, err := os.Stat(target); err == nil {
		return id, nil
	}

	installerURL := endpoints.JoinURL(n.opts.Endpoints.NeoForgeMaven, fmt.Sprintf(
		"releases/net/neoforged/neoforge/%s/neoforge-%s-installer.jar",
		loaderVersion, loaderVersion,
	))
	if err := runInstaller(ctx, n.opts, installerURL, "neoforge-"+loaderVersion+"-installer.jar"); err != nil {
		return "", err
	}

	if _, err := os.Stat(target); err != nil {
		return "", &merrors.ResolutionError{Subject: "neoforge installer did not create " + id, Err: ErrMissingProfile}
	}
	n.opts.Logger.Info("installed neoforge", zap.String("id", id))
	return id, nil
}

// latest returns the newest neoforge release for mcVersion.
// NeoForge versions drop the leading "1." of the minecraft version (1.20.4 -> 20.4.x)
func (n *neoForgeProvisioner) latest(ctx context.Context, mcVersion string) (string, error) {
	filter := strings.TrimPrefix(mcVersion, "1.") + "."
	versions := &neoForgeVersions{}
	res, err := n.opts.Client.R().
		SetContext(ctx).
		SetResult(versions).
		Get(endpoints.JoinURL(n.opts.Endpoints.NeoForgeMaven, "api/maven/versions/releases/net/neoforged/neoforge?filter="+url.QueryEscape(filter)))
	if err != nil {
		return "", errors.Wrap(err, "could not fetch neoforge versions")
	}
	if res.IsError() {
		return "", fmt.Errorf("neoforge maven did respond with unexpected status %s", res.Status())
	}
	if len(versions.Versions) == 0 {
		return "", &merrors.ResolutionError{Subject: "neoforge for minecraft " + mcVersion, Err: ErrNoLoaderVersion}
	}
	return newestVersion(versions.Versions), nil
}

// newestVersion returns the highest semver version. The list is sorted
// oldest first, so the last entry is used if nothing parses
func newestVersion(versions []string) string {
	newest := versions[len(versions)-1]
	var best *semver.Version
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			newest = raw
		}
	}
	return newest
}
