package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type loaderVersion struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// metaProvisioner fetches ready made profiles from the fabric (or quilt) meta API
type metaProvisioner struct {
	name string
	base string
	// stableOnly picks the first stable version as latest (fabric marks versions as stable, quilt does not)
	stableOnly bool
	opts       *Options
}

func (m *metaProvisioner) Provision(ctx context.Context, mcVersion string, loaderVersion string) (string, error) {
	if isLatest(loaderVersion) {
		latest, err := m.latest(ctx)
		if err != nil {
			return "", err
		}
		loaderVersion = latest
	}

	profileURL := endpoints.JoinURL(m.base, fmt.Sprintf(
		"versions/loader/%s/%s/profile/json",
		url.PathEscape(mcVersion),
		url.PathEscape(loaderVersion),
	))
	res, err := m.opts.Client.R().SetContext(ctx).Get(profileURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not fetch %s profile", m.name)
	}
	subject := fmt.Sprintf("%s %s for minecraft %s", m.name, loaderVersion, mcVersion)
	switch {
	case res.StatusCode() == http.StatusNotFound || res.StatusCode() == http.StatusBadRequest:
		return "", &merrors.ResolutionError{Subject: subject, Err: ErrMissingProfile}
	case res.IsError():
		return "", fmt.Errorf("%s meta API did respond with unexpected status %s", m.name, res.Status())
	}

	body := res.Body()
	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return "", &merrors.ResolutionError{Subject: subject + " (profile has no id)", Err: ErrMissingProfile}
	}

	target := m.opts.Paths.VersionJSON(id)
	if _, err := os.Stat(target); err == nil {
		return id, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s version json", m.name)
	}
	m.opts.Logger.Info("installed loader profile", zap.String("loader", m.name), zap.String("id", id))
	return id, nil
}

// latest returns the first stable version (or the first at all).
// The meta APIs list the newest versions first
func (m *metaProvisioner) latest(ctx context.Context) (string, error) {
	versions := make([]loaderVersion, 0)
	res, err := m.opts.Client.R().
		SetContext(ctx).
		SetResult(&versions).
		Get(endpoints.JoinURL(m.base, "versions/loader"))
	if err != nil {
		return "", errors.Wrapf(err, "could not fetch %s loader versions", m.name)
	}
	if res.IsError() {
		return "", fmt.Errorf("%s meta API did respond with unexpected status %s", m.name, res.Status())
	}

	if m.stableOnly {
		for _, v := range versions {
			if v.Stable {
				return v.Version, nil
			}
		}
	}
	if len(versions) == 0 {
		return "", &merrors.ResolutionError{Subject: m.name, Err: ErrNoLoaderVersion}
	}
	return versions[0].Version, nil
}
