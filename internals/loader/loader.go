// Package loader makes sure a launch manifest for a mod loader exists locally.
// Fabric and Quilt profiles are fetched from their meta APIs, Forge and
// NeoForge are installed by running their installer jar.
package loader

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedLoader is returned for unknown loader types
	ErrUnsupportedLoader = errors.New("unsupported loader type")
	// ErrMissingProfile is returned when no profile exists for a loader version or
	// an installer did not produce the expected launch manifest
	ErrMissingProfile = errors.New("loader profile missing")
	// ErrNoLoaderVersion is returned when "latest" can not be resolved
	ErrNoLoaderVersion = errors.New("no loader version found")
)

// Latest is the loader version that is resolved to the newest (stable) version
const Latest = "latest"

// Type is a supported mod loader
type Type int

const (
	// Fabric is https://fabricmc.net
	Fabric Type = iota + 1
	// Quilt is https://quiltmc.org
	Quilt
	// Forge is https://minecraftforge.net
	Forge
	// NeoForge is https://neoforged.net
	NeoForge
)

func (t Type) String() string {
	switch t {
	case Fabric:
		return "fabric"
	case Quilt:
		return "quilt"
	case Forge:
		return "forge"
	case NeoForge:
		return "neoforge"
	default:
		return "unknown"
	}
}

// RepackagesClient is true for loaders that ship their own patched client.
// The vanilla client jar is not put on the classpath for them
func (t Type) RepackagesClient() bool {
	return t == Forge || t == NeoForge
}

// ParseType parses a loader name like "fabric" (case insensitive)
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fabric":
		return Fabric, nil
	case "quilt":
		return Quilt, nil
	case "forge":
		return Forge, nil
	case "neoforge":
		return NeoForge, nil
	}
	return 0, &merrors.ResolutionError{Subject: s, Err: ErrUnsupportedLoader}
}

// Provisioner makes sure a launch manifest exists for a minecraft and loader version
type Provisioner interface {
	// Provision returns the version id of the loader manifest. The manifest
	// is guaranteed to exist in the versions directory afterwards.
	// loaderVersion can be [Latest]
	Provision(ctx context.Context, mcVersion string, loaderVersion string) (string, error)
}

// Options are shared by all provisioners
type Options struct {
	Paths     *paths.Paths
	Endpoints endpoints.Set
	// Client is used for the meta APIs and installer downloads
	Client *resty.Client
	// Java is the java override used to run installers (empty for the default)
	Java string
	// Runner runs installer processes. Defaults to ExecRunner
	Runner Runner
	Logger *zap.Logger
	// OnProgress receives the byte progress of installer downloads
	OnProgress func(written int64, total int64)
}

// New returns the provisioner for t
func New(t Type, opts *Options) (Provisioner, error) {
	o := *opts
	if o.Client == nil {
		o.Client = resty.NewWithClient(ownhttp.NewThrottled(10))
	}
	if o.Runner == nil {
		o.Runner = &ExecRunner{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	switch t {
	case Fabric:
		return &metaProvisioner{name: "fabric", base: o.Endpoints.FabricMeta, stableOnly: true, opts: &o}, nil
	case Quilt:
		return &metaProvisioner{name: "quilt", base: o.Endpoints.QuiltMeta, opts: &o}, nil
	case Forge:
		return &forgeProvisioner{opts: &o}, nil
	case NeoForge:
		return &neoForgeProvisioner{opts: &o}, nil
	}
	return nil, &merrors.ResolutionError{Subject: t.String(), Err: ErrUnsupportedLoader}
}

func isLatest(v string) bool {
	return v == "" || strings.EqualFold(v, Latest)
}
