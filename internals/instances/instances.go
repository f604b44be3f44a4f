// Package instances prepares everything a single game instance needs to be
// launched: its materialised content directories, libraries, natives,
// assets and finally the launch plan.
package instances

import (
	"net/http"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"go.uber.org/zap"
)

var (
	// ErrMissingMainClass is returned when the merged manifest has no main class
	ErrMissingMainClass = errors.New("mainClass missing from version manifest")
	// ErrMissingAssetIndex is returned when the merged manifest has no asset index
	ErrMissingAssetIndex = errors.New("assetIndex missing from version manifest")
	// ErrMissingClientDownload is returned when a client jar is required but not declared
	ErrMissingClientDownload = errors.New("client download missing from version manifest")
	// ErrZipSlip is returned when an archive entry would be written outside its target directory
	ErrZipSlip = errors.New("archive entry escapes the target directory")
)

// Preparer acquires libraries, natives, client jars and assets
type Preparer struct {
	Paths     *paths.Paths
	Endpoints endpoints.Set
	// HTTPClient is used for all downloads
	HTTPClient *http.Client
	// Workers limits concurrent asset downloads
	Workers int
	// Rules is the platform libraries and arguments are evaluated against
	Rules  minecraft.RuleContext
	Logger *zap.Logger
}

// NewPreparer returns a preparer for the running platform
func NewPreparer(p *paths.Paths, e endpoints.Set) *Preparer {
	return &Preparer{
		Paths:      p,
		Endpoints:  e,
		HTTPClient: ownhttp.New(),
		Workers:    8,
		Rules:      minecraft.CurrentRuleContext(),
		Logger:     zap.NewNop(),
	}
}

func (p *Preparer) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// ClasspathSeparator returns ";" on windows and ":" everywhere else
func ClasspathSeparator() string {
	return classpathSeparator(runtime.GOOS)
}

func classpathSeparator(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}
