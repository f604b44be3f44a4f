// Package launcher runs the whole pipeline from a profile to a running game
package launcher

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/loader"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"github.com/shardmc/shard/internals/versions"
	"go.uber.org/zap"
)

// Stage is a coarse step of a launch
type Stage int

const (
	// StageQueued is reported before anything happens
	StageQueued Stage = iota
	// StagePreparing covers everything until the launch plan is built
	StagePreparing
	// StageLaunching is reported right before the process is started
	StageLaunching
	// StageRunning is reported while the game process runs
	StageRunning
	// StageDone is reported after a successful prepare or a clean game exit
	StageDone
	// StageError is reported with the failure message
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StagePreparing:
		return "preparing"
	case StageLaunching:
		return "launching"
	case StageRunning:
		return "running"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	}
	return "unknown"
}

// Event is passed to [Launcher.OnStage]
type Event struct {
	Stage Stage
	// Message is the error message for StageError and optional otherwise
	Message string
	Err     error
}

// Launcher prepares and launches profiles
type Launcher struct {
	Paths     *paths.Paths
	Endpoints endpoints.Set
	// HTTPClient is used for all downloads
	HTTPClient *http.Client
	Account    *minecraft.LaunchAccount

	// Java is the java override used when the profile does not set one
	Java string
	// Workers limits concurrent asset downloads
	Workers     int
	ManifestTTL time.Duration
	Rules       minecraft.RuleContext
	// Version is passed to the game as ${launcher_version}
	Version string
	// SkipJavaCheck disables running `java -version` before launching
	SkipJavaCheck bool

	Logger *zap.Logger
	// OnStage receives every stage change
	OnStage func(Event)
	// OnProgress receives the byte progress of loader installer downloads
	OnProgress func(written int64, total int64)
	// Runner runs loader installers. Defaults to [loader.ExecRunner]
	Runner loader.Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a launcher for the running platform
func New(p *paths.Paths, e endpoints.Set) *Launcher {
	return &Launcher{
		Paths:       p,
		Endpoints:   e,
		HTTPClient:  ownhttp.New(),
		Workers:     8,
		ManifestTTL: versions.DefaultManifestTTL,
		Rules:       minecraft.CurrentRuleContext(),
		Logger:      zap.NewNop(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Launcher) notify(stage Stage, msg string) {
	l.logger().Debug("stage", zap.Stringer("stage", stage), zap.String("message", msg))
	if l.OnStage != nil {
		l.OnStage(Event{Stage: stage, Message: msg})
	}
}

func (l *Launcher) fail(err error) {
	l.logger().Debug("stage", zap.Stringer("stage", StageError), zap.Error(err))
	if l.OnStage != nil {
		l.OnStage(Event{Stage: StageError, Message: err.Error(), Err: err})
	}
}
