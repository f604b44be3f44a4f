package launcher

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/instances"
	"github.com/shardmc/shard/internals/profile"
	"go.uber.org/zap"
)

// ExitError is returned when the game exits with a non zero status
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("minecraft exited with status %d", e.Code)
}

// Launch prepares prof and runs the game. It blocks until the game exits.
// Stages: queued, preparing, launching, running and done (or error).
func (l *Launcher) Launch(ctx context.Context, prof *profile.Profile) error {
	l.notify(StageQueued, prof.ID)
	plan, err := l.prepare(ctx, prof)
	if err != nil {
		l.fail(err)
		return err
	}
	if err := l.run(ctx, plan); err != nil {
		l.fail(err)
		return err
	}
	l.notify(StageDone, "")
	return nil
}

// Run starts an already prepared plan and blocks until the game exits
func (l *Launcher) Run(ctx context.Context, plan *instances.LaunchPlan) error {
	if err := l.run(ctx, plan); err != nil {
		l.fail(err)
		return err
	}
	l.notify(StageDone, "")
	return nil
}

func (l *Launcher) run(ctx context.Context, plan *instances.LaunchPlan) error {
	l.notify(StageLaunching, plan.MainClass)

	cmd := plan.Command(ctx)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	l.logger().Debug("starting game",
		zap.String("java", plan.Java),
		// game args contain the access token
		zap.Strings("jvmArgs", plan.JVMArgs),
		zap.String("mainClass", plan.MainClass),
		zap.String("dir", cmd.Dir),
	)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "starting %s", plan.Java)
	}
	l.notify(StageRunning, "")

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return errors.Wrap(err, "waiting for minecraft")
	}
	return nil
}
