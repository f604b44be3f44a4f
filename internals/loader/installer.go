package loader

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/downloadmgr"
	"github.com/shardmc/shard/internals/java"
	"github.com/shardmc/shard/internals/merrors"
	"go.uber.org/zap"
)

// Command is an external process invocation
type Command struct {
	Path string
	Args []string
	// Dir is the working directory (empty for the current one)
	Dir string
}

// Runner runs a command to completion. A non zero exit status has to be
// reported as *merrors.InstallerError
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands using os/exec
type ExecRunner struct {
	// Stdout and Stderr receive the installer output. nil discards it
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command and waits for it
func (e *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &merrors.InstallerError{Installer: c.Path, ExitCode: exitErr.ExitCode()}
	}
	if err != nil {
		return errors.Wrapf(err, "failed to run %s", c.Path)
	}
	return nil
}

// runInstaller downloads an installer jar (if not cached yet) and runs it
// against the minecraft root. Only the exit status counts.
func runInstaller(ctx context.Context, opts *Options, installerURL string, fileName string) error {
	installer := opts.Paths.Download(fileName)
	item := &downloadmgr.HTTPItem{
		Client:     opts.Client.GetClient(),
		URL:        installerURL,
		Target:     installer,
		OnProgress: opts.OnProgress,
	}
	if err := item.Download(ctx); err != nil {
		return errors.Wrapf(err, "could not download installer %s", fileName)
	}

	if err := ensureLauncherProfiles(opts.Paths.MinecraftRoot); err != nil {
		return err
	}

	opts.Logger.Info("running installer (this may take a minute)", zap.String("installer", fileName))
	err := opts.Runner.Run(ctx, Command{
		Path: java.Resolve(opts.Java),
		Args: []string{"-jar", installer, "--installClient", opts.Paths.MinecraftRoot},
		Dir:  opts.Paths.CacheDownloads,
	})
	var installErr *merrors.InstallerError
	if errors.As(err, &installErr) {
		installErr.Installer = fileName
	}
	return err
}

// ensureLauncherProfiles creates the launcher_profiles.json the installers
// expect in the target directory
func ensureLauncherProfiles(root string) error {
	target := filepath.Join(root, "launcher_profiles.json")
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(`{"profiles":{}}`), 0o644)
}
