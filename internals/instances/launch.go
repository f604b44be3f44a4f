package instances

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/profile"
	"go.uber.org/zap"
)

// LauncherName is passed to the game as ${launcher_name}
const LauncherName = "shard"

// LaunchPlan is everything needed to start the game process
type LaunchPlan struct {
	InstanceDir string
	Java        string
	JVMArgs     []string
	// Classpath is passed with -cp, it never is part of JVMArgs
	Classpath string
	MainClass string
	GameArgs  []string
}

// Args returns the full argument list (without the java executable)
func (l *LaunchPlan) Args() []string {
	args := make([]string, 0, len(l.JVMArgs)+len(l.GameArgs)+3)
	args = append(args, l.JVMArgs...)
	args = append(args, "-cp", l.Classpath, l.MainClass)
	return append(args, l.GameArgs...)
}

// Command returns a cmd that runs the plan in the instance directory
func (l *LaunchPlan) Command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, l.Java, l.Args()...)
	cmd.Dir = l.InstanceDir
	return cmd
}

// PlanInput is everything [BuildLaunchPlan] needs
type PlanInput struct {
	Manifest     *minecraft.LaunchManifest
	Account      *minecraft.LaunchAccount
	Runtime      profile.Runtime
	InstanceDir  string
	AssetsRoot   string
	LibraryDir   string
	AssetIndexID string
	Libraries    *Libraries
	// Java is the resolved java executable
	Java            string
	Rules           minecraft.RuleContext
	LauncherVersion string
	Logger          *zap.Logger
}

var variablePattern = regexp.MustCompile(`\$\{([a-zA-Z0-9_]+)\}`)

// BuildLaunchPlan renders the arguments of the merged manifest and applies the runtime overrides
func BuildLaunchPlan(in *PlanInput) (*LaunchPlan, error) {
	manifest := in.Manifest
	if manifest.MainClass == "" {
		return nil, &merrors.ResolutionError{Subject: manifest.ID, Err: ErrMissingMainClass}
	}
	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	vars := Variables(in)
	r := &renderer{vars: vars, unresolved: map[string]struct{}{}}

	var jvmArgs, gameArgs []string
	switch {
	case manifest.Arguments != nil && len(manifest.Arguments.JVM)+len(manifest.Arguments.Game) > 0:
		jvmArgs = r.renderList(manifest.Arguments.JVM, in.Rules)
		gameArgs = r.renderList(manifest.Arguments.Game, in.Rules)
	case manifest.MinecraftArguments != "":
		// legacy manifests only have one string of game arguments
		parts, err := shellwords.Parse(manifest.MinecraftArguments)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse minecraftArguments")
		}
		for _, part := range parts {
			gameArgs = append(gameArgs, r.substitute(part))
		}
	}

	for name := range r.unresolved {
		logger.Warn("unresolved launch variable", zap.String("variable", name))
	}

	if in.Runtime.Memory != "" && !hasPrefix(jvmArgs, "-Xmx") {
		jvmArgs = append(jvmArgs, "-Xmx"+in.Runtime.Memory)
	}
	jvmArgs = append(jvmArgs, in.Runtime.Args...)
	if !hasPrefix(jvmArgs, "-Djava.library.path=") {
		jvmArgs = append(jvmArgs, "-Djava.library.path="+vars["natives_directory"])
	}
	jvmArgs = stripClasspath(jvmArgs)

	return &LaunchPlan{
		InstanceDir: in.InstanceDir,
		Java:        in.Java,
		JVMArgs:     jvmArgs,
		Classpath:   vars["classpath"],
		MainClass:   manifest.MainClass,
		GameArgs:    gameArgs,
	}, nil
}

// Variables returns the values for the ${…} placeholders of launch arguments
func Variables(in *PlanInput) map[string]string {
	account := in.Account
	if account == nil {
		account = &minecraft.LaunchAccount{}
	}

	classpath := make([]string, 0)
	natives := ""
	if in.Libraries != nil {
		for _, entry := range in.Libraries.Classpath {
			classpath = append(classpath, filepath.ToSlash(entry))
		}
		natives = filepath.ToSlash(in.Libraries.NativesDir)
	}

	launcherVersion := in.LauncherVersion
	if launcherVersion == "" {
		launcherVersion = "dev"
	}

	return map[string]string{
		"auth_player_name":    account.Username,
		"version_name":        in.Manifest.ID,
		"game_directory":      filepath.ToSlash(in.InstanceDir),
		"assets_root":         filepath.ToSlash(in.AssetsRoot),
		"assets_index_name":   in.AssetIndexID,
		"auth_uuid":           account.UUID,
		"auth_access_token":   account.AccessToken,
		"clientid":            account.UUID,
		"auth_xuid":           account.XUID,
		"user_type":           account.UserType(),
		"user_properties":     "{}",
		"version_type":        in.Manifest.VersionType(),
		"natives_directory":   natives,
		"library_directory":   filepath.ToSlash(in.LibraryDir),
		"classpath_separator": ClasspathSeparator(),
		"classpath":           strings.Join(classpath, ClasspathSeparator()),
		"launcher_name":       LauncherName,
		"launcher_version":    launcherVersion,
	}
}

type renderer struct {
	vars       map[string]string
	unresolved map[string]struct{}
}

func (r *renderer) renderList(list []minecraft.Argument, rules minecraft.RuleContext) []string {
	out := make([]string, 0, len(list))
	for _, arg := range list {
		if !arg.Applies(rules) {
			continue
		}
		for _, value := range arg.Value {
			out = append(out, r.substitute(value))
		}
	}
	return out
}

// substitute replaces known variables. Unknown ones are kept as they are
func (r *renderer) substitute(value string) string {
	return variablePattern.ReplaceAllStringFunc(value, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := r.vars[name]; ok {
			return v
		}
		r.unresolved[name] = struct{}{}
		return match
	})
}

func hasPrefix(args []string, prefix string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

// stripClasspath removes "-cp <value>" and "-classpath <value>" pairs
func stripClasspath(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "-cp" || args[i] == "-classpath" {
			// skip the value too
			i++
			continue
		}
		out = append(out, args[i])
	}
	return out
}
