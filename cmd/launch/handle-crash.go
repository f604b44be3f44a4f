package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/jwalton/gchalk"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/launcher"
	"github.com/shardmc/shard/internals/logparser"
	"github.com/shardmc/shard/internals/profile"
)

// handleCrash prints some debug info after minecraft exited with an error
func handleCrash(prof *profile.Profile, exitErr *launcher.ExitError) {
	instanceDir := globals.Paths.InstanceDir(prof.ID)

	fmt.Println("--------------------")
	fmt.Println("Minecraft crashed :(")
	fmt.Println("Here is some debug info")
	fmt.Println("[system]")
	fmt.Println("  OS: " + runtime.GOOS + "/" + runtime.GOARCH)
	fmt.Printf("  CPUs: %d\n", runtime.NumCPU())
	fmt.Println("[profile]")
	fmt.Println("  id: " + prof.ID)
	fmt.Println("  minecraft: " + prof.MCVersion)
	if prof.HasLoader() {
		fmt.Printf("  loader: %s %s\n", prof.Loader.Type, prof.Loader.Version)
	}
	fmt.Printf("  exit code: %d\n", exitErr.Code)

	if f, err := os.Open(filepath.Join(instanceDir, "logs", "latest.log")); err == nil {
		defer f.Close()
		if lines, err := logparser.LastErrors(f, 10); err == nil && len(lines) != 0 {
			fmt.Println("[last errors]")
			for _, line := range lines {
				fmt.Println("  " + gchalk.Red(line.String()))
			}
			printHints(lines)
		}
	}

	if report := newestCrashReport(instanceDir); report != "" {
		fmt.Println("\nCrash report: " + report)
	}
}

// printHints explains exceptions shard knows about
func printHints(lines []*logparser.Line) {
	for _, line := range lines {
		var missing *logparser.MissingModsError
		if errors.As(logparser.ParseException(line), &missing) {
			fmt.Println(gchalk.Yellow("  hint: " + missing.Error() + ". Add the missing mods to the profile."))
		}
	}
}

func newestCrashReport(instanceDir string) string {
	reports, err := filepath.Glob(filepath.Join(instanceDir, "crash-reports", "*.txt"))
	if err != nil || len(reports) == 0 {
		return ""
	}
	// names start with the date
	sort.Strings(reports)
	return reports[len(reports)-1]
}
