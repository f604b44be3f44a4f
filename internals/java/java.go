// Package java finds the java executable used to run the game and loader installers
package java

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Resolve returns the java executable to use. An explicit override wins,
// then `$JAVA_HOME/bin/java`, then whatever "java" is in the PATH
func Resolve(override string) string {
	return resolve(override, os.Getenv("JAVA_HOME"), runtime.GOOS)
}

func resolve(override string, javaHome string, goos string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if javaHome != "" {
		bin := "java"
		if goos == "windows" {
			bin = "java.exe"
		}
		return filepath.Join(javaHome, "bin", bin)
	}
	return "java"
}

var versionPattern = regexp.MustCompile(`version "([^"]+)"`)

// DetectMajor runs `java -version` and returns the major version
// (8 for "1.8.0_292", 17 for "17.0.2")
func DetectMajor(ctx context.Context, bin string) (int, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-version")
	// java prints its version to stderr
	cmd.Stderr = &out
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, errors.Wrapf(err, "could not run %s", bin)
	}
	return ParseMajor(out.String())
}

// ParseMajor extracts the major version from `java -version` output
func ParseMajor(output string) (int, error) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return 0, errors.New("no java version in output")
	}
	raw := match[1]
	// "1.8.0_292" style versions
	if strings.HasPrefix(raw, "1.") {
		parts := strings.SplitN(raw, ".", 3)
		return strconv.Atoi(parts[1])
	}
	// strip build metadata like "_292" or "+7"
	raw = strings.FieldsFunc(raw, func(r rune) bool { return r == '_' || r == '+' })[0]
	v, err := semver.NewVersion(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid java version %q", match[1])
	}
	return int(v.Major()), nil
}

// RecommendedMajor returns the java major version a minecraft version needs.
// manifestMajor is used if it is known (newer launch manifests declare it)
func RecommendedMajor(mcVersion string, manifestMajor int) int {
	if manifestMajor > 0 {
		return manifestMajor
	}
	v, err := semver.NewVersion(mcVersion)
	if err != nil {
		// snapshots and such, just assume the newest
		return 21
	}
	switch {
	case !v.LessThan(semver.MustParse("1.20.5")):
		return 21
	case !v.LessThan(semver.MustParse("1.18.0")):
		return 17
	case !v.LessThan(semver.MustParse("1.17.0")):
		return 16
	default:
		return 8
	}
}
