package minecraft

import (
	"runtime"
	"strings"
)

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	// Action is "allow" or "disallow". Empty means "allow"
	Action   string          `json:"action,omitempty"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name,omitempty"`
	// Version of the os (can be a regex string). It is not evaluated
	Version string `json:"version,omitempty"`
	// Arch of the system
	Arch string `json:"arch,omitempty"`
}

// RuleContext contains the platform facts rules are evaluated against
type RuleContext struct {
	// OSName uses the manifest vocabulary: "windows", "osx" or "linux"
	OSName string
	// Arch uses the manifest vocabulary: "x64", "x86", "arm64" …
	Arch     string
	Features map[string]bool
}

// NewRuleContext returns a context for the given GOOS and GOARCH
// with all known features turned off
func NewRuleContext(goos string, goarch string) RuleContext {
	return RuleContext{
		OSName: OSName(goos),
		Arch:   ArchName(goarch),
		Features: map[string]bool{
			"is_demo_user":               false,
			"has_custom_resolution":      false,
			"has_quick_plays_support":    false,
			"is_quick_play_singleplayer": false,
			"is_quick_play_multiplayer":  false,
			"is_quick_play_realms":       false,
		},
	}
}

// CurrentRuleContext returns the context of the running system
func CurrentRuleContext() RuleContext {
	return NewRuleContext(runtime.GOOS, runtime.GOARCH)
}

// OSName maps a GOOS value to the name used in manifests
func OSName(goos string) string {
	if goos == "darwin" {
		return "osx"
	}
	return goos
}

// ArchName maps a GOARCH value to the name used in manifests
func ArchName(goarch string) string {
	switch goarch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "i386":
		return "x86"
	case "arm":
		return "arm32"
	case "aarch64":
		return "arm64"
	}
	// note: we don't know how other platforms are named
	return goarch
}

// ArchBits returns "64" or "32". It replaces "${arch}" in native classifiers
func (c RuleContext) ArchBits() string {
	if strings.Contains(c.Arch, "64") {
		return "64"
	}
	return "32"
}

// Matches returns true if every predicate of the rule holds in ctx.
// The action is not taken into account.
func (r Rule) Matches(ctx RuleContext) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != ctx.OSName {
			return false
		}
		// contains, because some manifests use suffixed markers
		if r.OS.Arch != "" && !strings.Contains(ctx.Arch, r.OS.Arch) {
			return false
		}
	}

	for feature, wanted := range r.Features {
		// unknown features are off
		if ctx.Features[feature] != wanted {
			return false
		}
	}
	return true
}

// Allows returns true for "allow" (and empty) actions
func (r Rule) Allows() bool {
	return r.Action == "" || r.Action == "allow"
}

// RulesAllow evaluates a rule list in ctx. An empty list always allows.
// Otherwise the last matching rule wins and nothing matching means disallowed.
func RulesAllow(rules []Rule, ctx RuleContext) bool {
	if len(rules) == 0 {
		return true
	}

	allowed := false
	for _, rule := range rules {
		if rule.Matches(ctx) {
			allowed = rule.Allows()
		}
	}
	return allowed
}
