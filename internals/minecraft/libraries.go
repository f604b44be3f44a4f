package minecraft

import (
	"strings"
)

// Library is a minecraft library
type Library struct {
	// Name is the maven coordinate `group:artifact:version[:classifier[:ext]]`
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	// URL is the base url of the maven repository to use instead of the default one
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules []Rule `json:"rules,omitempty"`
	// Natives is a map of OS names to native library classifiers.
	// This field is no longer used after 1.19
	// Newer library versions extract the native library from a jar at runtime.
	Natives map[string]string `json:"natives,omitempty"`
	// Extract controls what is extracted from native archives
	Extract *ExtractRules `json:"extract,omitempty"`
}

// LibraryDownloads are the explicit artifacts of a library
type LibraryDownloads struct {
	Artifact *Artifact `json:"artifact,omitempty"`
	// Classifiers is a list of additional artifacts.
	// It is used to download native libraries.
	// The `Natives` field is used to determine which classifier to use.
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// ExtractRules lists path prefixes that are not extracted from native archives
type ExtractRules struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Applies returns true if the rules of this library allow it in ctx
func (l *Library) Applies(ctx RuleContext) bool {
	return RulesAllow(l.Rules, ctx)
}

// Key returns the dedup key of this library. See [LibraryKey]
func (l *Library) Key() (string, bool) {
	return LibraryKey(l.Name)
}

// NativeClassifier returns the native classifier for the os in ctx
// with "${arch}" replaced. It returns false if there is none.
func (l *Library) NativeClassifier(ctx RuleContext) (string, bool) {
	classifier, ok := l.Natives[ctx.OSName]
	if !ok || classifier == "" {
		return "", false
	}
	return strings.ReplaceAll(classifier, "${arch}", ctx.ArchBits()), true
}

// ExcludePrefixes returns the paths that should not be extracted
func (l *Library) ExcludePrefixes() []string {
	if l.Extract == nil {
		return nil
	}
	return l.Extract.Exclude
}

// LibraryKey returns `group:artifact` (plus `:classifier` if there is one).
// The version is left out on purpose, so a library of a child manifest
// always replaces the same library of its parent.
func LibraryKey(name string) (string, bool) {
	parts := strings.Split(name, ":")
	switch {
	case len(parts) == 2 || len(parts) == 3:
		return parts[0] + ":" + parts[1], true
	case len(parts) >= 4:
		return parts[0] + ":" + parts[1] + ":" + parts[3], true
	default:
		return "", false
	}
}
