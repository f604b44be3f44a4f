package minecraft

import (
	"encoding/json"
)

// LaunchManifest is a version.json manifest that is used to launch minecraft instances.
// Loader profiles (fabric, forge …) are launch manifests too, they usually
// inherit most of their fields from a vanilla manifest using `InheritsFrom`
type LaunchManifest struct {
	// ID of this version, for example "1.20.1" or "fabric-loader-0.14.21-1.20.1"
	ID string `json:"id"`
	// InheritsFrom is the id of the parent manifest (if any)
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	// Type is something like "release" or "snapshot"
	Type      string `json:"type,omitempty"`
	MainClass string `json:"mainClass,omitempty"`
	// MinecraftArguments is the legacy argument string used before 1.13
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the new (complicated) system
	Arguments  *Arguments     `json:"arguments,omitempty"`
	Libraries  []Library      `json:"libraries,omitempty"`
	Downloads  *Downloads     `json:"downloads,omitempty"`
	AssetIndex *AssetIndexRef `json:"assetIndex,omitempty"`
	Assets     string         `json:"assets,omitempty"`
	// JavaVersion is only set in newer manifests
	JavaVersion *JavaVersion `json:"javaVersion,omitempty"`
}

// Arguments are the structured game and jvm arguments
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Downloads contains the client (and server) jar of a version
type Downloads struct {
	Client *Artifact `json:"client,omitempty"`
	Server *Artifact `json:"server,omitempty"`
}

// AssetIndexRef points to the asset index document of a version
type AssetIndexRef struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url"`
}

// JavaVersion is the java runtime a version was built for
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// ParseLaunchManifest parses a version.json document
func ParseLaunchManifest(data []byte) (*LaunchManifest, error) {
	manifest := &LaunchManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// HasClientDownload returns true if this manifest declares a client jar
func (l *LaunchManifest) HasClientDownload() bool {
	return l.Downloads != nil && l.Downloads.Client != nil
}

// VersionType returns the type of this version and defaults to "release"
func (l *LaunchManifest) VersionType() string {
	if l.Type == "" {
		return "release"
	}
	return l.Type
}

// Argument is one entry of the structured argument lists.
// It is either a plain string or an object with rules and one or more values
type Argument struct {
	// Value is the actual argument (can be multiple strings)
	Value stringSlice `json:"value"`
	Rules []Rule      `json:"rules,omitempty"`
}

// UnmarshalJSON is needed because argument sometimes is a string
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		// alias to avoid recursion
		type ruledArgument Argument
		var arg ruledArgument
		if err := json.Unmarshal(data, &arg); err != nil {
			return err
		}
		*a = Argument(arg)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*a = Argument{Value: stringSlice{str}}
	return nil
}

// MarshalJSON writes plain arguments back as plain strings
func (a Argument) MarshalJSON() ([]byte, error) {
	if len(a.Rules) == 0 && len(a.Value) == 1 {
		return json.Marshal(a.Value[0])
	}
	type ruledArgument Argument
	return json.Marshal(ruledArgument(a))
}

// Applies returns true if the rules of this argument allow it in ctx
func (a Argument) Applies(ctx RuleContext) bool {
	return RulesAllow(a.Rules, ctx)
}
