package minecraft

// MergeManifests returns a new manifest where child is laid over parent.
// Neither input is modified.
//
// Scalar fields of child win when they are set, otherwise they are inherited.
// Argument lists are concatenated (parent first). Libraries of the child come
// first, parent libraries are only added if the child does not already
// provide a library with the same [LibraryKey].
// The result inherits from whatever parent inherited from.
func MergeManifests(parent *LaunchManifest, child *LaunchManifest) *LaunchManifest {
	merged := &LaunchManifest{
		ID:                 child.ID,
		InheritsFrom:       parent.InheritsFrom,
		Type:               pickString(child.Type, parent.Type),
		MainClass:          pickString(child.MainClass, parent.MainClass),
		MinecraftArguments: pickString(child.MinecraftArguments, parent.MinecraftArguments),
		Assets:             pickString(child.Assets, parent.Assets),
		Arguments:          mergeArguments(parent.Arguments, child.Arguments),
		Libraries:          mergeLibraries(parent.Libraries, child.Libraries),
		Downloads:          child.Downloads,
		AssetIndex:         child.AssetIndex,
		JavaVersion:        child.JavaVersion,
	}
	if merged.ID == "" {
		merged.ID = parent.ID
	}
	if merged.Downloads == nil {
		merged.Downloads = parent.Downloads
	}
	if merged.AssetIndex == nil {
		merged.AssetIndex = parent.AssetIndex
	}
	if merged.JavaVersion == nil {
		merged.JavaVersion = parent.JavaVersion
	}
	return merged
}

// FoldChain merges a chain that is ordered most specific first.
// It returns nil for an empty chain.
func FoldChain(chain []*LaunchManifest) *LaunchManifest {
	if len(chain) == 0 {
		return nil
	}
	merged := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		merged = MergeManifests(merged, chain[i])
	}
	return merged
}

func pickString(child string, parent string) string {
	if child != "" {
		return child
	}
	return parent
}

func mergeArguments(parent *Arguments, child *Arguments) *Arguments {
	switch {
	case parent == nil && child == nil:
		return nil
	case parent == nil:
		return &Arguments{Game: cloneArgs(child.Game), JVM: cloneArgs(child.JVM)}
	case child == nil:
		return &Arguments{Game: cloneArgs(parent.Game), JVM: cloneArgs(parent.JVM)}
	}

	merged := &Arguments{
		Game: make([]Argument, 0, len(parent.Game)+len(child.Game)),
		JVM:  make([]Argument, 0, len(parent.JVM)+len(child.JVM)),
	}
	merged.Game = append(append(merged.Game, parent.Game...), child.Game...)
	merged.JVM = append(append(merged.JVM, parent.JVM...), child.JVM...)
	return merged
}

func cloneArgs(args []Argument) []Argument {
	if args == nil {
		return nil
	}
	return append(make([]Argument, 0, len(args)), args...)
}

func mergeLibraries(parent []Library, child []Library) []Library {
	merged := make([]Library, 0, len(parent)+len(child))
	seen := make(map[string]struct{}, len(parent)+len(child))

	for _, lib := range child {
		if key, ok := lib.Key(); ok {
			seen[key] = struct{}{}
		}
		merged = append(merged, lib)
	}

	for _, lib := range parent {
		key, ok := lib.Key()
		if ok {
			if _, dominated := seen[key]; dominated {
				continue
			}
			seen[key] = struct{}{}
		}
		merged = append(merged, lib)
	}
	return merged
}
