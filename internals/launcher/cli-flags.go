package launcher

import (
	"github.com/shardmc/shard/internals/profile"
	"github.com/spf13/cobra"
)

// OverwriteFlags are cli flags used to overwrite launch behavior
type OverwriteFlags struct {
	McVersion     string
	Loader        string
	LoaderVersion string
	Java          string
	Memory        string
}

// CmdOverwriteFlags registers the overwrite flags on cmd
func CmdOverwriteFlags(cmd *cobra.Command) *OverwriteFlags {
	flags := OverwriteFlags{}
	cmd.Flags().StringVarP(&flags.McVersion, "minecraft", "m", "", "Overwrite the Minecraft version")
	cmd.Flags().StringVar(&flags.Loader, "loader", "", "Overwrite the mod loader (fabric, quilt, forge, neoforge or none)")
	cmd.Flags().StringVar(&flags.LoaderVersion, "loader-version", "", "Overwrite the mod loader version (can also be \"latest\")")
	cmd.Flags().StringVar(&flags.Java, "java", "", "Overwrite the java executable")
	cmd.Flags().StringVar(&flags.Memory, "memory", "", "Overwrite the max heap size. Example: 4G")

	return &flags
}

// ApplyOverWrites changes prof according to the set flags
func (o *OverwriteFlags) ApplyOverWrites(prof *profile.Profile) {
	if o.McVersion != "" {
		prof.MCVersion = o.McVersion
	}

	switch o.Loader {
	case "":
	case "none", "vanilla":
		prof.Loader = nil
	default:
		prof.Loader = &profile.Loader{Type: o.Loader, Version: o.LoaderVersion}
	}
	if o.LoaderVersion != "" && prof.Loader != nil {
		prof.Loader.Version = o.LoaderVersion
	}

	if o.Java != "" {
		prof.Runtime.Java = o.Java
	}
	if o.Memory != "" {
		prof.Runtime.Memory = o.Memory
	}
}
