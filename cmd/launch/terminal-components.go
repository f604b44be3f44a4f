package launch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/instances"
	"github.com/shardmc/shard/internals/launcher"
	"github.com/shardmc/shard/internals/profile"
)

func printIntro(prof *profile.Profile) {
	fmt.Println(commands.Title(prof.ID))
	fmt.Println("│")
	fmt.Println("│ Minecraft " + prof.MCVersion)
	if prof.HasLoader() {
		version := prof.Loader.Version
		if version == "" {
			version = "latest"
		}
		fmt.Printf("│ Loader %s %s\n", prof.Loader.Type, gchalk.Gray(version))
	}
	fmt.Println("│ Directory " + globals.Paths.InstanceDir(prof.ID))

	if prof.Runtime.Memory != "" && launcher.ExceedsSystemMemory(prof.Runtime.Memory) {
		fmt.Println("│ " + gchalk.Yellow("[!] "+prof.Runtime.Memory+" is more memory than this system has"))
	}
	fmt.Println("│")
}

func printPlan(plan *instances.LaunchPlan) {
	fmt.Println(commands.PipeText.Render(gchalk.BgGray("Launch plan")))
	fmt.Println("│ Java " + plan.Java)
	fmt.Println("│ Main class " + plan.MainClass)
	entries := strings.Count(plan.Classpath, instances.ClasspathSeparator()) + 1
	fmt.Printf("│ Classpath %s\n", gchalk.Gray(fmt.Sprintf("%d entries", entries)))
	fmt.Println("│ JVM arguments " + gchalk.Gray(strings.Join(plan.JVMArgs, " ")))
}

func printLaunching() {
	fmt.Println("│")
	fmt.Println(
		lipgloss.JoinHorizontal(
			0.5,
			gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
			commands.StyleGrass.Render(commands.Emoji("⛏  ")+"Launching Minecraft"),
		),
	)
}
