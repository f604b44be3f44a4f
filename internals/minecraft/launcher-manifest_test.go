package minecraft_test

import (
	"fmt"

	"github.com/shardmc/shard/internals/minecraft"
)

func ExampleMergeManifests() {
	vanilla := &minecraft.LaunchManifest{
		ID:        "1.20.1",
		MainClass: "net.minecraft.client.main.Main",
		Libraries: []minecraft.Library{
			{Name: "commons-logging:commons-logging:1.2"},
			{Name: "org.ow2.asm:asm:9.5"},
		},
	}
	fabric := &minecraft.LaunchManifest{
		ID:           "fabric-loader-0.14.21-1.20.1",
		InheritsFrom: "1.20.1",
		MainClass:    "net.fabricmc.loader.impl.launch.knot.KnotClient",
		Libraries: []minecraft.Library{
			{Name: "org.ow2.asm:asm:9.6"},
			{Name: "net.fabricmc:fabric-loader:0.14.21"},
		},
	}
	// MergeManifests does not modify any of its inputs
	merged := minecraft.MergeManifests(vanilla, fabric)

	fmt.Println("ID:", merged.ID)
	fmt.Println("MainClass:", merged.MainClass)
	fmt.Println("Libraries:")
	for _, lib := range merged.Libraries {
		fmt.Println(" - ", lib.Name)
	}
	// Output:
	// ID: fabric-loader-0.14.21-1.20.1
	// MainClass: net.fabricmc.loader.impl.launch.knot.KnotClient
	// Libraries:
	//  -  org.ow2.asm:asm:9.6
	//  -  net.fabricmc:fabric-loader:0.14.21
	//  -  commons-logging:commons-logging:1.2
}
