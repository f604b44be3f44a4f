// Package endpoints holds the base URLs of all remote services shard talks to
package endpoints

// Set is a collection of base URLs. Every field can be overwritten by config
type Set struct {
	VersionManifest string
	Libraries       string
	Resources       string
	FabricMeta      string
	QuiltMeta       string
	ForgeMaven      string
	ForgePromotions string
	NeoForgeMaven   string
}

// Default returns the official endpoints
func Default() Set {
	return Set{
		VersionManifest: "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json",
		Libraries:       "https://libraries.minecraft.net/",
		Resources:       "https://resources.download.minecraft.net/",
		FabricMeta:      "https://meta.fabricmc.net/v2",
		QuiltMeta:       "https://meta.quiltmc.org/v3",
		ForgeMaven:      "https://maven.minecraftforge.net",
		ForgePromotions: "https://files.minecraftforge.net/maven/net/minecraftforge/forge/promotions_slim.json",
		NeoForgeMaven:   "https://maven.neoforged.net",
	}
}

// WithOverrides returns a copy of s where every non empty field of o wins
func (s Set) WithOverrides(o Set) Set {
	pick := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}
	return Set{
		VersionManifest: pick(s.VersionManifest, o.VersionManifest),
		Libraries:       pick(s.Libraries, o.Libraries),
		Resources:       pick(s.Resources, o.Resources),
		FabricMeta:      pick(s.FabricMeta, o.FabricMeta),
		QuiltMeta:       pick(s.QuiltMeta, o.QuiltMeta),
		ForgeMaven:      pick(s.ForgeMaven, o.ForgeMaven),
		ForgePromotions: pick(s.ForgePromotions, o.ForgePromotions),
		NeoForgeMaven:   pick(s.NeoForgeMaven, o.NeoForgeMaven),
	}
}

// JoinURL joins a base url and a relative path with exactly one slash
func JoinURL(base string, path string) string {
	if base == "" {
		return path
	}
	if base[len(base)-1] == '/' {
		if len(path) > 0 && path[0] == '/' {
			return base + path[1:]
		}
		return base + path
	}
	if len(path) > 0 && path[0] == '/' {
		return base + path
	}
	return base + "/" + path
}
