package instances

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shardmc/shard/internals/paths"
	"github.com/shardmc/shard/internals/profile"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMaterialize(t *testing.T) {
	p, err := paths.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(p.StoreMods, "aaa"), "sodium")
	writeFile(t, filepath.Join(p.StoreMods, "bbb"), "other sodium")
	writeFile(t, filepath.Join(p.StoreMods, "ccc"), "disabled")
	writeFile(t, filepath.Join(p.StoreResourcePacks, "ddd"), "faithful")
	writeFile(t, filepath.Join(p.ProfileOverrides("test"), "options.txt"), "from overrides")
	writeFile(t, filepath.Join(p.ProfileOverrides("test"), "config", "sodium.json"), "{}")

	disabled := false
	prof := &profile.Profile{
		ID:        "test",
		MCVersion: "1.20.1",
		Mods: []profile.ContentRef{
			{Name: "sodium", Hash: "aaa", FileName: "sodium.jar"},
			{Name: "sodium", Hash: "bbb", FileName: "sodium.jar"},
			{Name: "off", Hash: "ccc", Enabled: &disabled},
			{Name: "not-downloaded", Hash: "zzz"},
		},
		ResourcePacks: []profile.ContentRef{{Name: "faithful", Hash: "ddd"}},
	}

	// a stale mod from an earlier launch and a user edited file
	instanceDir := p.InstanceDir("test")
	writeFile(t, filepath.Join(instanceDir, "mods", "stale.jar"), "old")
	writeFile(t, filepath.Join(instanceDir, "options.txt"), "user edited")

	got, err := Materialize(p, prof)
	if err != nil {
		t.Fatal(err)
	}
	if got != instanceDir {
		t.Errorf("unexpected instance dir %s", got)
	}

	if readFile(t, filepath.Join(instanceDir, "mods", "sodium.jar")) != "sodium" {
		t.Error("sodium.jar should point at the first store entry")
	}
	if readFile(t, filepath.Join(instanceDir, "mods", "sodium-1.jar")) != "other sodium" {
		t.Error("name collisions should get a numbered suffix")
	}
	if readFile(t, filepath.Join(instanceDir, "resourcepacks", "faithful.zip")) != "faithful" {
		t.Error("resource packs default to .zip")
	}

	entries, err := os.ReadDir(filepath.Join(instanceDir, "mods"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 mods, got %d", len(entries))
	}

	if readFile(t, filepath.Join(instanceDir, "options.txt")) != "user edited" {
		t.Error("overrides must not replace existing files")
	}
	if readFile(t, filepath.Join(instanceDir, "config", "sodium.json")) != "{}" {
		t.Error("overrides were not copied")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"sodium.jar":     "sodium.jar",
		"../../evil.jar": ".._.._evil.jar",
		`dir\file.zip`:   "dir_file.zip",
		"":               "file",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
