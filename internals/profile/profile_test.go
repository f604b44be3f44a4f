package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shardmc/shard/internals/paths"
)

const tomlProfile = `
mcVersion = "1.20.1"

[loader]
type = "fabric"
version = "latest"

[runtime]
memory = "4G"
args = ["-XX:+UseG1GC"]

[[mods]]
name = "sodium"
hash = "abc"

[[mods]]
name = "lithium"
hash = "def"
enabled = false
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(tomlProfile))
	if err != nil {
		t.Fatal(err)
	}
	if p.MCVersion != "1.20.1" || !p.HasLoader() || p.Loader.Version != "latest" {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.Runtime.Memory != "4G" || len(p.Runtime.Args) != 1 {
		t.Errorf("unexpected runtime %+v", p.Runtime)
	}
	if len(p.Mods) != 2 || !p.Mods[0].IsEnabled() || p.Mods[1].IsEnabled() {
		t.Errorf("unexpected mods %+v", p.Mods)
	}

	j, err := Parse([]byte(`{"id":"vanilla","mcVersion":"1.20.1","runtime":{"memory":"2G"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if j.ID != "vanilla" || j.HasLoader() || j.Runtime.Memory != "2G" {
		t.Errorf("unexpected json profile %+v", j)
	}

	if _, err := Parse([]byte(`{"id":"broken"}`)); err != ErrMissingVersion {
		t.Errorf("expected ErrMissingVersion, got %v", err)
	}
}

func TestLoad_idFromFileName(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "My Pack.toml")
	if err := os.WriteFile(file, []byte(tomlProfile), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "my-pack" {
		t.Errorf("expected id my-pack, got %q", p.ID)
	}
}

func TestLoadByID(t *testing.T) {
	p, err := paths.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(p.Profiles, "survival")
	os.MkdirAll(dir, 0o755)
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte(`{"mcVersion":"1.20.1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadByID(p, "survival")
	if err != nil {
		t.Fatal(err)
	}
	if profile.ID != "survival" {
		t.Errorf("expected id survival, got %q", profile.ID)
	}

	if _, err := LoadByID(p, "missing"); err == nil {
		t.Error("expected an error for a missing profile")
	}
}
