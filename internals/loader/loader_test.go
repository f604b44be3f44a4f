package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/paths"
	"github.com/tidwall/gjson"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"fabric", Fabric},
		{"Quilt", Quilt},
		{"forge", Forge},
		{" neoforge ", NeoForge},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseType() = %v, want %v", got, tt.want)
			}
		})
	}

	_, err := ParseType("rift")
	if !errors.Is(err, ErrUnsupportedLoader) || !merrors.IsResolution(err) {
		t.Errorf("expected unsupported loader error, got %v", err)
	}
	if !strings.Contains(err.Error(), "rift") {
		t.Errorf("error should name the loader: %s", err)
	}
	if _, err := New(Type(42), &Options{}); !errors.Is(err, ErrUnsupportedLoader) {
		t.Errorf("expected unsupported loader error, got %v", err)
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func testOptions(t *testing.T, srv *httptest.Server) *Options {
	t.Helper()
	p, err := paths.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Ensure(); err != nil {
		t.Fatal(err)
	}
	return &Options{
		Paths: p,
		Endpoints: endpoints.Set{
			FabricMeta:      srv.URL + "/fabric/v2",
			QuiltMeta:       srv.URL + "/quilt/v3",
			ForgeMaven:      srv.URL + "/forge-maven",
			ForgePromotions: srv.URL + "/promotions_slim.json",
			NeoForgeMaven:   srv.URL + "/neo-maven",
		},
		Client: resty.New(),
	}
}

func TestMetaProvisioner(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fabric/v2/versions/loader", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[{"version":"0.15.0-beta.1","stable":false},{"version":"0.14.21","stable":true}]`)
	})
	mux.HandleFunc("/fabric/v2/versions/loader/1.20.1/0.14.21/profile/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":"fabric-loader-0.14.21-1.20.1","inheritsFrom":"1.20.1","mainClass":"net.fabricmc.loader.impl.launch.knot.KnotClient"}`)
	})
	mux.HandleFunc("/quilt/v3/versions/loader", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[{"version":"0.20.0-beta.5"},{"version":"0.19.2"}]`)
	})
	mux.HandleFunc("/quilt/v3/versions/loader/1.20.1/0.20.0-beta.5/profile/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":"quilt-loader-0.20.0-beta.5-1.20.1","inheritsFrom":"1.20.1"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	opts := testOptions(t, srv)
	ctx := context.Background()

	fabric, _ := New(Fabric, opts)
	id, err := fabric.Provision(ctx, "1.20.1", Latest)
	if err != nil {
		t.Fatal(err)
	}
	if id != "fabric-loader-0.14.21-1.20.1" {
		t.Errorf("expected first stable fabric version, got %s", id)
	}
	data, err := os.ReadFile(opts.Paths.VersionJSON(id))
	if err != nil {
		t.Fatal(err)
	}
	if manifest, err := minecraft.ParseLaunchManifest(data); err != nil || manifest.InheritsFrom != "1.20.1" {
		t.Errorf("unexpected persisted profile %s", data)
	}

	quilt, _ := New(Quilt, opts)
	id, err = quilt.Provision(ctx, "1.20.1", "latest")
	if err != nil {
		t.Fatal(err)
	}
	if id != "quilt-loader-0.20.0-beta.5-1.20.1" {
		t.Errorf("expected first quilt version, got %s", id)
	}

	_, err = fabric.Provision(ctx, "1.20.1", "0.0.1")
	if !errors.Is(err, ErrMissingProfile) {
		t.Errorf("expected missing profile error, got %v", err)
	}
}

// fakeRunner pretends to be a forge installer by writing the manifest it would produce
type fakeRunner struct {
	calls    int32
	writes   string
	exitCode int
	versions string
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) error {
	atomic.AddInt32(&f.calls, 1)
	if f.exitCode != 0 {
		return &merrors.InstallerError{Installer: cmd.Path, ExitCode: f.exitCode}
	}
	if f.writes == "" {
		return nil
	}
	target := filepath.Join(f.versions, f.writes, f.writes+".json")
	os.MkdirAll(filepath.Dir(target), 0o755)
	return os.WriteFile(target, []byte(`{"id":"`+f.writes+`","inheritsFrom":"1.20.1","mainClass":"cpw.mods.bootstraplauncher.BootstrapLauncher"}`), 0o644)
}

func installerServer(t *testing.T, downloads *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/promotions_slim.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"homepage":"https://files.minecraftforge.net","promos":{"1.20.1-latest":"47.2.20","1.20.1-recommended":"47.2.0"}}`)
	})
	mux.HandleFunc("/neo-maven/api/maven/versions/releases/net/neoforged/neoforge", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter") != "20.4." {
			t.Errorf("unexpected filter %q", r.URL.Query().Get("filter"))
		}
		writeJSON(w, `{"isSnapshot":false,"versions":["20.4.70-beta","20.4.80","20.4.237"]}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "-installer.jar") {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(downloads, 1)
		w.Write([]byte("PK fake installer"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestForgeProvisioner_idempotent(t *testing.T) {
	var downloads int32
	srv := installerServer(t, &downloads)
	opts := testOptions(t, srv)
	runner := &fakeRunner{writes: "1.20.1-forge-47.2.0", versions: opts.Paths.MinecraftVersions}
	opts.Runner = runner
	ctx := context.Background()

	forge, _ := New(Forge, opts)
	first, err := forge.Provision(ctx, "1.20.1", "47.2.0")
	if err != nil {
		t.Fatal(err)
	}
	second, err := forge.Provision(ctx, "1.20.1", "47.2.0")
	if err != nil {
		t.Fatal(err)
	}

	if first != "forge-1.20.1-47.2.0" || first != second {
		t.Errorf("unexpected ids %s and %s", first, second)
	}
	if atomic.LoadInt32(&runner.calls) != 1 {
		t.Errorf("installer should run exactly once, ran %d times", runner.calls)
	}
	if atomic.LoadInt32(&downloads) != 1 {
		t.Errorf("installer should be downloaded once, got %d", downloads)
	}

	data, err := os.ReadFile(opts.Paths.VersionJSON(first))
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "id").String(); got != first {
		t.Errorf("id was not rewritten, got %s", got)
	}
	if got := gjson.GetBytes(data, "mainClass").String(); got != "cpw.mods.bootstraplauncher.BootstrapLauncher" {
		t.Errorf("other fields should be kept, got main class %q", got)
	}
	if _, err := os.Stat(filepath.Join(opts.Paths.MinecraftRoot, "launcher_profiles.json")); err != nil {
		t.Error("launcher_profiles.json should exist for the installer")
	}
}

func TestForgeProvisioner_latest(t *testing.T) {
	var downloads int32
	srv := installerServer(t, &downloads)
	opts := testOptions(t, srv)
	opts.Runner = &fakeRunner{writes: "1.20.1-forge-47.2.0", versions: opts.Paths.MinecraftVersions}

	forge, _ := New(Forge, opts)
	id, err := forge.Provision(context.Background(), "1.20.1", Latest)
	if err != nil {
		t.Fatal(err)
	}
	if id != "forge-1.20.1-47.2.0" {
		t.Errorf("expected the recommended version, got %s", id)
	}
}

func TestForgeProvisioner_installerFails(t *testing.T) {
	var downloads int32
	srv := installerServer(t, &downloads)
	opts := testOptions(t, srv)
	opts.Runner = &fakeRunner{exitCode: 1}

	forge, _ := New(Forge, opts)
	_, err := forge.Provision(context.Background(), "1.20.1", "1.20.1-47.2.0")
	if !merrors.IsInstaller(err) {
		t.Fatalf("expected installer error, got %v", err)
	}
	if !strings.Contains(err.Error(), "forge-1.20.1-47.2.0-installer.jar") || !strings.Contains(err.Error(), "exit status 1") {
		t.Errorf("error should name the installer and status: %s", err)
	}
}

func TestNeoForgeProvisioner(t *testing.T) {
	var downloads int32
	srv := installerServer(t, &downloads)
	opts := testOptions(t, srv)
	runner := &fakeRunner{writes: "neoforge-20.4.237", versions: opts.Paths.MinecraftVersions}
	opts.Runner = runner

	neo, _ := New(NeoForge, opts)
	id, err := neo.Provision(context.Background(), "1.20.4", Latest)
	if err != nil {
		t.Fatal(err)
	}
	if id != "neoforge-20.4.237" {
		t.Errorf("unexpected id %s", id)
	}

	// installer that does not produce anything
	runner.writes = ""
	_, err = neo.Provision(context.Background(), "1.20.4", "20.4.80")
	if !errors.Is(err, ErrMissingProfile) {
		t.Errorf("expected missing profile error, got %v", err)
	}
}

func TestNewestVersion(t *testing.T) {
	if got := newestVersion([]string{"20.4.9", "20.4.80", "20.4.10"}); got != "20.4.80" {
		t.Errorf("expected 20.4.80, got %s", got)
	}
	if got := newestVersion([]string{"a", "b"}); got != "b" {
		t.Errorf("expected last entry, got %s", got)
	}
}
