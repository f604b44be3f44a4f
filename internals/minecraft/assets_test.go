package minecraft

import "testing"

func TestParseAssetIndex(t *testing.T) {
	index, err := ParseAssetIndex([]byte(`{"objects":{"icons/icon_16x16.png":{"hash":"bdf48ef6b5d0d23bbb02e17d04865216179f510a","size":3665}}}`))
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := index.Objects["icons/icon_16x16.png"]
	if !ok {
		t.Fatal("expected icon object")
	}
	if obj.UnixPath() != "bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a" {
		t.Errorf("unexpected path %s", obj.UnixPath())
	}
	want := "https://resources.download.minecraft.net/bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a"
	if got := obj.DownloadURL("https://resources.download.minecraft.net/"); got != want {
		t.Errorf("DownloadURL() = %s, want %s", got, want)
	}
}

func TestAssetObject_DownloadURL_explicit(t *testing.T) {
	obj := AssetObject{Hash: "bdf48ef6b5d0d23bbb02e17d04865216179f510a", URL: "https://mirror.example.net/blob"}
	if got := obj.DownloadURL("https://resources.download.minecraft.net/"); got != obj.URL {
		t.Errorf("DownloadURL() = %s, want %s", got, obj.URL)
	}
}

func TestVersionManifest_Find(t *testing.T) {
	manifest, err := ParseVersionManifest([]byte(`{
		"latest": {"release": "1.20.1", "snapshot": "23w31a"},
		"versions": [
			{"id": "23w31a", "type": "snapshot", "url": "https://example.com/23w31a.json"},
			{"id": "1.20.1", "type": "release", "url": "https://example.com/1.20.1.json", "sha1": "abc"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := manifest.Find("1.20.1")
	if !ok || entry.URL != "https://example.com/1.20.1.json" || entry.Sha1 != "abc" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if _, ok := manifest.Find("0.0.1"); ok {
		t.Error("unknown version should not be found")
	}
}
