package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/merrors"
)

func sum(content string) string {
	s := sha1.Sum([]byte(content))
	return hex.EncodeToString(s[:])
}

func serve(t *testing.T, content string) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestHTTPItem_skipsValidFile(t *testing.T) {
	srv, requests := serve(t, "new content")
	target := filepath.Join(t.TempDir(), "lib.jar")
	if err := os.WriteFile(target, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	// upper case checksums are fine too
	item := &HTTPItem{URL: srv.URL, Target: target, Sha1: strings.ToUpper(sum("cached"))}
	if err := item.Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(requests) != 0 {
		t.Errorf("expected no request for a valid file, got %d", atomic.LoadInt32(requests))
	}
}

func TestHTTPItem_replacesCorruptFile(t *testing.T) {
	srv, requests := serve(t, "good")
	target := filepath.Join(t.TempDir(), "nested", "lib.jar")
	os.MkdirAll(filepath.Dir(target), 0o755)
	if err := os.WriteFile(target, []byte("corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}

	item := &HTTPItem{URL: srv.URL, Target: target, Sha1: sum("good")}
	if err := item.Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(requests) != 1 {
		t.Errorf("expected exactly one request, got %d", atomic.LoadInt32(requests))
	}
	data, _ := os.ReadFile(target)
	if string(data) != "good" {
		t.Errorf("file was not replaced, content is %q", data)
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be gone")
	}
}

func TestHTTPItem_checksumMismatch(t *testing.T) {
	srv, _ := serve(t, "evil")
	target := filepath.Join(t.TempDir(), "lib.jar")

	item := &HTTPItem{URL: srv.URL, Target: target, Sha1: sum("good")}
	err := item.Download(context.Background())
	if err == nil {
		t.Fatal("expected checksum error")
	}
	if !merrors.IsIntegrity(err) {
		t.Errorf("expected integrity error, got %v", err)
	}
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch in chain, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("corrupt download must not be written to the target")
	}
}

func TestHTTPItem_withoutChecksum(t *testing.T) {
	srv, requests := serve(t, "data")
	dir := t.TempDir()

	// non empty files without checksum are trusted
	existing := filepath.Join(dir, "existing.jar")
	os.WriteFile(existing, []byte("whatever"), 0o644)
	if err := (&HTTPItem{URL: srv.URL, Target: existing}).Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(requests) != 0 {
		t.Errorf("expected no request, got %d", atomic.LoadInt32(requests))
	}

	empty := filepath.Join(dir, "empty.jar")
	os.WriteFile(empty, nil, 0o644)
	if err := (&HTTPItem{URL: srv.URL, Target: empty}).Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(requests) != 1 {
		t.Errorf("empty file should be fetched again, got %d requests", atomic.LoadInt32(requests))
	}
}

func TestHTTPItem_noURL(t *testing.T) {
	item := &HTTPItem{Target: filepath.Join(t.TempDir(), "missing.jar")}
	if err := item.Download(context.Background()); !errors.Is(err, ErrNoURL) {
		t.Errorf("expected ErrNoURL, got %v", err)
	}
}

func TestHTTPItem_badStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	item := &HTTPItem{URL: srv.URL, Target: filepath.Join(t.TempDir(), "x")}
	err := item.Download(context.Background())
	if err == nil || merrors.IsIntegrity(err) {
		t.Errorf("expected a plain network error, got %v", err)
	}
}

func TestHTTPItem_progress(t *testing.T) {
	srv, _ := serve(t, "0123456789")
	var last, total int64
	item := &HTTPItem{
		URL:    srv.URL,
		Target: filepath.Join(t.TempDir(), "installer.jar"),
		OnProgress: func(w int64, n int64) {
			last, total = w, n
		},
	}
	if err := item.Download(context.Background()); err != nil {
		t.Fatal(err)
	}
	if last != 10 || total != 10 {
		t.Errorf("expected 10/10 bytes progress, got %d/%d", last, total)
	}
}
