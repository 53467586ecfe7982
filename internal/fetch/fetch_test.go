package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient() *Client {
	return New(Options{Logger: zerolog.Nop()})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestCopy_LocalPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "local bytes")

	if err := newTestClient().Copy(context.Background(), src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got := readFile(t, dst); got != "local bytes" {
		t.Errorf("content: got %q, want %q", got, "local bytes")
	}
}

func TestCopy_FileURL(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "file url bytes")

	if err := newTestClient().Copy(context.Background(), "file://"+src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got := readFile(t, dst); got != "file url bytes" {
		t.Errorf("content: got %q, want %q", got, "file url bytes")
	}
}

func TestCopy_OverwritesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "new")
	writeFile(t, dst, "old content that is longer")

	if err := newTestClient().Copy(context.Background(), src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got := readFile(t, dst); got != "new" {
		t.Errorf("content: got %q, want %q", got, "new")
	}
}

func TestCopy_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/photo.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("remote bytes"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "photo.jpg")
	if err := newTestClient().Copy(context.Background(), srv.URL+"/images/photo.jpg", dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got := readFile(t, dst); got != "remote bytes" {
		t.Errorf("content: got %q, want %q", got, "remote bytes")
	}
}

func TestCopy_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "missing.jpg")
	if err := newTestClient().Copy(context.Background(), srv.URL+"/missing.jpg", dst); err == nil {
		t.Fatal("Copy should fail for a 404 response")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should not be created when the request fails")
	}
}

func TestCopy_MissingLocalSource(t *testing.T) {
	dir := t.TempDir()
	err := newTestClient().Copy(context.Background(), filepath.Join(dir, "nope.bin"), filepath.Join(dir, "dst.bin"))
	if err == nil {
		t.Error("Copy should fail for a missing source")
	}
}

func TestCopy_DestinationDirectoryMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	writeFile(t, src, "x")

	err := newTestClient().Copy(context.Background(), src, filepath.Join(dir, "missing", "dst.bin"))
	if err == nil {
		t.Error("Copy should fail when the destination directory does not exist")
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := newTestClient().Open(context.Background(), "gopher://example.com/image.jpg")
	if err == nil {
		t.Error("Open should fail for an unsupported scheme")
	}
}

func TestOpen_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestClient().Open(ctx, srv.URL+"/a.jpg"); err == nil {
		t.Error("Open should fail with a canceled context")
	}
}

func TestCopy_SameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "same.bin")
	writeFile(t, src, "keep me")

	if err := newTestClient().Copy(context.Background(), src, src); err == nil {
		t.Fatal("expected an error copying a file onto itself")
	}
	if got := readFile(t, src); got != "keep me" {
		t.Errorf("source was modified: got %q", got)
	}

	if err := newTestClient().Copy(context.Background(), "file://"+src, src); err == nil {
		t.Fatal("expected an error copying a file URL onto itself")
	}
	if got := readFile(t, src); got != "keep me" {
		t.Errorf("source was modified: got %q", got)
	}
}
