package corpus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryBase
	retryBase = time.Millisecond
	t.Cleanup(func() { retryBase = old })
}

func TestDownloadFile_Retry(t *testing.T) {
	fastRetries(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("text\nبسم الله\n"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "data.csv")
	if err := downloadFile(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "text\nبسم الله\n" {
		t.Errorf("data = %q", data)
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestDownloadFile_GivesUp(t *testing.T) {
	fastRetries(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "data.csv")
	if err := downloadFile(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dest should not exist after failure")
	}
}

func TestLoadCollection_FetchesMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("اللَّهُ أَكْبَرُ\nسُبْحَانَ اللَّهِ\n"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "remote")
	os.MkdirAll(dir, 0o755)
	manifest := "id: remote\nsource_url: " + srv.URL + "\ndata_file: lines.txt\nformat:\n  kind: lines\n"
	os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644)

	c, err := LoadCollection(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if len(c.Passages) != 2 {
		t.Errorf("passages = %d, want 2", len(c.Passages))
	}
	if _, err := os.Stat(filepath.Join(dir, "lines.txt")); err != nil {
		t.Errorf("downloaded file not kept: %v", err)
	}
}
