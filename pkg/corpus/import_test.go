package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestImportDir(t *testing.T) {
	root := t.TempDir()
	writeTestCollection(t, root, "duas", csvFormat, "name;text\nshahada;وَ اَشْهَدُ اَنْ لا اِلهَ اِلاَّ اللَّهُ\n")
	writeTestCollection(t, root, "adhkar", "  kind: lines\n", "سُبْحَانَ اللَّهِ\nالْحَمْدُ لِلَّهِ\n")
	os.MkdirAll(filepath.Join(root, "no-manifest"), 0o755)
	os.WriteFile(filepath.Join(root, "README"), []byte("ignored"), 0o644)

	s := tempStore(t)
	n, err := ImportDir(context.Background(), s, root, nil)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d collections, want 2", n)
	}

	infos, _ := s.ListCollections()
	if len(infos) != 2 || infos[0].ID != "adhkar" || infos[0].Passages != 2 {
		t.Errorf("collections = %+v", infos)
	}

	// Re-import is idempotent.
	if _, err := ImportDir(context.Background(), s, root, nil); err != nil {
		t.Fatal(err)
	}
	infos, _ = s.ListCollections()
	if infos[0].Passages != 2 || infos[1].Passages != 1 {
		t.Errorf("after re-import: %+v", infos)
	}
}

func TestImportDir_MissingDir(t *testing.T) {
	s := tempStore(t)
	if _, err := ImportDir(context.Background(), s, filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatal("expected error")
	}
}
