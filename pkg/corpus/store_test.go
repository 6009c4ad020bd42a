package corpus

import (
	"errors"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testCollection(id string, contents ...string) *Collection {
	c := &Collection{Manifest: &Manifest{ID: id, Title: "T " + id, Language: "ar", Source: "test", License: "CC0"}}
	for _, content := range contents {
		c.Passages = append(c.Passages, Passage{Collection: id, Content: content})
	}
	return c
}

func TestStore_ReplaceAndList(t *testing.T) {
	s := tempStore(t)

	if err := s.ReplaceCollection(testCollection("b", "بسم الله", "الحمد لله")); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceCollection(testCollection("a", "سبحان الله")); err != nil {
		t.Fatal(err)
	}

	infos, err := s.ListCollections()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].ID != "a" || infos[1].ID != "b" {
		t.Fatalf("ListCollections = %+v", infos)
	}
	if infos[1].Passages != 2 || infos[1].Title != "T b" {
		t.Errorf("collection b = %+v", infos[1])
	}

	// Replacing drops the old passages.
	if err := s.ReplaceCollection(testCollection("b", "الله أكبر")); err != nil {
		t.Fatal(err)
	}
	infos, _ = s.ListCollections()
	if infos[1].Passages != 1 {
		t.Errorf("after replace: passages = %d, want 1", infos[1].Passages)
	}
}

func TestStore_Search(t *testing.T) {
	s := tempStore(t)
	s.ReplaceCollection(testCollection("duas",
		"وَ اَشْهَدُ اَنْ لا اِلهَ اِلاَّ اللَّهُ",
		"السلام عليكم",
		"اَشْهَدُ اَنَّ مُحَمَّداً رَسُولُ اللَّهِ",
	))
	s.ReplaceCollection(testCollection("other", "أشهد بالحق"))

	hits, err := s.Search("اشهد", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2 (hamza alef is a different letter)", len(hits))
	}
	first := hits[0]
	if first.Collection != "duas" || first.Match.Start != 3 || first.Match.End != 10 {
		t.Errorf("first hit = %+v", first)
	}
	if first.Matched != "اَشْهَد" {
		t.Errorf("matched = %q", first.Matched)
	}
	if hits[1].Match.Start != 0 {
		t.Errorf("second hit start = %d, want 0", hits[1].Match.Start)
	}

	// Vocalised term, collection filter.
	hits, err = s.Search("أَشْهَدُ", &SearchOptions{Collections: []string{"other"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Collection != "other" {
		t.Errorf("filtered hits = %+v", hits)
	}

	hits, err = s.Search("وداعا", nil)
	if err != nil || len(hits) != 0 {
		t.Errorf("absent term: hits=%v err=%v", hits, err)
	}
}

func TestStore_SearchLimit(t *testing.T) {
	s := tempStore(t)
	var contents []string
	for i := 0; i < 30; i++ {
		contents = append(contents, "سُبْحَانَ اللَّهِ")
	}
	s.ReplaceCollection(testCollection("tasbih", contents...))

	hits, _ := s.Search("سبحان", nil)
	if len(hits) != DefaultLimit {
		t.Errorf("default limit: %d hits, want %d", len(hits), DefaultLimit)
	}
	hits, _ = s.Search("سبحان", &SearchOptions{Limit: 5})
	if len(hits) != 5 {
		t.Errorf("limit 5: %d hits", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].ID <= hits[i-1].ID {
			t.Errorf("hits not in id order: %d after %d", hits[i].ID, hits[i-1].ID)
		}
	}
}

func TestStore_SearchEmptyTerm(t *testing.T) {
	s := tempStore(t)
	for _, term := range []string{"", "ًّ"} {
		if _, err := s.Search(term, nil); !errors.Is(err, ErrEmptyTerm) {
			t.Errorf("Search(%q) err = %v, want ErrEmptyTerm", term, err)
		}
	}
}

func TestStore_AddPassage(t *testing.T) {
	s := tempStore(t)
	id, err := s.AddPassage("adhoc", "greeting", "السَّلَامُ عَلَيْكُمْ")
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Passage(id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Collection != "adhoc" || p.Title != "greeting" {
		t.Errorf("passage = %+v", p)
	}

	hits, _ := s.Search("عليكم", nil)
	if len(hits) != 1 || hits[0].ID != id {
		t.Errorf("hits = %+v", hits)
	}

	if _, err := s.Passage(id + 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing passage err = %v, want ErrNotFound", err)
	}
	if _, err := s.AddPassage("", "", "x"); err == nil {
		t.Error("expected error for empty collection")
	}
}
