package diacritics

import "testing"

func TestSplit(t *testing.T) {
	m := Search(shahada, "اشهد")
	before, match, after := Split(shahada, m)
	if before != "وَ " {
		t.Errorf("before = %q", before)
	}
	if match != "اَشْهَد" {
		t.Errorf("match = %q", match)
	}
	if before+match+after != shahada {
		t.Errorf("pieces do not reassemble the content")
	}

	before, match, after = Split(shahada, NotFound)
	if before != shahada || match != "" || after != "" {
		t.Errorf("Split on NotFound = (%q, %q, %q)", before, match, after)
	}
}

func TestExtendLeadingMarks(t *testing.T) {
	content := "وَشْهَدُ"
	m := Search(content, "شهد")
	if m.Start != 2 || m.StartByte != 4 {
		t.Fatalf("Search = %+v, want Start 2", m)
	}
	ext := ExtendLeadingMarks(content, m)
	if ext.Start != 1 || ext.StartByte != 2 {
		t.Errorf("ExtendLeadingMarks = %+v, want Start 1, StartByte 2", ext)
	}
	if ext.End != m.End || ext.EndByte != m.EndByte {
		t.Errorf("end moved: %+v", ext)
	}

	// No mark before the match: unchanged.
	m = Search("بسم الله", "الله")
	if got := ExtendLeadingMarks("بسم الله", m); got != m {
		t.Errorf("ExtendLeadingMarks changed a span with no leading mark: %+v", got)
	}

	if got := ExtendLeadingMarks(content, NotFound); got != NotFound {
		t.Errorf("ExtendLeadingMarks(NotFound) = %+v", got)
	}
}
