package diacritics

// MatchResult is the outcome of Search.
// Start/End are code point offsets into the original content, End exclusive.
// StartByte/EndByte are the same span in UTF-8 bytes, for slicing Go strings.
// All offsets are -1 when Found is false.
type MatchResult struct {
	Found     bool `json:"found"`
	Start     int  `json:"start"`
	End       int  `json:"end"`
	StartByte int  `json:"start_byte"`
	EndByte   int  `json:"end_byte"`
}

// NotFound is the MatchResult returned when there is no match.
var NotFound = MatchResult{Start: -1, End: -1, StartByte: -1, EndByte: -1}

// Search reports the first occurrence of term in content, ignoring diacritics
// on both sides. An empty term, or one made only of diacritics, never matches.
//
// The span covers the matched letters only: diacritics attached before the
// first letter or after the last one are left outside.
func Search(content, term string) MatchResult {
	nt := Normalize(term)
	if nt.Len() == 0 {
		return NotFound
	}
	nc := Normalize(content)

	i := indexRunes(nc.Stripped, nt.Stripped)
	if i < 0 {
		return NotFound
	}
	end := i + nt.Len()
	sb, eb := nc.byteSpan(i, end)
	return MatchResult{
		Found:     true,
		Start:     nc.IndexMap[i],
		End:       nc.IndexMap[end-1] + 1,
		StartByte: sb,
		EndByte:   eb,
	}
}

// Contains reports whether term occurs in content, ignoring diacritics.
func Contains(content, term string) bool {
	return Search(content, term).Found
}

// indexRunes returns the index of the first occurrence of needle in haystack, or -1.
func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	if n == 0 || n > len(haystack) {
		return -1
	}
	first := needle[0]
outer:
	for i := 0; i <= len(haystack)-n; i++ {
		if haystack[i] != first {
			continue
		}
		for j := 1; j < n; j++ {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
