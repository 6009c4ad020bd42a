package diacritics

import "unicode/utf8"

// NormalizedText is a string with its diacritics removed, plus the mapping
// from each retained rune back to its position in the original string.
type NormalizedText struct {
	// Stripped holds the non-diacritic runes in original order.
	Stripped []rune
	// IndexMap[i] is the code point index of Stripped[i] in the original string.
	IndexMap []int

	byteMap []int // byte offset of Stripped[i] in the original string
	byteEnd []int // byte offset just past Stripped[i]
}

// Normalize strips diacritics from text and records where each kept rune came from.
func Normalize(text string) NormalizedText {
	n := NormalizedText{
		Stripped: make([]rune, 0, len(text)/2),
		IndexMap: make([]int, 0, len(text)/2),
		byteMap:  make([]int, 0, len(text)/2),
		byteEnd:  make([]int, 0, len(text)/2),
	}
	idx := 0
	for off, r := range text {
		if !Arabic.Contains(r) {
			n.Stripped = append(n.Stripped, r)
			n.IndexMap = append(n.IndexMap, idx)
			_, size := utf8.DecodeRuneInString(text[off:])
			n.byteMap = append(n.byteMap, off)
			n.byteEnd = append(n.byteEnd, off+size)
		}
		idx++
	}
	return n
}

// Len returns the number of retained runes.
func (n NormalizedText) Len() int { return len(n.Stripped) }

// String returns the stripped text.
func (n NormalizedText) String() string { return string(n.Stripped) }

// Original returns the code point index in the original string of stripped rune i.
func (n NormalizedText) Original(i int) int { return n.IndexMap[i] }

// byteSpan returns the original byte range covering stripped runes [from, to).
func (n NormalizedText) byteSpan(from, to int) (int, int) {
	return n.byteMap[from], n.byteEnd[to-1]
}
