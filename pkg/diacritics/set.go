// Package diacritics matches Arabic text while ignoring harakat, tanwin and
// Quranic annotation marks, reporting matches in original-string offsets.
package diacritics

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/rangetable"
)

// Set is an immutable set of code points treated as diacritics.
type Set struct {
	table *unicode.RangeTable
	size  int
}

// markRanges lists the Arabic-block combining marks, inclusive on both ends.
var markRanges = [][2]rune{
	{0x0610, 0x061A}, // honorifics and small high letters
	{0x064B, 0x065F}, // tanwin, fatha, damma, kasra, shadda, sukun, maddah, hamza above/below ...
	{0x0670, 0x0670}, // superscript alef
	{0x06D6, 0x06DC}, // small high ligatures and stop marks
	{0x06DF, 0x06E4}, // small high rounded zero .. small high madda
	{0x06E7, 0x06E8}, // small high yeh, small high noon
	{0x06EA, 0x06ED}, // empty centre stops, small low meem
}

// Arabic is the diacritic set used by Normalize and Search.
var Arabic = newSet(markRanges)

var stripArabic = runes.Remove(runes.In(Arabic.table))

func newSet(ranges [][2]rune) Set {
	var rs []rune
	for _, r := range ranges {
		for c := r[0]; c <= r[1]; c++ {
			rs = append(rs, c)
		}
	}
	return Set{table: rangetable.New(rs...), size: len(rs)}
}

// Contains reports whether r is a diacritic.
func (s Set) Contains(r rune) bool {
	return unicode.Is(s.table, r)
}

// Len returns the number of code points in the set.
func (s Set) Len() int { return s.size }

// Table returns the set as a range table. Callers must not modify it.
func (s Set) Table() *unicode.RangeTable { return s.table }

// Strip removes every diacritic from s.
func Strip(s string) string {
	out, _, err := transform.String(stripArabic, s)
	if err != nil {
		// runes.Remove never fails on valid input; fall back to the slow path.
		return string(Normalize(s).Stripped)
	}
	return out
}

// HasDiacritics reports whether s contains at least one diacritic.
func HasDiacritics(s string) bool {
	for _, r := range s {
		if Arabic.Contains(r) {
			return true
		}
	}
	return false
}
