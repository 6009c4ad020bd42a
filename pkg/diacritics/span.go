package diacritics

import "unicode/utf8"

// Split cuts content around the match. If m is not a match, before is the
// whole content and match and after are empty.
func Split(content string, m MatchResult) (before, match, after string) {
	if !m.Found || m.StartByte < 0 || m.EndByte > len(content) || m.StartByte >= m.EndByte {
		return content, "", ""
	}
	return content[:m.StartByte], content[m.StartByte:m.EndByte], content[m.EndByte:]
}

// ExtendLeadingMarks widens m to the left over any diacritics that directly
// precede the match. It stops at the first non-diacritic rune, so the span
// never grows over a letter. Useful when rendering, where a mark drawn before
// the first matched letter should be highlighted with it.
func ExtendLeadingMarks(content string, m MatchResult) MatchResult {
	if !m.Found {
		return m
	}
	for m.StartByte > 0 {
		r, size := utf8.DecodeLastRuneInString(content[:m.StartByte])
		if !Arabic.Contains(r) {
			break
		}
		m.StartByte -= size
		m.Start--
	}
	return m
}
