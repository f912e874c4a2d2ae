// Package notation decodes chess board coordinates ("e4") and coordinate
// moves ("e2-e4", "ed4") into typed values.
//
// Every parser takes the text to read and returns the decoded value, the
// unconsumed remainder and an error. On failure the remainder is the
// original input.
package notation

import "unicode/utf8"

// File is a board column, a through h.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const fileNames = "abcdefgh"

// Valid reports whether f is one of FileA through FileH.
func (f File) Valid() bool {
	return f <= FileH
}

func (f File) String() string {
	if !f.Valid() {
		return "?"
	}
	return fileNames[f : f+1]
}

// FileFromChar maps a single letter, in either case, to its file.
func FileFromChar(r rune) (File, bool) {
	switch {
	case r >= 'a' && r <= 'h':
		return File(r - 'a'), true
	case r >= 'A' && r <= 'H':
		return File(r - 'A'), true
	}
	return 0, false
}

// ParseFile reads exactly one file letter at the start of text. Leading
// blanks are not skipped.
func ParseFile(text string) (File, string, error) {
	r, size := utf8.DecodeRuneInString(text)
	f, ok := FileFromChar(r)
	if !ok {
		return 0, text, tokenMismatch("file letter a-h", text)
	}
	return f, text[size:], nil
}
