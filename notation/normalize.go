package notation

import "golang.org/x/text/width"

// Normalize folds full-width letters, digits and punctuation to ASCII, so
// that text typed with an East Asian input method ("ｅ２－ｅ４") can be
// parsed. The parsers never normalize on their own.
func Normalize(text string) string {
	return width.Narrow.String(text)
}
