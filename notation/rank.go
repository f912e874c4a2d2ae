package notation

import "unicode/utf8"

// Rank is a board row, 1 through 8.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const rankNames = "12345678"

// Valid reports whether r is one of Rank1 through Rank8.
func (r Rank) Valid() bool {
	return r <= Rank8
}

func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankNames[r : r+1]
}

// RankFromChar maps a single digit to its rank.
func RankFromChar(c rune) (Rank, bool) {
	if c < '1' || c > '8' {
		return 0, false
	}
	return Rank(c - '1'), true
}

// ParseRank reads exactly one rank digit at the start of text. A longer
// number such as "43" yields Rank4 and leaves "3" unconsumed.
func ParseRank(text string) (Rank, string, error) {
	c, size := utf8.DecodeRuneInString(text)
	r, ok := RankFromChar(c)
	if !ok {
		return 0, text, tokenMismatch("rank digit 1-8", text)
	}
	return r, text[size:], nil
}
