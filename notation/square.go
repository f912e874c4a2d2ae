package notation

import "strings"

// Square is one cell of the board.
type Square struct {
	Rank Rank
	File File
}

// NewSquare builds a square from an already decoded file and rank. Both
// must be valid; check Valid on the result when they come from elsewhere.
func NewSquare(f File, r Rank) Square {
	return Square{Rank: r, File: f}
}

// Valid reports whether both coordinates are on the board.
func (sq Square) Valid() bool {
	return sq.File.Valid() && sq.Rank.Valid()
}

// String returns the square in coordinate form, e.g. "e4".
func (sq Square) String() string {
	return sq.File.String() + sq.Rank.String()
}

// ParseSquare skips leading blanks, then reads a file letter followed by a
// rank digit.
func ParseSquare(text string) (Square, string, error) {
	rest := skipBlanks(text)
	f, rest, err := ParseFile(rest)
	if err != nil {
		return Square{}, text, err
	}
	r, rest, err := ParseRank(rest)
	if err != nil {
		return Square{}, text, err
	}
	return Square{Rank: r, File: f}, rest, nil
}

func (sq Square) MarshalText() ([]byte, error) {
	return []byte(sq.String()), nil
}

// UnmarshalText accepts one square, optionally preceded by blanks, with
// nothing after it.
func (sq *Square) UnmarshalText(text []byte) error {
	s, rest, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	if rest != "" {
		return &ParseError{Kind: TrailingInput, Expected: "end of square", Input: rest}
	}
	*sq = s
	return nil
}

// skipBlanks drops leading spaces and tabs. Other whitespace is significant.
func skipBlanks(text string) string {
	return strings.TrimLeft(text, " \t")
}
