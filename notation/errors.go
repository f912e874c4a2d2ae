package notation

import "fmt"

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// TokenMismatch means the expected letter or digit is absent or out of range.
	TokenMismatch ErrorKind = iota
	// LiteralMismatch means the expected delimiter text is absent.
	LiteralMismatch
	// TrailingInput means a decoded line has text left after the move.
	TrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case TokenMismatch:
		return "token mismatch"
	case LiteralMismatch:
		return "literal mismatch"
	case TrailingInput:
		return "trailing input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is returned by every parser in this package. Input holds the
// text at the position where the failing token was expected.
type ParseError struct {
	Kind     ErrorKind
	Expected string
	Input    string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: expected %s, got end of input", e.Kind, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s at %q", e.Kind, e.Expected, excerpt(e.Input))
}

// Is reports whether target is a *ParseError of the same kind, so the
// sentinels below can be matched with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrTokenMismatch   error = &ParseError{Kind: TokenMismatch}
	ErrLiteralMismatch error = &ParseError{Kind: LiteralMismatch}
	ErrTrailingInput   error = &ParseError{Kind: TrailingInput}
)

// LineError locates a decoding failure inside multi-line input.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func tokenMismatch(expected, input string) error {
	return &ParseError{Kind: TokenMismatch, Expected: expected, Input: input}
}

// excerpt keeps error messages short for long inputs.
func excerpt(s string) string {
	const max = 16
	for i := range s {
		if i >= max {
			return s[:i] + "..."
		}
	}
	return s
}
