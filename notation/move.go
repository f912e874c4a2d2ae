package notation

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Move is a pair of squares. Departure and Destination may be equal; the
// grammar does not rule out a null move.
type Move struct {
	Departure   Square
	Destination Square
}

// String returns the move in full notation with "-" as the delimiter.
func (m Move) String() string {
	return m.Departure.String() + "-" + m.Destination.String()
}

// ParseFullMove reads two squares separated by delimiter, e.g. "e2-e4" with
// delimiter "-" or "e2 e4" with delimiter " ". The delimiter must match
// exactly and is consumed once.
func ParseFullMove(text, delimiter string) (Move, string, error) {
	departure, rest, err := ParseSquare(text)
	if err != nil {
		return Move{}, text, err
	}
	if !strings.HasPrefix(rest, delimiter) {
		return Move{}, text, &ParseError{
			Kind:     LiteralMismatch,
			Expected: "delimiter " + strconv.Quote(delimiter),
			Input:    rest,
		}
	}
	rest = rest[len(delimiter):]
	destination, rest, err := ParseSquare(rest)
	if err != nil {
		return Move{}, text, err
	}
	return Move{Departure: departure, Destination: destination}, rest, nil
}

// ParseShortMove reads the compact form "<file><file><rank>", where the
// departure rank comes from context rather than the text.
//
// The first letter is the departure file, the second letter and the digit
// form the destination. So "ed4" with departureRank Rank3 is e3-d4.
func ParseShortMove(text string, departureRank Rank) (Move, string, error) {
	if !departureRank.Valid() {
		return Move{}, text, &ParseError{Kind: TokenMismatch, Expected: "rank 1-8", Input: departureRank.String()}
	}
	rest := skipBlanks(text)
	departureFile, rest, err := ParseFile(rest)
	if err != nil {
		return Move{}, text, err
	}
	destinationFile, rest, err := ParseFile(rest)
	if err != nil {
		return Move{}, text, err
	}
	destinationRank, rest, err := ParseRank(rest)
	if err != nil {
		return Move{}, text, err
	}
	return Move{
		Departure:   Square{Rank: departureRank, File: departureFile},
		Destination: Square{Rank: destinationRank, File: destinationFile},
	}, rest, nil
}

type moveJSON struct {
	Departure   Square `json:"departure"`
	Destination Square `json:"destination"`
}

// MarshalJSON encodes the move as {"departure":"e2","destination":"e4"}.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{Departure: m.Departure, Destination: m.Destination})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Departure = raw.Departure
	m.Destination = raw.Destination
	return nil
}
