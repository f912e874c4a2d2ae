package notation

import (
	"fmt"

	chess "github.com/corentings/chess/v2"
)

// ChessSquare converts sq to the square type of github.com/corentings/chess.
// Invalid squares become chess.NoSquare.
func (sq Square) ChessSquare() chess.Square {
	if !sq.Valid() {
		return chess.NoSquare
	}
	return chess.NewSquare(chess.File(sq.File), chess.Rank(sq.Rank))
}

// SquareFromChess converts a corentings/chess square. chess.NoSquare and
// other out-of-board values are rejected.
func SquareFromChess(sq chess.Square) (Square, error) {
	if sq < chess.A1 || sq > chess.H8 {
		return Square{}, fmt.Errorf("square %d is off the board", int(sq))
	}
	return Square{Rank: Rank(sq.Rank()), File: File(sq.File())}, nil
}

// UCI returns the move in the long coordinate form used by UCI engines,
// e.g. "e2e4". A move with an invalid square yields the null move "0000".
func (m Move) UCI() string {
	if !m.Departure.Valid() || !m.Destination.Valid() {
		return "0000"
	}
	return m.Departure.ChessSquare().String() + m.Destination.ChessSquare().String()
}
