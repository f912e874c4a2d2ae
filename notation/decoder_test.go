package notation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const game = `
e2-e4
e7-e5

g1-f3 
b8-c6
`

func TestDecodeMoves(t *testing.T) {
	moves, err := DecodeMoves(game)
	if err != nil {
		t.Fatalf("DecodeMoves returned error: %v", err)
	}

	want := []string{"e2-e4", "e7-e5", "g1-f3", "b8-c6"}
	if len(moves) != len(want) {
		t.Fatalf("decoded %d moves, want %d", len(moves), len(want))
	}
	for i, m := range moves {
		if m.String() != want[i] {
			t.Errorf("move %d = %s, want %s", i, m, want[i])
		}
	}
}

func TestDecoderOptions(t *testing.T) {
	t.Run("Space delimiter", func(t *testing.T) {
		moves, err := DecodeMoves("e3 d4\r\nA1 H8\r\n", WithDelimiter(" "))
		if err != nil {
			t.Fatalf("DecodeMoves returned error: %v", err)
		}
		if len(moves) != 2 || moves[0] != e3d4 || moves[1].String() != "a1-h8" {
			t.Errorf("DecodeMoves = %v", moves)
		}
	})

	t.Run("Short notation", func(t *testing.T) {
		moves, err := DecodeMoves("ed4\n  ee4\n", WithShortNotation(Rank3))
		if err != nil {
			t.Fatalf("DecodeMoves returned error: %v", err)
		}
		if len(moves) != 2 || moves[0] != e3d4 || moves[1].String() != "e3-e4" {
			t.Errorf("DecodeMoves = %v", moves)
		}
	})

	t.Run("Last grammar option wins", func(t *testing.T) {
		d := NewDecoder(WithShortNotation(Rank3), WithDelimiter(":"))
		m, err := d.DecodeLine("e3:d4")
		if err != nil {
			t.Fatalf("DecodeLine returned error: %v", err)
		}
		if m != e3d4 {
			t.Errorf("DecodeLine = %v, want %v", m, e3d4)
		}
	})
}

func TestDecodeLineTrailingInput(t *testing.T) {
	d := NewDecoder()
	_, err := d.DecodeLine("e2-e4 e7-e5")
	if !errors.Is(err, ErrTrailingInput) {
		t.Fatalf("DecodeLine error = %v, want trailing input", err)
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Input != " e7-e5" {
		t.Errorf("error input = %q, want %q", perr.Input, " e7-e5")
	}
}

func TestDecodeStreaming(t *testing.T) {
	t.Run("Stops at first bad line", func(t *testing.T) {
		movesChan, errChan := NewDecoder().DecodeStreaming(context.Background(), "e2-e4\n\ne7-e5\ne5e4\ng1-f3\n")

		count := 0
		for m := range movesChan {
			if m == nil {
				t.Error("received nil move")
				continue
			}
			count++
		}
		if count != 2 {
			t.Errorf("received %d moves, want 2", count)
		}

		err := <-errChan
		var lineErr *LineError
		if !errors.As(err, &lineErr) {
			t.Fatalf("error = %v, want *LineError", err)
		}
		if lineErr.Line != 4 {
			t.Errorf("error line = %d, want 4", lineErr.Line)
		}
		if !errors.Is(err, ErrLiteralMismatch) {
			t.Errorf("error = %v, want literal mismatch", err)
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		movesChan, errChan := NewDecoder().DecodeStreaming(context.Background(), "")
		for range movesChan {
			t.Error("received a move from empty input")
		}
		if err := <-errChan; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		moves, err := NewDecoder().Decode(ctx, "e2-e4\ne7-e5\n")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Decode error = %v, want context.Canceled", err)
		}
		if moves != nil {
			t.Errorf("Decode returned moves %v after cancellation", moves)
		}
	})
}

func TestDecodeLongLine(t *testing.T) {
	text := "e2-e4" + strings.Repeat(" ", 70000) + "\n" + "e7-e5" + strings.Repeat(" ", 70000) + "x\n"

	moves, err := DecodeMoves(text)
	if !errors.Is(err, ErrTrailingInput) {
		t.Fatalf("DecodeMoves error = %v, want trailing input", err)
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 {
		t.Errorf("error = %v, want failure on line 2", err)
	}
	if moves != nil {
		t.Errorf("DecodeMoves returned moves %v with an error", moves)
	}

	moves, err = DecodeMoves("e2-e4" + strings.Repeat(" ", 70000) + "\n")
	if err != nil || len(moves) != 1 {
		t.Errorf("DecodeMoves = %v, %v; want one move", moves, err)
	}
}
