package notation

import (
	"context"
	"log/slog"
	"strings"
)

var log = slog.Default().With("package", "notation")

// DefaultDelimiter separates the squares of a full-notation move unless
// WithDelimiter says otherwise.
const DefaultDelimiter = "-"

// Decoder decodes moves written one per line, all in the same notation.
// A Decoder is immutable once built and safe for concurrent use.
type Decoder struct {
	delimiter     string
	short         bool
	departureRank Rank
	log           *slog.Logger
}

type DecoderOption func(*Decoder)

// WithDelimiter selects full notation with the given delimiter.
func WithDelimiter(delimiter string) DecoderOption {
	return func(d *Decoder) {
		d.short = false
		d.delimiter = delimiter
	}
}

// WithShortNotation selects short notation, completing every departure
// square with departureRank.
func WithShortNotation(departureRank Rank) DecoderOption {
	return func(d *Decoder) {
		d.short = true
		d.departureRank = departureRank
	}
}

func WithLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.log = logger
	}
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		delimiter: DefaultDelimiter,
		log:       log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads one move at the start of text with the configured notation
// and returns the unconsumed remainder.
func (d *Decoder) Parse(text string) (Move, string, error) {
	if d.short {
		return ParseShortMove(text, d.departureRank)
	}
	return ParseFullMove(text, d.delimiter)
}

// DecodeLine decodes a line holding exactly one move. Trailing blanks and a
// carriage return are allowed after the move.
func (d *Decoder) DecodeLine(line string) (Move, error) {
	m, rest, err := d.Parse(line)
	if err != nil {
		return Move{}, err
	}
	if strings.TrimRight(rest, " \t\r") != "" {
		return Move{}, &ParseError{Kind: TrailingInput, Expected: "end of line", Input: rest}
	}
	return m, nil
}

// DecodeStreaming decodes text line by line, sending each move as soon as it
// is decoded. Blank lines are skipped. Decoding stops at the first failure,
// which is reported as a *LineError on the error channel. Both channels are
// closed when decoding ends.
func (d *Decoder) DecodeStreaming(ctx context.Context, text string) (<-chan *Move, <-chan error) {
	results := make(chan *Move)
	errc := make(chan error, 1)

	go func() {
		defer close(results)
		defer close(errc)

		lineNo, count := 0, 0
		for _, line := range strings.Split(text, "\n") {
			lineNo++
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			m, err := d.DecodeLine(line)
			if err != nil {
				d.log.Debug("move rejected", "line", lineNo, "error", err)
				errc <- &LineError{Line: lineNo, Err: err}
				return
			}

			select {
			case results <- &m:
				count++
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		d.log.Debug("moves decoded", "lines", lineNo, "moves", count)
	}()

	return results, errc
}

// Decode collects the output of DecodeStreaming.
func (d *Decoder) Decode(ctx context.Context, text string) ([]Move, error) {
	movesChan, errChan := d.DecodeStreaming(ctx, text)

	moves := make([]Move, 0)
	for m := range movesChan {
		moves = append(moves, *m)
	}

	if err := <-errChan; err != nil {
		return nil, err
	}
	return moves, nil
}

// DecodeMoves decodes newline separated moves with a Decoder built from opts.
func DecodeMoves(text string, opts ...DecoderOption) ([]Move, error) {
	return NewDecoder(opts...).Decode(context.Background(), text)
}
