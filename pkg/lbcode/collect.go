package lbcode

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/ldraw"
)

// DefaultColor is the LDraw colour code marking a highlighted part.
const DefaultColor = 15

// Part is one accepted brick placement in grid space.
type Part struct {
	Orientation Orientation `json:"orientation"`
	Pos         GridPos     `json:"pos"`
	Highlighted bool        `json:"highlighted"`
	Line        int         `json:"line"`
}

// Warning is a non-fatal diagnostic raised while collecting parts.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// String formats w as "line N: message".
func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// State is the accumulator of a single conversion. It is owned by the
// conversion that created it and is not safe for concurrent use.
type State struct {
	Parts    []Part
	Bounds   Bounds
	Line     int // last line processed
	Warnings []Warning
}

// Option configures collection and conversion.
type Option func(*config)

type config struct {
	logger       *log.Logger
	requireParts bool
}

// WithLogger reports diagnostics (skipped line types) to l.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithRequireParts makes a model without any part an EMPTY_MODEL error
// instead of producing a bare header.
func WithRequireParts() Option { return func(c *config) { c.requireParts = true } }

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Collector turns LDraw lines into Parts, one line at a time.
type Collector struct {
	state  State
	logger *log.Logger
}

// NewCollector returns a Collector with an empty State.
func NewCollector(opts ...Option) *Collector {
	c := newConfig(opts)
	return &Collector{logger: c.logger}
}

// Add processes the tokens of line n. Blank lines (no tokens) are ignored.
// A returned error is fatal for the whole conversion.
func (c *Collector) Add(tokens []string, n int) error {
	c.state.Line = n
	if len(tokens) == 0 {
		return nil
	}

	typ, err := ldraw.ParseType(tokens, n)
	if err != nil {
		return err
	}
	switch typ {
	case ldraw.TypeComment:
		return nil
	case ldraw.TypePart:
	default:
		c.warn(n, fmt.Sprintf("unsupported line type %d, ignoring line", typ), "type", int(typ))
		return nil
	}

	line, err := ldraw.ParsePart(tokens, n)
	if err != nil {
		return err
	}
	part, err := partFromLine(line)
	if err != nil {
		return err
	}

	c.state.Parts = append(c.state.Parts, part)
	c.state.Bounds.Include(part.Pos, part.Orientation)
	return nil
}

// State returns the accumulated state. The Collector must not be used after
// the state has been handed to the sorter or encoder.
func (c *Collector) State() *State { return &c.state }

func (c *Collector) warn(n int, msg string, keyvals ...any) {
	c.state.Warnings = append(c.state.Warnings, Warning{Line: n, Message: msg})
	if c.logger != nil {
		c.logger.Warn(msg, append([]any{"line", n}, keyvals...)...)
	}
}

// partFromLine classifies and transforms a parsed type 1 line.
func partFromLine(l ldraw.PartLine) (Part, error) {
	o, ok := Classify(l.Rotation)
	if !ok {
		return Part{}, ldraw.NewLineError(l.Number, lberrors.ErrCodeUnsupportedRotation,
			"unsupported rotation %v", [9]float64(l.Rotation))
	}
	if !inRange(l.Position) {
		return Part{}, ldraw.NewLineError(l.Number, lberrors.ErrCodeOutOfRange,
			"position (%g, %g, %g) outside the supported range", l.Position.X, l.Position.Y, l.Position.Z)
	}
	return Part{
		Orientation: o,
		Pos:         ToGrid(l.Position, o),
		Highlighted: l.Color == DefaultColor,
		Line:        l.Number,
	}, nil
}

// Collect reads an LDraw model from r and accumulates its parts.
// Lines are processed strictly in order; the first fatal error aborts.
func Collect(r io.Reader, opts ...Option) (*State, error) {
	cfg := newConfig(opts)
	c := &Collector{logger: cfg.logger}

	s := ldraw.NewScanner(r)
	for s.Scan() {
		if err := c.Add(s.Tokens(), s.Line()); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "read model")
	}

	if cfg.requireParts && len(c.state.Parts) == 0 {
		return nil, lberrors.New(lberrors.ErrCodeEmptyModel, "no valid bricks found in model")
	}
	return &c.state, nil
}
