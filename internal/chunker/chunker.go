package chunker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	ErrInvalidBounds = errors.New("invalid chunk bounds")
	ErrUnknownMode   = errors.New("unknown chunking mode")
	ErrNoSizer       = errors.New("no sizer available")
	ErrBoundary      = errors.New("boundary detection failed")
)

// Mode selects the boundary strategy of the semantic splitter.
type Mode string

const (
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeCode     Mode = "code"
)

// ParseMode maps a type name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText, nil
	case ModeMarkdown:
		return ModeMarkdown, nil
	case ModeCode:
		return ModeCode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Bounds is the target size window of a chunk, in sizer units.
type Bounds struct {
	Min int
	Max int
}

// Exact treats a single size as both the lower and upper target.
func Exact(n int) Bounds {
	return Bounds{Min: n, Max: n}
}

func (b Bounds) Validate() error {
	if b.Min <= 0 || b.Max <= 0 {
		return fmt.Errorf("%w: sizes must be positive, got %d-%d", ErrInvalidBounds, b.Min, b.Max)
	}
	if b.Min > b.Max {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidBounds, b.Min, b.Max)
	}
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Config controls chunking behavior.
type Config struct {
	Bounds Bounds
	Mode   Mode
	Model  string // Sizer model; "chars" counts runes instead of tokens.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Bounds: Bounds{Min: 300, Max: 500},
		Mode:   ModeText,
		Model:  "gpt-4",
	}
}

// Splitter turns text into ordered, trimmed, non-empty chunks.
type Splitter struct {
	cfg      Config
	sizer    Sizer
	sizerErr error
	log      *slog.Logger
}

// Option customizes a Splitter.
type Option func(*Splitter)

// WithSizer injects the size measure instead of resolving it from Config.Model.
func WithSizer(s Sizer) Option {
	return func(sp *Splitter) {
		sp.sizer = s
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(sp *Splitter) {
		if log != nil {
			sp.log = log
		}
	}
}

// New builds a Splitter. A sizer that cannot be resolved is not an error here:
// Split degrades to the paragraph fallback instead.
func New(cfg Config, opts ...Option) *Splitter {
	if cfg.Mode == "" {
		cfg.Mode = ModeText
	}
	s := &Splitter{
		cfg: cfg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sizer == nil {
		s.sizer, s.sizerErr = SizerForModel(cfg.Model)
	}
	return s
}

// Config returns the splitter configuration.
func (s *Splitter) Config() Config {
	return s.cfg
}

// Split chunks text with the semantic splitter, falling back to paragraph
// accumulation on any failure. Empty or whitespace-only input yields nil.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks, err := s.splitSemantic(text)
	if err != nil || len(chunks) == 0 {
		s.log.Debug("semantic split unavailable, using paragraph fallback",
			"error", err,
			"mode", string(s.cfg.Mode),
			"bounds", s.cfg.Bounds.String(),
		)
		return Fallback(text, s.cfg.Bounds.Max)
	}
	return chunks
}

func (s *Splitter) splitSemantic(text string) (chunks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("%w: %v", ErrBoundary, r)
		}
	}()

	if s.sizerErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSizer, s.sizerErr)
	}
	if s.sizer == nil {
		return nil, ErrNoSizer
	}
	if err := s.cfg.Bounds.Validate(); err != nil {
		return nil, err
	}

	p := &planner{
		src:      text,
		sizer:    s.sizer,
		bounds:   s.cfg.Bounds,
		levels:   levelsFor(s.cfg.Mode, text),
		headings: s.cfg.Mode == ModeMarkdown,
	}
	units := p.units(span{start: 0, end: len(text)}, 0, nil)
	return p.merge(units), nil
}

// span is a byte range of the source. level is the boundary level that
// opened it; 0 is the coarsest.
type span struct {
	start int
	end   int
	level int
}

type planner struct {
	src    string
	sizer  Sizer
	bounds Bounds
	levels []boundaryFunc
	// headings makes a heading section close a chunk that has reached Min.
	headings bool
}

func (p *planner) size(sp span) int {
	return p.sizer.Size(strings.TrimSpace(p.src[sp.start:sp.end]))
}

func (p *planner) fits(sp span) bool {
	return p.size(sp) <= p.bounds.Max
}

// units decomposes sp only as far as needed for every unit to fit Max.
func (p *planner) units(sp span, lvl int, out []span) []span {
	if lvl >= len(p.levels) || p.fits(sp) {
		return append(out, sp)
	}
	cuts := p.levels[lvl](p.src, sp.start, sp.end)
	if len(cuts) == 0 {
		return p.units(sp, lvl+1, out)
	}

	prev, level := sp.start, sp.level
	for _, c := range cuts {
		out = p.units(span{start: prev, end: c, level: level}, lvl+1, out)
		prev, level = c, lvl
	}
	return p.units(span{start: prev, end: sp.end, level: level}, lvl+1, out)
}

// merge packs consecutive units greedily up to Max. In markdown mode a heading
// also closes a chunk once it has reached Min.
func (p *planner) merge(units []span) []string {
	if len(units) == 0 {
		return nil
	}

	var chunks []string
	cur := units[0]
	for _, u := range units[1:] {
		joined := span{start: cur.start, end: u.end, level: cur.level}
		if !p.headingBreak(cur, u) && p.fits(joined) {
			cur = joined
			continue
		}
		chunks = appendTrimmed(chunks, p.src[cur.start:cur.end])
		cur = u
	}
	return appendTrimmed(chunks, p.src[cur.start:cur.end])
}

func (p *planner) headingBreak(cur, u span) bool {
	return p.headings && u.level == 0 && p.size(cur) >= p.bounds.Min
}

func appendTrimmed(chunks []string, s string) []string {
	if t := strings.TrimSpace(s); t != "" {
		chunks = append(chunks, t)
	}
	return chunks
}
