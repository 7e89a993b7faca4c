// Package pipeline turns an input file into a task document on disk.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cutit/internal/chunker"
	"github.com/dgallion1/cutit/internal/fileutil"
	"github.com/dgallion1/cutit/internal/parser"
	"github.com/dgallion1/cutit/internal/tasklist"
)

// Request describes one file to process.
type Request struct {
	Input      string
	Output     string // defaults to DefaultOutputPath(Input)
	Bounds     chunker.Bounds
	Model      string
	ForcedMode chunker.Mode // overrides the mode detected from the extension
	Labels     tasklist.Labels
}

// Result reports what Process produced.
type Result struct {
	OutputPath  string
	Title       string
	Mode        chunker.Mode
	Chunks      []string
	Stats       chunker.Stats
	ContentHash string
}

// Processor runs the read, split, format and save phases.
type Processor struct {
	log      *slog.Logger
	opts     []chunker.Option
	observer func(Phase)
}

// ProcessorOption customizes a Processor.
type ProcessorOption func(*Processor)

// WithChunkerOptions passes options to every Splitter the processor builds.
func WithChunkerOptions(opts ...chunker.Option) ProcessorOption {
	return func(p *Processor) {
		p.opts = append(p.opts, opts...)
	}
}

// WithObserver registers a callback invoked as each phase starts.
func WithObserver(fn func(Phase)) ProcessorOption {
	return func(p *Processor) {
		p.observer = fn
	}
}

func NewProcessor(log *slog.Logger, opts ...ProcessorOption) *Processor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Processor{log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process reads req.Input, splits it into chunks, renders the task document
// and writes it atomically to the output path. The context is checked between
// phases.
func (p *Processor) Process(ctx context.Context, req Request) (*Result, error) {
	log := p.log.With("file", req.Input)

	output := req.Output
	if output == "" {
		output = DefaultOutputPath(req.Input)
	}

	// Phase 1: Read
	if err := p.enter(ctx, log, PhaseReading); err != nil {
		return nil, err
	}
	src, err := parser.ReadFile(req.Input)
	if err != nil {
		log.Error("read failed", "error", err)
		return nil, err
	}
	mode := src.Mode
	if req.ForcedMode != "" {
		mode = req.ForcedMode
	}
	log = log.With("mode", mode)

	// Phase 2: Split
	if err := p.enter(ctx, log, PhaseSplitting); err != nil {
		return nil, err
	}
	opts := append([]chunker.Option{chunker.WithLogger(log)}, p.opts...)
	splitter := chunker.New(chunker.Config{
		Bounds: req.Bounds,
		Mode:   mode,
		Model:  req.Model,
	}, opts...)
	chunks := splitter.Split(src.Text)
	log.Info("split document", "chunks", len(chunks), "bounds", req.Bounds.String())

	// Phase 3: Format
	if err := p.enter(ctx, log, PhaseFormatting); err != nil {
		return nil, err
	}
	labels := req.Labels
	if labels == (tasklist.Labels{}) {
		labels = tasklist.EnglishLabels()
	}
	doc := tasklist.NewFormatter(labels).Render(chunks, src.Title)

	// Phase 4: Save
	if err := p.enter(ctx, log, PhaseSaving); err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(output, []byte(doc), 0o644); err != nil {
		log.Error("save failed", "output", output, "error", err)
		return nil, fmt.Errorf("write %s: %w", output, err)
	}
	log.Info("task document written", "output", output)

	return &Result{
		OutputPath:  output,
		Title:       src.Title,
		Mode:        mode,
		Chunks:      chunks,
		Stats:       chunker.ComputeStats(chunks),
		ContentHash: ContentHashHex([]byte(src.Text)),
	}, nil
}

func (p *Processor) enter(ctx context.Context, log *slog.Logger, phase Phase) error {
	if err := ctx.Err(); err != nil {
		log.Warn("processing cancelled", "phase", phase, "error", err)
		return fmt.Errorf("%s: %w", phase, err)
	}
	log.Debug("phase started", "phase", phase)
	if p.observer != nil {
		p.observer(phase)
	}
	return nil
}

// DefaultOutputPath replaces the extension of input with ".tasks.md".
func DefaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".tasks.md"
}
