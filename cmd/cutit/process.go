package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/cutit/internal/chunker"
	"github.com/dgallion1/cutit/internal/i18n"
	"github.com/dgallion1/cutit/internal/parser"
	"github.com/dgallion1/cutit/internal/pipeline"
	"github.com/dgallion1/cutit/internal/tasklist"
	"github.com/spf13/cobra"
)

func (a *app) processCmd() *cobra.Command {
	var output, size, model, fileType string

	cmd := &cobra.Command{
		Use:   "process FILE",
		Short: a.msgs.Get("help_description"),
		Long:  a.msgs.Get("help_description") + "\n\nFILE: " + a.msgs.Get("help_file"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.store.Load()
			if size != "" {
				b, err := parseSize(size)
				if err != nil {
					return err
				}
				cfg.ChunkSizeMin, cfg.ChunkSizeMax = b.Min, b.Max
			}
			if model != "" {
				cfg.Model = model
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			msgs := i18n.For(cfg.PtBR)

			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("%s: %s", msgs.Get("file_not_found"), input)
			}

			var forced chunker.Mode
			if fileType != "" {
				m, err := chunker.ParseMode(fileType)
				if err != nil {
					return err
				}
				forced = m
			}

			progress := cmd.ErrOrStderr()
			proc := pipeline.NewProcessor(a.log, pipeline.WithObserver(func(p pipeline.Phase) {
				fmt.Fprintln(progress, infoStyle.Render(msgs.Get(p.MessageKey())))
			}))

			res, err := proc.Process(cmd.Context(), pipeline.Request{
				Input:      input,
				Output:     output,
				Bounds:     chunker.Bounds{Min: cfg.ChunkSizeMin, Max: cfg.ChunkSizeMax},
				Model:      cfg.Model,
				ForcedMode: forced,
				Labels:     tasklist.LabelsFrom(msgs),
			})
			switch {
			case errors.Is(err, parser.ErrEncoding):
				return errors.New(msgs.Get("encoding_error"))
			case errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("%s: %s", msgs.Get("file_not_found"), input)
			case err != nil:
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render(msgs.Get("success")), res.OutputPath)
			fmt.Fprintf(out, "%s: %d\n", msgs.Get("chunks_created"), len(res.Chunks))
			printStats(out, msgs, res.Stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", a.msgs.Get("help_output"))
	cmd.Flags().StringVarP(&size, "size", "s", "", a.msgs.Get("help_size"))
	cmd.Flags().StringVarP(&model, "model", "m", "", a.msgs.Get("help_model"))
	cmd.Flags().StringVarP(&fileType, "type", "t", "", a.msgs.Get("help_type"))
	return cmd
}

func printStats(w io.Writer, msgs i18n.Messages, st chunker.Stats) {
	if st.TotalChunks == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(msgs.Get("chunk_stats")))
	fmt.Fprintf(w, "  %s: %d\n", msgs.Get("total_characters"), st.TotalCharacters)
	fmt.Fprintf(w, "  %s: %d\n", msgs.Get("average_chunk_size"), st.AverageSize)
	fmt.Fprintf(w, "  %s: %d\n", msgs.Get("min_chunk_size"), st.MinSize)
	fmt.Fprintf(w, "  %s: %d\n", msgs.Get("max_chunk_size"), st.MaxSize)
	fmt.Fprintf(w, "  %s: %d\n", msgs.Get("estimated_tokens"), st.EstimatedTokens)
}

// parseSize reads "MIN,MAX" or a single "N", which sets both bounds.
func parseSize(s string) (chunker.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return chunker.Bounds{}, fmt.Errorf("%w: %q, want MIN,MAX or N", chunker.ErrInvalidBounds, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return chunker.Bounds{}, fmt.Errorf("%w: %q is not a number", chunker.ErrInvalidBounds, p)
		}
		nums[i] = n
	}

	b := chunker.Exact(nums[0])
	if len(nums) == 2 {
		b = chunker.Bounds{Min: nums[0], Max: nums[1]}
	}
	if err := b.Validate(); err != nil {
		return chunker.Bounds{}, err
	}
	return b, nil
}
