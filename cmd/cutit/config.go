package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	var (
		show    bool
		ptBR    bool
		cliMode bool
		model   string
		size    string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: a.msgs.Get("help_config_show"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if show {
				cfg := a.store.Load()
				msgs := a.messages()
				state := func(on bool) string {
					if on {
						return msgs.Get("enabled")
					}
					return msgs.Get("disabled")
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, headerStyle.Render(msgs.Get("current_config")+":"))
				fmt.Fprintf(out, "%s: %d-%d\n", msgs.Get("chunk_size"), cfg.ChunkSizeMin, cfg.ChunkSizeMax)
				fmt.Fprintf(out, "%s: %s\n", msgs.Get("model"), cfg.Model)
				fmt.Fprintf(out, "%s: %s\n", msgs.Get("pt_br_label"), state(cfg.PtBR))
				fmt.Fprintf(out, "%s: %s\n", msgs.Get("cli_mode_label"), state(cfg.CLIMode))
				return nil
			}

			updates := map[string]any{}
			if cmd.Flags().Changed("pt-br") {
				updates["pt_br"] = ptBR
			}
			if cmd.Flags().Changed("cli") {
				updates["cli_mode"] = cliMode
			}
			if cmd.Flags().Changed("model") {
				updates["model"] = model
			}
			if cmd.Flags().Changed("size") {
				b, err := parseSize(size)
				if err != nil {
					return err
				}
				updates["chunk_size_min"] = b.Min
				updates["chunk_size_max"] = b.Max
			}

			if len(updates) == 0 {
				fmt.Fprintln(out, hintStyle.Render(a.messages().Get("no_config_changes")))
				return nil
			}

			if _, err := a.store.Update(updates); err != nil {
				return err
			}
			fmt.Fprintln(out, successStyle.Render(a.messages().Get("config_updated")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, a.msgs.Get("help_config_show"))
	cmd.Flags().BoolVar(&ptBR, "pt-br", false, a.msgs.Get("help_config_ptbr"))
	cmd.Flags().BoolVar(&cliMode, "cli", true, a.msgs.Get("help_config_cli"))
	cmd.Flags().StringVar(&model, "model", "", a.msgs.Get("help_config_model"))
	cmd.Flags().StringVar(&size, "size", "", a.msgs.Get("help_config_size"))
	return cmd
}
