package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// updateCmd has no release channel to query; it only reports.
func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: a.msgs.Get("help_update"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			msgs := a.messages()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, infoStyle.Render(msgs.Get("checking_updates")))
			fmt.Fprintln(out, successStyle.Render(msgs.Get("up_to_date")))
		},
	}
}
