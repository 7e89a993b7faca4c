package main

import (
	"io"
	"log/slog"

	"github.com/dgallion1/cutit/internal/config"
	"github.com/dgallion1/cutit/internal/i18n"
	"github.com/dgallion1/cutit/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs. Help text is localized from the
// stored pt_br setting, so the config is read once before the commands are
// built.
type app struct {
	env    config.Env
	stdout io.Writer
	stderr io.Writer
	debug  bool

	log   *slog.Logger
	store *config.Store
	msgs  i18n.Messages
}

func newApp(stdout, stderr io.Writer, env config.Env) *app {
	a := &app{env: env, stdout: stdout, stderr: stderr}
	a.setLogger(env.LogLevel)
	a.msgs = i18n.For(a.store.Load().PtBR)
	return a
}

func (a *app) setLogger(level slog.Level) {
	a.log = logging.New(a.stderr, level, a.env.LogFormat)
	a.store = config.NewStore(a.env.ConfigPath, a.log)
}

// messages returns the table for the current config, which a command may
// have just changed.
func (a *app) messages() i18n.Messages {
	return i18n.For(a.store.Load().PtBR)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cutit",
		Short:         a.msgs.Get("help_description"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.debug {
				a.setLogger(slog.LevelDebug)
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().BoolVar(&a.debug, "debug", a.env.Debug, "enable debug logging")

	root.AddCommand(a.processCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(a.updateCmd())
	root.AddCommand(a.tasksCmd())
	return root
}
