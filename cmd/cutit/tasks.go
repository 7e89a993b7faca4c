package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/dgallion1/cutit/internal/i18n"
	"github.com/dgallion1/cutit/internal/pipeline"
	"github.com/dgallion1/cutit/internal/tasklist"
	"github.com/spf13/cobra"
)

const summaryWidth = 60

func (a *app) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: a.msgs.Get("help_tasks"),
	}
	cmd.AddCommand(a.tasksCountCmd())
	cmd.AddCommand(a.tasksShowCmd())
	cmd.AddCommand(a.tasksStatusCmd())
	cmd.AddCommand(a.tasksListCmd())
	return cmd
}

func (a *app) tasksCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count FILE",
		Short: a.msgs.Get("help_tasks_count"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, f, err := a.openTasks(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.CountTasks(doc))
			return nil
		},
	}
}

func (a *app) tasksShowCmd() *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "show FILE N",
		Short: a.msgs.Get("help_tasks_show"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, f, err := a.openTasks(args[0])
			if err != nil {
				return err
			}
			n, err := a.ordinal(args[1])
			if err != nil {
				return err
			}
			if !f.HasTask(doc, n) {
				return a.taskNotFound(n)
			}
			content := f.TaskContent(doc, n)
			if render {
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
				if err != nil {
					return fmt.Errorf("markdown renderer: %w", err)
				}
				if content, err = r.Render(content); err != nil {
					return fmt.Errorf("render task %d: %w", n, err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, a.msgs.Get("help_tasks_render"))
	return cmd
}

func (a *app) tasksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status FILE N STATUS",
		Short: a.msgs.Get("help_tasks_status"),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := a.openTasks(args[0])
			if err != nil {
				return err
			}
			n, err := a.ordinal(args[1])
			if err != nil {
				return err
			}
			st, err := f.Labels().ParseStatus(args[2])
			if err != nil {
				return err
			}

			err = pipeline.UpdateTaskFile(args[0], f, n, st)
			if errors.Is(err, pipeline.ErrTaskNotFound) {
				return a.taskNotFound(n)
			}
			if err != nil {
				return err
			}
			a.log.Debug("task status set", "file", args[0], "task", n, "status", st.Key())

			labels := f.Labels()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %d → %s\n",
				successStyle.Render(a.messages().Get("status_updated")), labels.Task, n, labels.StatusName(st))
			return nil
		},
	}
}

func (a *app) tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: a.msgs.Get("help_tasks_list"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, f, err := a.openTasks(args[0])
			if err != nil {
				return err
			}
			labels := f.Labels()
			out := cmd.OutOrStdout()
			for _, t := range f.Tasks(doc) {
				fmt.Fprintf(out, "%s %d  [%s]  %s\n", labels.Task, t.Ordinal, labels.StatusName(t.Status), summary(t.Content))
			}
			return nil
		},
	}
}

// openTasks reads a task document and picks the vocabulary it was written
// in, preferring the configured language.
func (a *app) openTasks(path string) (string, *tasklist.Formatter, error) {
	doc, err := pipeline.ReadTaskFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %s", a.messages().Get("file_not_found"), path)
	}

	ptBR := a.store.Load().PtBR
	preferred := tasklist.NewFormatter(tasklist.LabelsFrom(i18n.For(ptBR)))
	if preferred.CountTasks(doc) > 0 {
		return doc, preferred, nil
	}
	other := tasklist.NewFormatter(tasklist.LabelsFrom(i18n.For(!ptBR)))
	if other.CountTasks(doc) > 0 {
		return doc, other, nil
	}
	return doc, preferred, nil
}

func (a *app) ordinal(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: %q", a.messages().Get("task_not_found"), s)
	}
	return n, nil
}

func (a *app) taskNotFound(n int) error {
	return fmt.Errorf("%s: %d", a.messages().Get("task_not_found"), n)
}

// summary is the first line of content, cut to summaryWidth runes.
func summary(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	if utf8.RuneCountInString(line) <= summaryWidth {
		return line
	}
	r := []rune(line)
	return string(r[:summaryWidth-1]) + "…"
}
