package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/taskline/internal/commands"
	"github.com/sandeepkv93/taskline/internal/todo"
	"github.com/sandeepkv93/taskline/internal/views"
	"github.com/spf13/cobra"
)

var errCommandFailed = errors.New("command failed")

func newRunCommand(opts *rootOptions) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "run <command line>...",
		Short: "Run one or more command lines and exit",
		Example: `  taskline run "add Pay rent -d friday 6pm -t home"
  taskline run "find rent" "complete -a"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			failed := false
			for _, line := range args {
				res := a.executor.Execute(line)
				printResult(out, res)
				failed = failed || res.Failed
				if res.Exit {
					break
				}
			}
			if list {
				printTasks(out, a.todo, time.Now())
			}
			if failed {
				return errCommandFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the task list afterwards")
	return cmd
}

func printResult(w io.Writer, res commands.Result) {
	if res.Feedback != "" {
		fmt.Fprintln(w, res.Feedback)
	}
	for _, k := range res.ErrorKeys {
		fmt.Fprintf(w, "  %s: %s\n", k, res.Errors[k])
	}
	for _, s := range res.Help {
		fmt.Fprintf(w, "  %s\n", s)
	}
	if res.Focus != nil {
		fmt.Fprintln(w, views.RenderTaskDetail(views.TaskDetail(*res.Focus, time.Now())))
	}
}

func printTasks(w io.Writer, tm *todo.Model, now time.Time) {
	tasks := tm.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("%2d. [%s] %s", i+1, mark, t.Title)
		if t.Pinned {
			line += " *"
		}
		if when := views.WhenText(t, now); when != "" {
			line += " (" + when + ")"
		}
		if names := t.TagNames(); len(names) > 0 {
			line += " #" + strings.Join(names, " #")
		}
		fmt.Fprintln(w, line)
	}
}
