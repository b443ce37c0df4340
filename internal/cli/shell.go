package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read command lines from standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			interactive := false
			if f, ok := cmd.InOrStdin().(*os.File); ok {
				interactive = term.IsTerminal(int(f.Fd()))
			}
			return a.runShell(cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
		},
	}
}

// runShell executes one command per input line until EOF or exit. The task
// list is printed after every line that changed it.
func (a *app) runShell(in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	prompt := func() {
		if interactive {
			fmt.Fprint(out, "taskline> ")
		}
	}

	prompt()
	for scanner.Scan() {
		before := a.todo.Version()
		res := a.executor.Execute(scanner.Text())
		printResult(out, res)
		if res.Exit {
			return nil
		}
		if a.todo.Version() != before {
			printTasks(out, a.todo, time.Now())
		}
		prompt()
	}
	return scanner.Err()
}
