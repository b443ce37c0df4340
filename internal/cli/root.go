package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

type rootOptions struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
}

// NewRootCommand builds the taskline command tree. Without a subcommand it
// starts the interactive display.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:     "taskline",
		Short:   "taskline manages tasks, deadlines and events from one command line.",
		Version: version,
		Long: `taskline keeps a list of tasks, deadlines and events. Every change is made
through a short command such as "add Pay rent -d friday 6pm" and can be undone.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is $HOME/.taskline.yaml or ./.taskline.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().String("data", "", "task data file (.json, .yaml or .db)")
	root.PersistentFlags().String("format", "", "data format: json, yaml or sqlite")

	_ = opts.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = opts.v.BindPFlag("data.file", root.PersistentFlags().Lookup("data"))
	_ = opts.v.BindPFlag("data.format", root.PersistentFlags().Lookup("format"))

	root.AddCommand(newRunCommand(opts), newShellCommand(opts))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
