package main

import (
	"github.com/spf13/cobra"

	"github.com/kobzarvs/vedit/internal/app"
)

func runApp(opts app.Options) error {
	return app.New(opts).Run()
}

func newRootCmd(run func(app.Options) error) *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:     "vedit [file]",
		Short:   "A small modal terminal text editor",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		// main prints the error.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return run(opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Debug, "debug", false,
		"write debug-level entries to the log file")
	cmd.Flags().BoolVar(&opts.AbsoluteNumbers, "absolute-numbers", false,
		"show absolute line numbers instead of relative ones")
	return cmd
}
