// Command tffcat drives a tff.Parser over real terminal byte streams: logged
// traces of every dispatch call, or the live output of a child process
// running under a pseudo-terminal.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tffcat",
		Short: "Feed terminal control streams through tff and inspect the result",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every dispatch call, not just invalid ones")

	root.AddCommand(newTraceCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newBatchCommand())
	return root
}
