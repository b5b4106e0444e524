// Command disjunct solves disjunctive scheduling problems by branch and
// bound and converts or generates job-shop instances.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "disjunct",
		Short:         "Branch-and-bound solver for disjunctive scheduling problems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "use debug log level")

	cmd.AddCommand(
		newSolveCmd(g),
		newConvertCmd(g),
		newGenerateCmd(g),
	)

	return cmd
}

// logger builds the command logger writing to the command's stderr.
func (g *globalOptions) logger(cmd *cobra.Command) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if g.debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
