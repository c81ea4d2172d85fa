package main

import (
	"github.com/spf13/cobra"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/logger"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "mazectl",
		Short:         "Generate and benchmark mazes from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")

	newEngine := func() (*engine.Engine, error) {
		log := zap.NewNop()
		if verbose {
			var err error
			if log, err = logger.New(); err != nil {
				return nil, err
			}
		}
		return engine.NewEngine(engine.DefaultConfig(), log)
	}

	cmd.AddCommand(newRenderCmd(newEngine), newBenchCmd(newEngine))
	return cmd
}
