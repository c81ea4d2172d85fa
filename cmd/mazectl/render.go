package main

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/teja123git/Maze-Generator/pkg"
	da "github.com/teja123git/Maze-Generator/pkg/datastructure"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"golang.org/x/exp/rand"
)

type renderOptions struct {
	algorithm string
	width     int
	height    int
	seed      uint64
	color     bool
	events    bool
}

func newRenderCmd(newEngine func() (*engine.Engine, error)) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate one maze and print it as ascii art",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = rand.Uint64()
			}
			return renderMaze(cmd, e, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", pkg.DEFAULT_ALGORITHM, "generation algorithm")
	cmd.Flags().IntVarP(&opts.width, "width", "W", pkg.DEFAULT_WIDTH, "maze width in cells, odd")
	cmd.Flags().IntVarP(&opts.height, "height", "H", pkg.DEFAULT_HEIGHT, "maze height in cells, odd")
	cmd.Flags().Uint64VarP(&opts.seed, "seed", "s", 0, "random seed, random when omitted")
	cmd.Flags().BoolVar(&opts.color, "color", true, "highlight start and end cells")
	cmd.Flags().BoolVar(&opts.events, "events", false, "print the event stream instead of the maze")
	return cmd
}

func renderMaze(cmd *cobra.Command, e *engine.Engine, opts renderOptions) error {
	generate := e.Generate
	if opts.events {
		generate = e.Trace
	}
	m, err := generate(opts.algorithm, opts.width, opts.height, opts.seed)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	au := aurora.NewAurora(opts.color)

	if opts.events {
		for _, ev := range m.Events {
			if ev.From != nil {
				fmt.Fprintf(out, "%s %d,%d <- %d,%d\n", ev.Type, ev.Cell.Row, ev.Cell.Col, ev.From.Row, ev.From.Col)
				continue
			}
			fmt.Fprintf(out, "%s %d,%d\n", ev.Type, ev.Cell.Row, ev.Cell.Col)
		}
	} else {
		start, end := m.Grid.Start(), m.Grid.End()
		fmt.Fprint(out, m.Grid.Render(func(c da.Cell) string {
			switch c {
			case start:
				return " " + au.Green("S").Bold().String() + " "
			case end:
				return " " + au.Red("E").Bold().String() + " "
			default:
				return "   "
			}
		}))
	}

	fmt.Fprintf(out, "%s %dx%d seed=%d events=%d time=%s\n", au.Cyan(m.Summary.Algorithm),
		m.Summary.Width, m.Summary.Height, m.Seed, m.Summary.Events, m.Summary.ElapsedString())
	return nil
}
