package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/teja123git/Maze-Generator/pkg/concurrent"
	"github.com/teja123git/Maze-Generator/pkg/engine"
	"github.com/teja123git/Maze-Generator/pkg/engine/session"
	"github.com/teja123git/Maze-Generator/pkg/util"
	"gopkg.in/yaml.v2"
)

type benchOptions struct {
	algorithms []string
	sizes      []string
	runs       int
	workers    int
	seed       uint64
	format     string
}

type benchJob struct {
	algorithm     string
	width, height int
	seed          uint64
}

type benchResult struct {
	job     benchJob
	summary session.Summary
	err     error
}

// benchRow. aggregated runs of one algorithm on one size.
type benchRow struct {
	Algorithm string        `yaml:"algorithm"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Runs      int           `yaml:"runs"`
	Events    int           `yaml:"events"`
	Frontier  int           `yaml:"frontier_events"`
	Mean      time.Duration `yaml:"mean"`
	Min       time.Duration `yaml:"min"`
	Max       time.Duration `yaml:"max"`
}

func newBenchCmd(newEngine func() (*engine.Engine, error)) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Generate mazes concurrently and report wall time per algorithm and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine()
			if err != nil {
				return err
			}
			if len(opts.algorithms) == 0 {
				opts.algorithms = e.Algorithms()
			}
			rows, err := runBench(cmd.Context(), e, opts)
			if err != nil {
				return err
			}
			return writeBench(cmd.OutOrStdout(), rows, opts.format)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.algorithms, "algorithms", "a", nil, "algorithms to run, all when omitted")
	cmd.Flags().StringSliceVar(&opts.sizes, "sizes", []string{"41x23", "101x101"}, "maze sizes as WIDTHxHEIGHT")
	cmd.Flags().IntVarP(&opts.runs, "runs", "n", 5, "runs per algorithm and size")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "concurrent generations")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed of the first run, later runs use the following seeds")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table or yaml")
	return cmd
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput, "size '%s' is not WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrBadParamInput, "size '%s' is not WIDTHxHEIGHT", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, util.WrapErrorf(err, util.ErrBadParamInput, "size '%s' is not WIDTHxHEIGHT", s)
	}
	return width, height, nil
}

func runBench(ctx context.Context, e *engine.Engine, opts benchOptions) ([]benchRow, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.runs <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "runs must be positive")
	}
	if opts.format != "table" && opts.format != "yaml" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown format '%s'", opts.format)
	}

	jobs := make([]benchJob, 0, len(opts.algorithms)*len(opts.sizes)*opts.runs)
	for _, size := range opts.sizes {
		width, height, err := parseSize(size)
		if err != nil {
			return nil, err
		}
		for _, alg := range opts.algorithms {
			for i := 0; i < opts.runs; i++ {
				jobs = append(jobs, benchJob{algorithm: alg, width: width, height: height, seed: opts.seed + uint64(i)})
			}
		}
	}

	workers := opts.workers
	if workers <= 0 {
		workers = 1
	}
	results := concurrent.Run(ctx, workers, jobs, func(ctx context.Context, job benchJob) benchResult {
		summary, err := e.Measure(job.algorithm, job.width, job.height, job.seed)
		return benchResult{job: job, summary: summary, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return aggregate(results)
}

func aggregate(results []benchResult) ([]benchRow, error) {
	type key struct {
		algorithm     string
		width, height int
	}
	rows := make(map[key]*benchRow)
	total := make(map[key]time.Duration)

	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		k := key{res.job.algorithm, res.job.width, res.job.height}
		row, ok := rows[k]
		if !ok {
			row = &benchRow{Algorithm: k.algorithm, Width: k.width, Height: k.height, Min: res.summary.Elapsed}
			rows[k] = row
		}
		row.Runs++
		row.Events = res.summary.Events
		row.Frontier = res.summary.FrontierEvents
		total[k] += res.summary.Elapsed
		row.Min = min(row.Min, res.summary.Elapsed)
		row.Max = max(row.Max, res.summary.Elapsed)
	}

	out := make([]benchRow, 0, len(rows))
	for k, row := range rows {
		row.Mean = total[k] / time.Duration(row.Runs)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Width*a.Height != b.Width*b.Height {
			return a.Width*a.Height < b.Width*b.Height
		}
		return a.Algorithm < b.Algorithm
	})
	return out, nil
}

func writeBench(w io.Writer, rows []benchRow, format string) error {
	if format == "yaml" {
		b, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tSIZE\tRUNS\tEVENTS\tFRONTIER\tMEAN\tMIN\tMAX")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%d\t%s\t%s\t%s\n", r.Algorithm, r.Width, r.Height, r.Runs,
			r.Events, r.Frontier, session.FormatElapsed(r.Mean), session.FormatElapsed(r.Min), session.FormatElapsed(r.Max))
	}
	return tw.Flush()
}
