package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/disjunct/bnb"
	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

type solveOptions struct {
	*globalOptions

	timeout    time.Duration
	settings   world.Settings
	matrixPath string
	jobs       int
	metrics    string
}

// run is one (instance, settings) cell of the result table.
type run struct {
	instance string
	settings namedSettings
	graph    *problem.DisjunctiveGraph
	result   bnb.Result
}

func newSolveCmd(g *globalOptions) *cobra.Command {
	o := &solveOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "solve PATH",
		Short: "Solve a problem file, or every problem file of a directory",
		Long: `Solve searches for a schedule of minimum weighted delay.

PATH is a JSON or YAML problem file, or a directory whose *.json, *.yaml and
*.yml files are all solved. Directories are run against a settings matrix:
the file given by --matrix, or a default comparing branching rules and bound
variants. A single file uses the strategy flags unless --matrix is given.

        $ disjunct solve instances/jsp_ft06.json --timeout 30s
        $ disjunct solve instances/ --matrix matrix.yaml --jobs 4
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return o.run(ctx, cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&o.timeout, "timeout", 60*time.Second, "wall-clock budget per search")
	addSettingsFlags(flags, &o.settings)
	flags.StringVar(&o.matrixPath, "matrix", "", "YAML settings matrix for batch runs")
	flags.IntVarP(&o.jobs, "jobs", "j", 1, "number of searches run concurrently")
	flags.StringVar(&o.metrics, "metrics", "", "write Prometheus metrics in text format to this file")

	return cmd
}

func (o *solveOptions) run(ctx context.Context, cmd *cobra.Command, path string) error {
	log := o.logger(cmd)
	if o.jobs < 1 {
		return errors.Errorf("--jobs must be positive, got %d", o.jobs)
	}

	files, isDir, err := problemFiles(path)
	if err != nil {
		return err
	}
	matrix, err := o.matrix(isDir)
	if err != nil {
		return err
	}

	var runs []*run
	for _, f := range files {
		g, err := problem.Load(f)
		if err != nil {
			return err
		}
		sum := g.Summary()
		log.WithFields(logrus.Fields{
			"instance":     f,
			"nodes":        sum.Nodes,
			"fixed":        sum.Fixed,
			"disjunctions": sum.Disjunctions,
		}).Debug("loaded")
		for _, s := range matrix {
			runs = append(runs, &run{instance: filepath.Base(f), settings: s, graph: g})
		}
	}

	reg := prometheus.NewRegistry()
	metrics := bnb.NewMetrics(reg)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.jobs)
	for _, r := range runs {
		eg.Go(func() error {
			res, err := bnb.Solve(egCtx, r.graph,
				bnb.WithSettings(r.settings.Settings),
				bnb.WithTimeout(o.timeout),
				bnb.WithLogger(log.WithFields(logrus.Fields{
					"instance": r.instance,
					"settings": r.settings.Name,
				})),
				bnb.WithMetrics(metrics),
			)
			if err != nil {
				return errors.Wrapf(err, "%s (%s)", r.instance, r.settings.Name)
			}
			r.result = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if err := printTable(cmd.OutOrStdout(), runs); err != nil {
		return err
	}
	if o.metrics != "" {
		return writeMetrics(o.metrics, reg)
	}

	return nil
}

// matrix returns the settings to run: the matrix file if given, the
// default matrix for directories, otherwise the flag settings.
func (o *solveOptions) matrix(isDir bool) ([]namedSettings, error) {
	switch {
	case o.matrixPath != "":
		return loadMatrix(o.matrixPath)
	case isDir:
		return defaultMatrix(), nil
	}
	if err := o.settings.Validate(); err != nil {
		return nil, err
	}

	return []namedSettings{{Name: o.settings.String(), Settings: o.settings}}, nil
}

// problemFiles expands path into the problem files to solve, sorted.
func problemFiles(path string) (files []string, isDir bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, errors.Wrap(err, "solve")
	}
	if !info.IsDir() {
		return []string{path}, false, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, true, errors.Wrap(err, "solve")
	}
	for _, e := range entries {
		if !e.IsDir() && problem.IsProblemFile(e.Name()) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, true, errors.Errorf("no problem files in %s", path)
	}
	sort.Strings(files)

	return files, true, nil
}

func printTable(w io.Writer, runs []*run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tSETTINGS\tSTATUS\tVALUE\tROOT\tBEST\tNODES\tDEPTH\tSECONDS")
	for _, r := range runs {
		res := r.result
		value := "-"
		if res.Found {
			value = strconv.Itoa(res.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.3f\n",
			r.instance, r.settings.Name, res.Status, value,
			res.Stats.RootBound, res.Stats.BestBound, res.Stats.NodesSolved,
			res.Stats.MaxDepth, res.Stats.Elapsed.Seconds())
	}

	return tw.Flush()
}

func writeMetrics(path string, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write metrics")
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrapf(err, "encode %s", mf.GetName())
		}
	}

	return errors.Wrap(f.Close(), "write metrics")
}
