package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/disjunct/jsplib"
	"github.com/katalvlaran/disjunct/problem"
)

type generateOptions struct {
	*globalOptions

	jobs        int
	machines    int
	seed        int64
	maxDuration int
	format      string
	out         string
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random job-shop instance",
		Long: `Generate writes a random job-shop instance in which every job visits
every machine once in a random order. The same seed yields the same instance.

        $ disjunct generate --jobs 4 --machines 3 --seed 7 -o random.json
        $ disjunct generate --jobs 4 --machines 3 --format jsplib
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.jobs < 1 || o.machines < 1 {
				return errors.Errorf("need at least one job and one machine, got %dx%d", o.jobs, o.machines)
			}
			if o.format != "json" && o.format != "jsplib" {
				return errors.Errorf("unknown format %q", o.format)
			}
			shop := jsplib.Random(o.jobs, o.machines,
				jsplib.WithSeed(o.seed), jsplib.WithMaxDuration(o.maxDuration))

			if o.out == "" || o.out == "-" {
				return o.write(cmd.OutOrStdout(), shop)
			}
			f, err := os.Create(o.out)
			if err != nil {
				return errors.Wrap(err, "generate")
			}
			if err := o.write(f, shop); err != nil {
				f.Close()
				return err
			}
			o.logger(cmd).WithField("out", o.out).Debug("generated")

			return errors.Wrap(f.Close(), "generate")
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&o.jobs, "jobs", 3, "number of jobs")
	flags.IntVar(&o.machines, "machines", 3, "number of machines")
	flags.Int64Var(&o.seed, "seed", 1, "random seed")
	flags.IntVar(&o.maxDuration, "max-duration", 10, "largest processing time")
	flags.StringVar(&o.format, "format", "json", "output format: json or jsplib")
	flags.StringVarP(&o.out, "out", "o", "-", "output file, - for stdout")

	return cmd
}

func (o *generateOptions) write(w io.Writer, shop *jsplib.Shop) error {
	switch o.format {
	case "json":
		return problem.Write(w, shop.ToDisjunctive())
	case "jsplib":
		return jsplib.Format(w, shop)
	default:
		return errors.Errorf("unknown format %q", o.format)
	}
}
