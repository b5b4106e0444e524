package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/disjunct/jsplib"
	"github.com/katalvlaran/disjunct/problem"
)

type convertOptions struct {
	*globalOptions

	index string
	out   string
}

func newConvertCmd(g *globalOptions) *cobra.Command {
	o := &convertOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Convert JSPLIB job-shop instances into problem files",
		Long: `Convert turns JSPLIB text instances into disjunctive problem files whose
objective is the total completion time.

With --index, every instance listed in a JSPLIB instances.json is converted
into --out as jsp_<name>.json. Otherwise FILE is converted into --out.

        $ disjunct convert --index JSPLIB/instances.json --out instances/
        $ disjunct convert JSPLIB/instances/ft06 -o ft06.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := o.logger(cmd)
			switch {
			case o.index != "" && len(args) == 0:
				return o.convertIndex(log)
			case o.index == "" && len(args) == 1:
				return convertFile(log, args[0], o.out)
			default:
				return errors.New("convert needs either --index or exactly one FILE")
			}
		},
	}

	cmd.Flags().StringVar(&o.index, "index", "", "JSPLIB instances.json listing the instances to convert")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file, or output directory with --index")
	if err := cmd.MarkFlagRequired("out"); err != nil {
		logrus.Fatalf("Failed to mark `out` flag for `convert` subcommand as required")
	}

	return cmd
}

func (o *convertOptions) convertIndex(log logrus.FieldLogger) error {
	instances, err := jsplib.LoadIndex(o.index)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", o.out)
	}

	base := filepath.Dir(o.index)
	for _, inst := range instances {
		src := filepath.Join(base, filepath.FromSlash(inst.Path))
		dst := filepath.Join(o.out, "jsp_"+inst.Name+".json")
		if err := convertFile(log.WithField("instance", inst.Name), src, dst); err != nil {
			return err
		}
	}
	log.WithField("count", len(instances)).Info("converted index")

	return nil
}

func convertFile(log logrus.FieldLogger, src, dst string) error {
	shop, err := jsplib.ParseFile(src)
	if err != nil {
		return err
	}
	g := shop.ToDisjunctive()
	if err := problem.Save(dst, g); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"jobs":     shop.NumJobs(),
		"machines": shop.NumMachines(),
		"out":      dst,
	}).Info("converted")

	return nil
}
