package main

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/disjunct/world"
)

// namedSettings is one column of a batch experiment.
type namedSettings struct {
	Name string `json:"name"`
	world.Settings
}

type matrixFile struct {
	Settings []namedSettings `json:"settings"`
}

// defaultMatrix compares the branching rules and bound variants.
func defaultMatrix() []namedSettings {
	return []namedSettings{
		{Name: "chrono"},
		{Name: "strong", Settings: world.Settings{StrongBranching: true}},
		{Name: "strong-wdg", Settings: world.Settings{StrongBranching: true, WDGBound: true}},
		{Name: "strong-wdg-relaxed", Settings: world.Settings{StrongBranching: true, WDGBound: true, WDGRelaxed: true}},
	}
}

// loadMatrix reads a YAML or JSON settings matrix. Unnamed entries are
// named after their settings; every entry must validate.
func loadMatrix(path string) ([]namedSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read matrix %s", path)
	}
	var mf matrixFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrapf(err, "decode matrix %s", path)
	}
	if len(mf.Settings) == 0 {
		return nil, errors.Errorf("matrix %s: no settings", path)
	}
	for i := range mf.Settings {
		ns := &mf.Settings[i]
		if ns.Name == "" {
			ns.Name = ns.Settings.String()
		}
		if err := ns.Validate(); err != nil {
			return nil, errors.Wrapf(err, "matrix %s: entry %q", path, ns.Name)
		}
	}

	return mf.Settings, nil
}

// addSettingsFlags binds the single-run strategy flags to s.
func addSettingsFlags(fs *pflag.FlagSet, s *world.Settings) {
	d := world.DefaultSettings()
	fs.BoolVar(&s.StrongBranching, "strong-branching", d.StrongBranching, "branch on the disjunction with the largest probed bound growth")
	fs.BoolVar(&s.WDGBound, "wdg", d.WDGBound, "tighten node bounds with the WDG subproblem")
	fs.BoolVar(&s.WDGRelaxed, "wdg-relaxed", d.WDGRelaxed, "solve the WDG subproblem as a linear relaxation (requires --wdg)")
}
