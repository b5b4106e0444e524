package problem

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Parse decodes a JSON or YAML document and validates it.
//
// An edge set of length 0 is accepted: it is a legitimate (infeasible)
// problem, not a malformed one.
func Parse(data []byte) (*DisjunctiveGraph, error) {
	var g DisjunctiveGraph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return &g, nil
}

// Load reads and parses the problem file at path.
func Load(path string) (*DisjunctiveGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "problem: reading %s", path)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "problem: %s", filepath.Base(path))
	}

	return g, nil
}

// IsProblemFile reports whether name carries one of the extensions Load
// understands. It is used when scanning instance directories.
func IsProblemFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}

	return false
}

// Write encodes g as compact JSON, the wire format of the converters.
func Write(w io.Writer, g *DisjunctiveGraph) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(err, "problem: encoding document")
	}
	_, err := w.Write(buf.Bytes())

	return err
}

// Save writes g to path as JSON.
func Save(path string, g *DisjunctiveGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "problem: creating %s", path)
	}
	if err = Write(f, g); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Validate checks structural soundness of g.
//
// Steps:
//  1. At least one node must exist (ErrNoNodes).
//  2. Every coefficient must be non-negative (ErrNegativeCoeff).
//  3. Every edge endpoint must name an existing node (ErrNodeIndex).
func (g *DisjunctiveGraph) Validate() error {
	if len(g.Nodes) == 0 {
		return ErrNoNodes
	}
	for i, n := range g.Nodes {
		if n.Coeff < 0 {
			return errors.Wrapf(ErrNegativeCoeff, "node %d coeff=%d", i, n.Coeff)
		}
	}
	n := len(g.Nodes)
	for si, set := range g.EdgeSets {
		for _, e := range set {
			if e.Src < 0 || e.Src >= n || e.Tgt < 0 || e.Tgt >= n {
				return errors.Wrapf(ErrNodeIndex, "edge set %d: %d→%d with %d nodes", si, e.Src, e.Tgt, n)
			}
		}
	}

	return nil
}

// Split separates the edge sets of g into fixed edges and open disjunctions.
// empty is true if any edge set has no alternative at all. The returned
// disjunctions alias the edge sets of g and must not be modified.
func (g *DisjunctiveGraph) Split() (fixed []Edge, open [][]Edge, empty bool) {
	for _, set := range g.EdgeSets {
		switch len(set) {
		case 0:
			empty = true
		case 1:
			fixed = append(fixed, set[0])
		default:
			open = append(open, set)
		}
	}

	return fixed, open, empty
}

// Summary counts nodes, fixed edges, open disjunctions and empty edge sets.
func (g *DisjunctiveGraph) Summary() Summary {
	s := Summary{Nodes: len(g.Nodes)}
	for _, set := range g.EdgeSets {
		switch len(set) {
		case 0:
			s.Empty++
		case 1:
			s.Fixed++
		default:
			s.Disjunctions++
		}
	}

	return s
}

// Satisfied reports whether the alternative e already holds for the given
// start times.
func (e Edge) Satisfied(times []int) bool {
	return times[e.Src]+e.Weight <= times[e.Tgt]
}
