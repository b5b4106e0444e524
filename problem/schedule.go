package problem

import "github.com/pkg/errors"

// ErrViolation indicates a schedule that breaks a time window, a fixed edge
// or every alternative of some disjunction.
var ErrViolation = errors.New("problem: schedule violates a constraint")

// Objective evaluates Σ coeff·max(0, time − threshold) over all nodes.
func (g *DisjunctiveGraph) Objective(times []int) int {
	var total int
	for i, n := range g.Nodes {
		if d := times[i] - n.Threshold; d > 0 {
			total += n.Coeff * d
		}
	}

	return total
}

// Check verifies that times is a complete, feasible schedule of g: one time
// per node inside its window, and at least one satisfied alternative per
// edge set.
func (g *DisjunctiveGraph) Check(times []int) error {
	if len(times) != len(g.Nodes) {
		return errors.Wrapf(ErrViolation, "%d times for %d nodes", len(times), len(g.Nodes))
	}
	for i, n := range g.Nodes {
		if times[i] < n.LB || times[i] > n.UB {
			return errors.Wrapf(ErrViolation, "node %d at %d outside [%d, %d]", i, times[i], n.LB, n.UB)
		}
	}
	for si, set := range g.EdgeSets {
		ok := false
		for _, e := range set {
			if e.Satisfied(times) {
				ok = true
				break
			}
		}
		if !ok {
			return errors.Wrapf(ErrViolation, "edge set %d has no satisfied alternative", si)
		}
	}

	return nil
}
