package jsplib

import "github.com/katalvlaran/disjunct/problem"

type usage struct {
	node     int
	duration int
}

// ToDisjunctive builds the disjunctive graph of s. Node order is job by
// job: the operations of a job followed by its finishing node. Fixed edges
// come first, then one disjunction per pair of operations on a machine.
func (s *Shop) ToDisjunctive() *problem.DisjunctiveGraph {
	m := s.NumMachines()
	g := &problem.DisjunctiveGraph{}
	onMachine := make([][]usage, m)

	for _, job := range s.Jobs {
		for _, op := range job {
			idx := len(g.Nodes)
			g.Nodes = append(g.Nodes, problem.Node{UB: problem.Unbounded})
			g.EdgeSets = append(g.EdgeSets, []problem.Edge{{Src: idx, Tgt: idx + 1, Weight: op.Duration}})
			onMachine[op.Machine] = append(onMachine[op.Machine], usage{node: idx, duration: op.Duration})
		}
		g.Nodes = append(g.Nodes, problem.Node{UB: problem.Unbounded, Coeff: 1})
	}

	for _, uses := range onMachine {
		for i := range uses {
			for j := i + 1; j < len(uses); j++ {
				a, b := uses[i], uses[j]
				g.EdgeSets = append(g.EdgeSets, []problem.Edge{
					{Src: a.node, Tgt: b.node, Weight: a.duration},
					{Src: b.node, Tgt: a.node, Weight: b.duration},
				})
			}
		}
	}

	return g
}
