package wdg

import "time"

// Solver accumulates alternative-pairs for one search node and solves the
// bounding program. It must be cleared and repopulated for every node.
type Solver struct {
	frontier map[pairKey][]Pair
	keys     []pairKey // first-insertion order, for deterministic models
	lp       lpModel
	solves   int

	nodeLimit int
	deadline  time.Time
	truncated bool
}

// NewSolver returns an empty solver with DefaultNodeLimit and no deadline.
func NewSolver() *Solver {
	return &Solver{frontier: make(map[pairKey][]Pair), nodeLimit: DefaultNodeLimit}
}

// SetNodeLimit caps the branch nodes of one exact solve. A non-positive n
// lifts the cap.
func (s *Solver) SetNodeLimit(n int) { s.nodeLimit = n }

// SetDeadline stops exact solves that run past t. The zero time clears it.
func (s *Solver) SetDeadline(t time.Time) { s.deadline = t }

// Truncated reports whether the last exact solve ran out of nodes or time.
// Its result is then the smallest bound over the unexplored subtrees: still
// a lower bound, but possibly below the integral optimum.
func (s *Solver) Truncated() bool { return s.truncated }

// Clear drops every stored pair.
func (s *Solver) Clear() {
	clear(s.frontier)
	s.keys = s.keys[:0]
}

// AddDisjunction records a binary disjunction given the per-partition cost
// vectors of its two alternatives. Every positive entry of alt1 is paired
// with every positive entry of alt2.
func (s *Solver) AddDisjunction(alt1, alt2 []Cost) {
	for _, a := range alt1 {
		if a.Delta <= 0 {
			continue
		}
		for _, b := range alt2 {
			if b.Delta <= 0 {
				continue
			}
			s.AddPair(Pair{P1: a.Partition, C1: a.Delta, P2: b.Partition, C2: b.Delta})
		}
	}
}

// AddPair inserts p into the Pareto frontier of its partition key. It
// returns false when p is dominated by a stored pair and was discarded.
func (s *Solver) AddPair(p Pair) bool {
	p = p.normalized()
	key := pairKey{p.P1, p.P2}
	front, seen := s.frontier[key]
	for _, q := range front {
		if q.dominates(p) {
			return false
		}
	}

	kept := front[:0]
	for _, q := range front {
		if !p.dominates(q) {
			kept = append(kept, q)
		}
	}
	s.frontier[key] = append(kept, p)
	if !seen {
		s.keys = append(s.keys, key)
	}

	return true
}

// Len returns the number of surviving (non-dominated) pairs.
func (s *Solver) Len() int {
	var n int
	for _, k := range s.keys {
		n += len(s.frontier[k])
	}

	return n
}

// Pairs returns a snapshot of the surviving pairs in insertion-key order.
func (s *Solver) Pairs() []Pair {
	out := make([]Pair, 0, s.Len())
	for _, k := range s.keys {
		out = append(out, s.frontier[k]...)
	}

	return out
}

// Solves returns how many LP relaxations the solver has run in total.
func (s *Solver) Solves() int { return s.solves }

// Solve returns the WDG lower bound over nPartitions partitions. With
// relaxed, a single LP is solved; otherwise the cover program is solved by
// branch-and-bound within the node limit and deadline.
// It panics if a stored pair names a partition outside [0, nPartitions).
func (s *Solver) Solve(nPartitions int, relaxed bool) (int, error) {
	return s.solvePairs(s.Pairs(), nPartitions, relaxed)
}
