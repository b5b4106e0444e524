package wdg

import "errors"

// ErrBackend reports that the LP backend did not return an optimal solution.
// The model is always feasible and bounded, so this is a contract violation.
var ErrBackend = errors.New("wdg: optimizer did not reach an optimal solution")

// Cost is the objective growth an alternative causes in one partition.
type Cost struct {
	Partition int
	Delta     int
}

// Pair is one alternative-pair, normalised so that P1 ≤ P2 (and C1 ≥ C2 when
// both sides hit the same partition).
type Pair struct {
	P1, C1 int
	P2, C2 int
}

// dominates reports whether p costs at least as much as q on both sides.
func (p Pair) dominates(q Pair) bool { return p.C1 >= q.C1 && p.C2 >= q.C2 }

func (p Pair) normalized() Pair {
	if p.P1 > p.P2 || (p.P1 == p.P2 && p.C1 < p.C2) {
		return Pair{P1: p.P2, C1: p.C2, P2: p.P1, C2: p.C1}
	}

	return p
}

type pairKey struct{ p1, p2 int }
