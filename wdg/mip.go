package wdg

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// simplexTol is the reduced-cost tolerance handed to lp.Simplex.
	simplexTol = 1e-10

	// ceilTol absorbs simplex noise before a bound is rounded up.
	ceilTol = 1e-6

	// DefaultNodeLimit caps the branch nodes of one exact solve.
	DefaultNodeLimit = 256
)

// lpModel holds the reusable state of one bounding program.
type lpModel struct {
	pairs  []Pair
	column map[int]int // partition → cost column
	nCost  int

	// level is the committed lower bound per cost column. A pair is covered
	// once either side reaches its cost.
	level []int

	rows []int     // scratch: uncovered pairs entering the LP
	rhs  []float64 // scratch: their residual right-hand sides

	nodes int
	cut   bool

	solve func(c []float64, a mat.Matrix, b []float64, basic []int) (float64, []float64, error)
}

// roundUp returns the smallest integer not below f up to ceilTol. Every
// integral cost vector above an LP bound f is worth at least roundUp(f).
func roundUp(f float64) int {
	return int(math.Ceil(f - ceilTol))
}

func (s *Solver) solvePairs(pairs []Pair, nPartitions int, relaxed bool) (int, error) {
	s.truncated = false
	if len(pairs) == 0 {
		return 0, nil
	}

	m := &s.lp
	m.pairs = pairs
	if m.column == nil {
		m.column = make(map[int]int)
	}
	clear(m.column)
	m.nCost = 0
	for _, p := range pairs {
		for _, part := range [2]int{p.P1, p.P2} {
			if part < 0 || part >= nPartitions {
				panic(fmt.Sprintf("wdg: partition %d out of range [0, %d)", part, nPartitions))
			}
			if _, ok := m.column[part]; !ok {
				m.column[part] = m.nCost
				m.nCost++
			}
		}
	}
	if cap(m.level) < m.nCost {
		m.level = make([]int, m.nCost)
	}
	m.level = m.level[:m.nCost]
	if m.solve == nil {
		m.solve = func(c []float64, a mat.Matrix, b []float64, basic []int) (float64, []float64, error) {
			return lp.Simplex(c, a, b, simplexTol, basic)
		}
	}

	clear(m.level)
	if relaxed {
		f, err := s.relaxation()
		if err != nil {
			return 0, err
		}
		return roundUp(f), nil
	}

	best := s.greedy()
	clear(m.level)
	m.nodes, m.cut = 0, false
	open := math.Inf(1)
	if err := s.branch(0, 0, &best, &open); err != nil {
		return 0, err
	}
	if m.cut {
		s.truncated = true
		if b := roundUp(open); b < best {
			return b, nil
		}
	}

	return best, nil
}

// greedy covers every pair by raising its cheaper side and returns the
// total. It is an upper bound on the exact optimum.
func (s *Solver) greedy() int {
	m := &s.lp
	for _, p := range m.pairs {
		a, b := m.column[p.P1], m.column[p.P2]
		if m.level[a] >= p.C1 || m.level[b] >= p.C2 {
			continue
		}
		if p.C1-m.level[a] <= p.C2-m.level[b] {
			m.level[a] = p.C1
		} else {
			m.level[b] = p.C2
		}
	}

	total := 0
	for _, l := range m.level {
		total += l
	}

	return total
}

// exhausted reports whether the node budget or the deadline ran out. The
// root is always evaluated.
func (s *Solver) exhausted() bool {
	m := &s.lp
	if m.cut {
		return true
	}
	if m.nodes == 0 {
		return false
	}
	if s.nodeLimit > 0 && m.nodes >= s.nodeLimit {
		return true
	}

	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// branch runs a depth-first branch-and-bound over the uncovered pairs.
// sum is Σ level, parent the bound of the parent node. *best is lowered to
// every cover found; *open collects the bounds of subtrees left unexplored
// when the budget runs out.
func (s *Solver) branch(sum int, parent float64, best *int, open *float64) error {
	m := &s.lp
	if s.exhausted() {
		m.cut = true
		*open = math.Min(*open, parent)
		return nil
	}
	m.nodes++

	j := s.hardest()
	if j < 0 {
		*best = min(*best, sum)
		return nil
	}
	f, err := s.relaxation()
	if err != nil {
		return err
	}
	bound := float64(sum) + f
	if roundUp(bound) >= *best {
		return nil
	}

	p := m.pairs[j]
	type side struct{ col, cost int }
	sides := [2]side{{m.column[p.P1], p.C1}, {m.column[p.P2], p.C2}}
	if sides[1].cost-m.level[sides[1].col] < sides[0].cost-m.level[sides[0].col] {
		sides[0], sides[1] = sides[1], sides[0]
	}
	for i, sd := range sides {
		if i == 1 && sd.col == sides[0].col {
			// The cheaper raise of the same column already covers the pair.
			break
		}
		old := m.level[sd.col]
		m.level[sd.col] = sd.cost
		err = s.branch(sum+sd.cost-old, bound, best, open)
		m.level[sd.col] = old
		if err != nil {
			return err
		}
	}

	return nil
}

// hardest returns the uncovered pair whose cheaper side needs the largest
// raise, or -1 when every pair is covered.
func (s *Solver) hardest() int {
	m := &s.lp
	j, worst := -1, 0
	for i, p := range m.pairs {
		a, b := m.column[p.P1], m.column[p.P2]
		da, db := p.C1-m.level[a], p.C2-m.level[b]
		if da <= 0 || db <= 0 {
			continue
		}
		if d := min(da, db); d > worst {
			j, worst = i, d
		}
	}

	return j
}

// relaxation returns the LP bound on the extra cost above the current
// levels. Each uncovered pair needs x[P1]/c1 + x[P2]/c2 ≥ 1; over the
// residual x' = x − level the rows become a covering program, whose dual
//
//	max Σ r·y  s.t.  Σ_j a_jP·y_j ≤ 1 per partition, y ≥ 0
//
// has one row per partition and a slack basis to start from.
func (s *Solver) relaxation() (float64, error) {
	m := &s.lp
	m.rows, m.rhs = m.rows[:0], m.rhs[:0]
	for j, p := range m.pairs {
		a, b := m.column[p.P1], m.column[p.P2]
		if m.level[a] >= p.C1 || m.level[b] >= p.C2 {
			continue
		}
		r := 1 - float64(m.level[a])/float64(p.C1) - float64(m.level[b])/float64(p.C2)
		if r <= 0 {
			continue
		}
		m.rows = append(m.rows, j)
		m.rhs = append(m.rhs, r)
	}
	k := len(m.rows)
	if k == 0 {
		return 0, nil
	}

	cols := k + m.nCost
	c := make([]float64, cols)
	a := mat.NewDense(m.nCost, cols, nil)
	b := make([]float64, m.nCost)
	basic := make([]int, m.nCost)
	for i := 0; i < m.nCost; i++ {
		a.Set(i, k+i, 1)
		b[i] = 1
		basic[i] = k + i
	}
	for i, j := range m.rows {
		p := m.pairs[j]
		c[i] = -m.rhs[i]
		pa, pb := m.column[p.P1], m.column[p.P2]
		a.Set(pa, i, a.At(pa, i)+1/float64(p.C1))
		a.Set(pb, i, a.At(pb, i)+1/float64(p.C2))
	}

	s.solves++
	f, _, err := m.solve(c, a, b, basic)
	if err != nil {
		return 0, errors.Wrapf(ErrBackend, "%d pairs, %d partitions: %v", k, m.nCost, err)
	}

	return -f, nil
}
