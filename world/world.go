package world

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/disjunct/longestpath"
	"github.com/katalvlaran/disjunct/partition"
	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/wdg"
)

// ErrInfeasible reports a problem that has no solution before any search:
// an empty edge set, or fixed edges that cannot all hold.
var ErrInfeasible = errors.New("world: problem is infeasible")

// State is the evaluation of one search-tree node.
type State struct {
	// LB is a lower bound on every completion of the node; for a terminal
	// node it is the exact value of the schedule.
	LB int

	// Branching lists the alternatives to branch on. It is nil when every
	// disjunction is already satisfied, and empty (non-nil) when some
	// disjunction has no affordable alternative left.
	Branching []problem.Edge
}

// Terminal reports a fully resolved schedule.
func (s State) Terminal() bool { return s.Branching == nil }

// Dead reports a node with an unsatisfiable disjunction.
func (s State) Dead() bool { return s.Branching != nil && len(s.Branching) == 0 }

// Options configures a World.
type Options struct {
	Logger logrus.FieldLogger
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger routes World diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns Options with a silent logger.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{Logger: l}
}

// alternative is one affordable edge of the disjunction being scanned.
type alternative struct {
	edge  problem.Edge
	delta int
	costs []wdg.Cost
}

// World couples the propagation engine with node evaluation.
type World struct {
	settings Settings
	log      logrus.FieldLogger

	engine *longestpath.Engine
	open   [][]problem.Edge
	parts  *partition.Partitioning
	wdg    *wdg.Solver

	alts    []alternative
	costBuf [][]wdg.Cost // per alternative slot, reused across scans
	best    []problem.Edge
}

// New loads g into a fresh engine, commits its fixed edges and partitions
// its nodes.
//
// Errors:
//   - ErrInvalidSettings if s is contradictory.
//   - problem validation errors for malformed graphs.
//   - ErrInfeasible (wrapped) for an empty edge set, an empty time window or
//     conflicting fixed edges.
func New(g *problem.DisjunctiveGraph, s Settings, opts ...Option) (*World, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	fixed, open, empty := g.Split()
	if empty {
		return nil, errors.Wrap(ErrInfeasible, "empty edge set")
	}

	engine := longestpath.New(len(g.Nodes))
	for i, n := range g.Nodes {
		if n.LB > n.UB {
			return nil, errors.Wrapf(ErrInfeasible, "node %d window [%d, %d] is empty", i, n.LB, n.UB)
		}
		engine.AddNode(n)
	}
	for _, e := range fixed {
		if !engine.AddFixedEdge(e) {
			return nil, errors.Wrapf(ErrInfeasible, "fixed edge %d→%d (weight %d)", e.Src, e.Tgt, e.Weight)
		}
	}

	w := &World{
		settings: s,
		log:      cfg.Logger,
		engine:   engine,
		open:     open,
		parts:    partition.Build(len(g.Nodes), fixed),
		wdg:      wdg.NewSolver(),
	}
	w.log.WithFields(logrus.Fields{
		"nodes":        len(g.Nodes),
		"fixed":        len(fixed),
		"disjunctions": len(open),
		"partitions":   w.parts.Count(),
		"bound":        engine.Objective(),
	}).Debug("world loaded")

	return w, nil
}

// MkState evaluates the node the engine currently sits on.
//
// preLB is the parent's bound. It is returned as is when a forced or
// infeasible disjunction short-circuits the scan and is otherwise a floor
// for the computed bound, so bounds never decrease along a path. costUB is
// the incumbent value (alternatives and nodes reaching it are discarded).
// ok is false when the node cannot improve on costUB.
func (w *World) MkState(preLB, costUB int) (state State, ok bool) {
	w.wdg.Clear()
	realized := w.engine.Objective()

	var (
		haveBranch bool
		bestScore  int
		forced     bool
	)
	for _, set := range w.open {
		if w.satisfied(set) {
			continue
		}

		w.collect(set, realized, costUB)
		if len(w.alts) < 2 {
			w.best = w.best[:0]
			for _, a := range w.alts {
				w.best = append(w.best, a.edge)
			}
			haveBranch, forced = true, true
			break
		}

		if w.settings.WDGBound && len(w.alts) == 2 {
			w.wdg.AddDisjunction(w.alts[0].costs, w.alts[1].costs)
		}

		score := w.score(set)
		if !haveBranch || score > bestScore {
			haveBranch, bestScore = true, score
			w.best = w.best[:0]
			for _, a := range w.alts {
				w.best = append(w.best, a.edge)
			}
		}
	}

	lb := preLB
	if !forced {
		lb = realized
		if w.settings.WDGBound {
			extra, err := w.wdg.Solve(w.parts.Count(), w.settings.WDGRelaxed)
			if err != nil {
				panic(fmt.Sprintf("world: WDG bound at depth %d: %+v", w.engine.Depth(), err))
			}
			lb += extra
		}
		lb = max(lb, preLB)
	}
	if lb >= costUB {
		return State{}, false
	}

	state.LB = lb
	if haveBranch {
		state.Branching = append(make([]problem.Edge, 0, len(w.best)), w.best...)
	}

	return state, true
}

// satisfied reports whether some alternative of set already holds.
func (w *World) satisfied(set []problem.Edge) bool {
	for _, e := range set {
		if w.engine.Position(e.Src)+e.Weight <= w.engine.Position(e.Tgt) {
			return true
		}
	}

	return false
}

// collect probes every alternative of set and keeps the feasible ones whose
// resulting cost stays below costUB, with their per-partition growth.
func (w *World) collect(set []problem.Edge, realized, costUB int) {
	w.alts = w.alts[:0]
	for _, e := range set {
		changes, ok := w.engine.HypotheticalEdgeLB(e)
		if !ok {
			continue
		}

		slot := len(w.alts)
		if slot == len(w.costBuf) {
			w.costBuf = append(w.costBuf, nil)
		}
		costs := w.costBuf[slot][:0]
		total := 0
		for _, c := range changes {
			total += c.Delta
			costs = addCost(costs, w.parts.Of(c.Node), c.Delta)
		}
		w.costBuf[slot] = costs
		if realized+total >= costUB {
			continue
		}
		w.alts = append(w.alts, alternative{edge: e, delta: total, costs: costs})
	}
}

// addCost accumulates delta into the entry of partition p.
func addCost(costs []wdg.Cost, p, delta int) []wdg.Cost {
	for i := range costs {
		if costs[i].Partition == p {
			costs[i].Delta += delta
			return costs
		}
	}

	return append(costs, wdg.Cost{Partition: p, Delta: delta})
}

// score ranks an open disjunction whose affordable alternatives are in w.alts.
func (w *World) score(set []problem.Edge) int {
	if w.settings.StrongBranching {
		lo, hi := w.alts[0].delta, w.alts[0].delta
		for _, a := range w.alts[1:] {
			lo, hi = min(lo, a.delta), max(hi, a.delta)
		}

		return 5*lo + hi
	}

	earliest := w.engine.Position(set[0].Src)
	for _, e := range set {
		earliest = min(earliest, w.engine.Position(e.Src), w.engine.Position(e.Tgt))
	}

	return -earliest
}

// Push commits e on the engine; false means e is infeasible here.
func (w *World) Push(e problem.Edge) bool {
	_, ok := w.engine.PushEdge(e)
	return ok
}

// Pop undoes the last Push.
func (w *World) Pop() { w.engine.Pop() }

// Bound returns the realized objective of the committed edges.
func (w *World) Bound() int { return w.engine.Objective() }

// Schedule returns the earliest start times under the committed edges.
func (w *World) Schedule() []int { return w.engine.Positions() }

// Committed returns the committed search edges, outermost first.
func (w *World) Committed() []problem.Edge { return w.engine.Pushed() }

// Depth returns the number of committed search edges.
func (w *World) Depth() int { return w.engine.Depth() }

// NumPartitions returns the number of fixed-edge partitions.
func (w *World) NumPartitions() int { return w.parts.Count() }

// SetDeadline bounds the time an exact WDG solve may take. Past t the solve
// returns the weaker bound it has proven so far. The zero time clears it.
func (w *World) SetDeadline(t time.Time) { w.wdg.SetDeadline(t) }

// NumOpen returns the number of open disjunctions of the problem.
func (w *World) NumOpen() int { return len(w.open) }

// Settings returns the settings the World was built with.
func (w *World) Settings() Settings { return w.settings }
