package bnb

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

// noIncumbent is the cost bound while no solution is known.
const noIncumbent = math.MaxInt

// Solve searches g for a schedule of minimum objective.
//
// Load-time infeasibility is a normal outcome (Status Infeasible, nil
// error). Errors are returned only for malformed input: invalid settings or
// a graph failing problem validation.
func Solve(ctx context.Context, g *problem.DisjunctiveGraph, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	start := time.Now()

	w, err := world.New(g, cfg.Settings, world.WithLogger(cfg.Logger))
	if err != nil {
		if errors.Cause(err) != world.ErrInfeasible {
			return Result{}, err
		}
		cfg.Logger.WithError(err).Info("no solution at load time")
		res := Result{Status: Infeasible, Stats: emptyStats()}
		res.Stats.Elapsed = time.Since(start)
		cfg.Metrics.observe(res.Stats, false)

		return res, nil
	}

	s := newSearcher(w, cfg, start)
	status := s.run(ctx)

	return s.result(status), nil
}

func emptyStats() Stats {
	return Stats{SolutionDepth: -1, BestValue: problem.Unbounded}
}

func newSearcher(w *world.World, cfg Options, start time.Time) *searcher {
	s := &searcher{
		w:     w,
		cfg:   cfg,
		log:   cfg.Logger.WithField("settings", w.Settings().String()),
		best:  noParent,
		start: start,
		stats: emptyStats(),
	}
	if cfg.Timeout >= 0 {
		s.useDeadline = true
		s.deadline = start.Add(cfg.Timeout)
		w.SetDeadline(s.deadline)
	}

	return s
}

// searcher holds the state of one search.
type searcher struct {
	w   *world.World
	cfg Options
	log logrus.FieldLogger

	tree     tree
	front    frontier
	children []entry
	cur      int32 // node the engine sits on
	best     int32 // incumbent, noParent without one

	start       time.Time
	useDeadline bool
	deadline    time.Time

	stats Stats
}

// ub returns the incumbent value, or noIncumbent.
func (s *searcher) ub() int {
	if s.best == noParent {
		return noIncumbent
	}

	return s.tree.nodes[s.best].state.LB
}

// expired reports whether the context or the time budget ran out.
func (s *searcher) expired(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	return s.useDeadline && !time.Now().Before(s.deadline)
}

// run drives the main loop and returns how it ended.
func (s *searcher) run(ctx context.Context) Status {
	if d, ok := ctx.Deadline(); ok && (!s.useDeadline || d.Before(s.deadline)) {
		s.w.SetDeadline(d)
	}
	root, ok := s.w.MkState(s.w.Bound(), noIncumbent)
	if !ok {
		panic("bnb: root evaluation pruned without an incumbent")
	}
	s.cur = s.tree.add(treeNode{state: root, parent: noParent})
	s.stats.RootBound = root.LB
	s.log.WithFields(logrus.Fields{
		"lb":        root.LB,
		"branching": len(root.Branching),
		"open":      s.w.NumOpen(),
	}).Debug("root evaluated")

	target := s.cur
	for {
		if s.stats.NodesSolved > 0 && s.expired(ctx) {
			s.log.WithField("solved", s.stats.NodesSolved).Info("search interrupted")
			return TimedOut
		}

		lb := s.tree.nodes[target].state.LB
		if lb >= s.ub() {
			s.log.WithField("lb", lb).Debug("target cannot improve on incumbent")
			break
		}
		s.stats.BestBound = max(s.stats.BestBound, lb)

		s.cur = s.tree.navigate(s.w, s.cur, target)
		s.stats.NodesSolved++
		s.expand(target)

		next, ok := s.next()
		if !ok {
			s.log.Debug("frontier exhausted")
			break
		}
		target = next
	}

	if s.best == noParent {
		return Infeasible
	}

	return Optimal
}

// expand evaluates every branching alternative of id, which the engine
// currently sits on. Terminal children become incumbents; the others are
// collected in s.children.
func (s *searcher) expand(id int32) {
	n := s.tree.nodes[id]
	s.children = s.children[:0]
	if n.state.Terminal() {
		if n.state.LB < s.ub() {
			s.record(id)
		}
		return
	}

	for _, e := range n.state.Branching {
		if !s.w.Push(e) {
			panic("bnb: branching edge rejected by the engine it was probed on")
		}
		st, ok := s.w.MkState(n.state.LB, s.ub())
		s.stats.StatesGenerated++
		if ok && !st.Dead() {
			s.stats.NodesGenerated++
			child := s.tree.add(treeNode{state: st, depth: n.depth + 1, parent: id, edge: e})
			s.stats.MaxDepth = max(s.stats.MaxDepth, int(n.depth)+1)
			if st.Terminal() {
				s.record(child)
			} else {
				s.children = append(s.children, entry{lb: st.LB, id: child})
			}
		}
		s.w.Pop()
	}
}

// record makes id the incumbent. Its bound is below the previous
// incumbent's by construction of the cost bound passed to MkState.
func (s *searcher) record(id int32) {
	n := &s.tree.nodes[id]
	s.best = id
	s.stats.BestValue = n.state.LB
	s.stats.SolutionDepth = int(n.depth)
	s.cfg.Metrics.incumbent()
	s.log.WithFields(logrus.Fields{
		"value": n.state.LB,
		"depth": n.depth,
		"nodes": s.stats.NodesSolved,
	}).Info("new incumbent")
}

// next selects the following target. The best child is descended into
// when it is no worse than the frontier minimum; otherwise the frontier
// minimum is taken and all children join the frontier.
func (s *searcher) next() (int32, bool) {
	ub := s.ub()
	kept := s.children[:0]
	for _, c := range s.children {
		if c.lb < ub {
			kept = append(kept, c)
		}
	}
	slices.SortStableFunc(kept, func(a, b entry) int { return cmp.Compare(a.lb, b.lb) })

	if len(kept) > 0 {
		if m, ok := s.front.minLB(); !ok || kept[0].lb <= m {
			for _, c := range kept[1:] {
				s.front.push(c)
			}
			return kept[0].id, true
		}
	}
	for _, c := range kept {
		s.front.push(c)
	}
	if s.front.len() == 0 {
		return 0, false
	}

	return s.front.pop().id, true
}

// result assembles the outcome, moving the engine to the incumbent to
// recover its schedule.
func (s *searcher) result(status Status) Result {
	res := Result{Status: status, Stats: s.stats}
	if s.best != noParent {
		s.cur = s.tree.navigate(s.w, s.cur, s.best)
		res.Found = true
		res.Value = s.tree.nodes[s.best].state.LB
		res.Schedule = s.w.Schedule()
		res.Decisions = s.tree.decisions(s.best)
		if status == Optimal {
			res.Stats.BestBound = max(res.Stats.BestBound, res.Value)
		}
	}
	res.Stats.Elapsed = time.Since(s.start)
	s.cfg.Metrics.observe(res.Stats, res.Found)

	s.log.WithFields(logrus.Fields{
		"status":  status.String(),
		"value":   res.Stats.BestValue,
		"root":    res.Stats.RootBound,
		"solved":  res.Stats.NodesSolved,
		"elapsed": res.Stats.Elapsed,
	}).Info("search finished")

	return res
}
