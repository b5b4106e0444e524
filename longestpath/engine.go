package longestpath

import (
	"fmt"

	"github.com/katalvlaran/disjunct/problem"
)

// Engine is an incremental longest-path propagator with a trail.
// It is not safe for concurrent use.
type Engine struct {
	nodes    []nodeState
	outgoing [][]arc

	undo     []problem.Edge // pushed edges, innermost last
	trail    []trailEntry   // (node, previous position) log
	trailLim []int          // trail length at each push

	objective int

	// Scratch buffers reused across calls; see PushEdge and Pop.
	queue    []int
	changes  []BoundChange
	restored []int
}

// New returns an empty engine with room for capacity nodes.
func New(capacity int) *Engine {
	return &Engine{
		nodes:    make([]nodeState, 0, capacity),
		outgoing: make([][]arc, 0, capacity),
	}
}

// AddNode appends a node positioned at its lower bound and returns its id.
func (e *Engine) AddNode(n problem.Node) int {
	st := nodeState{
		position:     n.LB,
		ub:           n.UB,
		delayedAfter: n.Threshold,
		coeff:        n.Coeff,
	}
	e.objective += st.cost()
	e.nodes = append(e.nodes, st)
	e.outgoing = append(e.outgoing, nil)

	return len(e.nodes) - 1
}

// AddFixedEdge commits an edge that holds for the whole lifetime of the
// engine. It may only be used before any PushEdge; on failure the engine is
// unchanged and false is returned.
func (e *Engine) AddFixedEdge(edge problem.Edge) bool {
	if len(e.undo) != 0 || len(e.trail) != 0 || len(e.trailLim) != 0 {
		panic(fmt.Sprintf("longestpath: fixed edge %d→%d added at depth %d", edge.Src, edge.Tgt, len(e.undo)))
	}
	if _, ok := e.PushEdge(edge); !ok {
		return false
	}
	e.trail = e.trail[:0]
	e.trailLim = e.trailLim[:0]
	e.undo = e.undo[:0]

	return true
}

// PushEdge commits edge on top of the current state and propagates it.
//
// On success it returns, in propagation order, one BoundChange per node whose
// objective contribution grew. The slice is owned by the engine and is only
// valid until the next PushEdge or HypotheticalEdgeLB.
//
// On failure (positive cycle through edge.Src, or an upper bound exceeded)
// every effect of the push is undone and (nil, false) is returned.
func (e *Engine) PushEdge(edge problem.Edge) ([]BoundChange, bool) {
	e.checkNode(edge.Src)
	e.checkNode(edge.Tgt)

	e.outgoing[edge.Src] = append(e.outgoing[edge.Src], arc{tgt: edge.Tgt, weight: edge.Weight})
	e.undo = append(e.undo, edge)
	e.trailLim = append(e.trailLim, len(e.trail))
	e.changes = e.changes[:0]
	e.queue = append(e.queue[:0], edge.Src)

	for len(e.queue) > 0 {
		u := e.queue[len(e.queue)-1]
		e.queue = e.queue[:len(e.queue)-1]

		for _, a := range e.outgoing[u] {
			target := e.nodes[u].position + a.weight
			next := &e.nodes[a.tgt]
			if next.position >= target {
				continue
			}
			if a.tgt == edge.Src || target > next.ub {
				e.Pop()
				e.changes = e.changes[:0]
				return nil, false
			}

			e.trail = append(e.trail, trailEntry{node: a.tgt, position: next.position})
			before := next.cost()
			next.position = target
			delta := next.cost() - before
			if delta < 0 {
				panic(fmt.Sprintf("longestpath: negative objective delta %d at node %d", delta, a.tgt))
			}
			e.objective += delta
			if delta > 0 {
				e.changes = append(e.changes, BoundChange{Node: a.tgt, Delta: delta})
			}

			// Keep the worklist sorted by decreasing position; the tail
			// (next to be processed) holds the earliest node.
			e.queue = append(e.queue, a.tgt)
			for i := len(e.queue) - 1; i > 0 && e.nodes[e.queue[i]].position > e.nodes[e.queue[i-1]].position; i-- {
				e.queue[i], e.queue[i-1] = e.queue[i-1], e.queue[i]
			}
		}
	}

	return e.changes, true
}

// Pop undoes the most recent PushEdge and returns the ids of the restored
// nodes, most recently changed first. The slice is owned by the engine and
// is only valid until the next Pop.
func (e *Engine) Pop() []int {
	if len(e.undo) == 0 {
		panic("longestpath: Pop without a matching PushEdge")
	}
	edge := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	out := e.outgoing[edge.Src]
	if last := out[len(out)-1]; last.tgt != edge.Tgt || last.weight != edge.Weight {
		panic(fmt.Sprintf("longestpath: out-of-order Pop of %d→%d", edge.Src, edge.Tgt))
	}
	e.outgoing[edge.Src] = out[:len(out)-1]

	lim := e.trailLim[len(e.trailLim)-1]
	e.trailLim = e.trailLim[:len(e.trailLim)-1]

	e.restored = e.restored[:0]
	for i := len(e.trail) - 1; i >= lim; i-- {
		t := e.trail[i]
		n := &e.nodes[t.node]
		e.objective -= n.cost()
		n.position = t.position
		e.objective += n.cost()
		e.restored = append(e.restored, t.node)
	}
	e.trail = e.trail[:lim]

	return e.restored
}

// HypotheticalEdgeLB reports whether edge could be committed and which bound
// changes it would cause, leaving the engine exactly as it was. The returned
// slice follows the ownership rules of PushEdge.
func (e *Engine) HypotheticalEdgeLB(edge problem.Edge) ([]BoundChange, bool) {
	changes, ok := e.PushEdge(edge)
	if ok {
		e.Pop()
	}

	return changes, ok
}

// Checkpoint returns the current trail length, for use with UpdatedSince.
func (e *Engine) Checkpoint() int { return len(e.trail) }

// UpdatedSince returns the nodes whose position was logged after checkpoint
// cp, in logging order (a node may appear more than once).
func (e *Engine) UpdatedSince(cp int) []int {
	if cp < 0 || cp > len(e.trail) {
		panic(fmt.Sprintf("longestpath: checkpoint %d beyond trail length %d", cp, len(e.trail)))
	}
	out := make([]int, 0, len(e.trail)-cp)
	for _, t := range e.trail[cp:] {
		out = append(out, t.node)
	}

	return out
}

// Objective returns Σ coeff·max(0, position − threshold).
func (e *Engine) Objective() int { return e.objective }

// Position returns the earliest feasible time of node n.
func (e *Engine) Position(n int) int { return e.nodes[n].position }

// UB returns the upper bound of node n.
func (e *Engine) UB(n int) int { return e.nodes[n].ub }

// NumNodes returns the number of nodes added so far.
func (e *Engine) NumNodes() int { return len(e.nodes) }

// Depth returns the number of pushed (non-fixed) edges.
func (e *Engine) Depth() int { return len(e.undo) }

// TrailLen returns the number of trail entries; zero at the root.
func (e *Engine) TrailLen() int { return len(e.trail) }

// Positions returns a copy of all node positions.
func (e *Engine) Positions() []int {
	out := make([]int, len(e.nodes))
	for i := range e.nodes {
		out[i] = e.nodes[i].position
	}

	return out
}

// Pushed returns a copy of the pushed edges, outermost first.
func (e *Engine) Pushed() []problem.Edge {
	return append([]problem.Edge(nil), e.undo...)
}

func (e *Engine) checkNode(n int) {
	if n < 0 || n >= len(e.nodes) {
		panic(fmt.Sprintf("longestpath: node %d out of range [0, %d)", n, len(e.nodes)))
	}
}
