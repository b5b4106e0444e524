package world_test

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

const (
	inf    = problem.Unbounded
	noCost = math.MaxInt
)

// twoJobsOneMachine: job 0 runs 3 units (nodes 0→1), job 1 runs 2 units
// (nodes 2→3); both compete for one machine. Objective = sum of job ends.
func twoJobsOneMachine() *problem.DisjunctiveGraph {
	return &problem.DisjunctiveGraph{
		Nodes: []problem.Node{
			{UB: inf}, {UB: inf, Coeff: 1},
			{UB: inf}, {UB: inf, Coeff: 1},
		},
		EdgeSets: [][]problem.Edge{
			{{Src: 0, Tgt: 1, Weight: 3}},
			{{Src: 2, Tgt: 3, Weight: 2}},
			{{Src: 0, Tgt: 2, Weight: 3}, {Src: 2, Tgt: 0, Weight: 2}},
		},
	}
}

func mustWorld(t *testing.T, g *problem.DisjunctiveGraph, s world.Settings) *world.World {
	t.Helper()
	w, err := world.New(g, s)
	require.NoError(t, err)

	return w
}

// Scenario B: B→A would push A past its upper bound, so A→B is forced; once
// committed the node is terminal and its bound is the cost of that choice.
func TestMkState_ForcedEdge_ScenarioB(t *testing.T) {
	g := &problem.DisjunctiveGraph{
		Nodes: []problem.Node{{UB: 2}, {UB: inf, Coeff: 1}},
		EdgeSets: [][]problem.Edge{
			{{Src: 0, Tgt: 1, Weight: 3}, {Src: 1, Tgt: 0, Weight: 4}},
		},
	}
	w := mustWorld(t, g, world.DefaultSettings())

	root, ok := w.MkState(w.Bound(), noCost)
	require.True(t, ok)
	assert.Equal(t, 0, root.LB)
	assert.Equal(t, []problem.Edge{{Src: 0, Tgt: 1, Weight: 3}}, root.Branching)
	assert.False(t, root.Terminal())

	require.True(t, w.Push(root.Branching[0]))
	child, ok := w.MkState(root.LB, noCost)
	require.True(t, ok)
	assert.True(t, child.Terminal())
	assert.Equal(t, 3, child.LB)

	w.Pop()
	assert.Equal(t, []int{0, 0}, w.Schedule())
}

// Scenario C: with the WDG bound the root bound is never weaker.
func TestMkState_WDGTightensBound_ScenarioC(t *testing.T) {
	g := twoJobsOneMachine()

	plain := mustWorld(t, g, world.Settings{StrongBranching: true})
	require.Equal(t, 2, plain.NumPartitions())
	sPlain, ok := plain.MkState(plain.Bound(), noCost)
	require.True(t, ok)

	withWDG := mustWorld(t, g, world.Settings{StrongBranching: true, WDGBound: true})
	sWDG, ok := withWDG.MkState(withWDG.Bound(), noCost)
	require.True(t, ok)

	relaxed := mustWorld(t, g, world.Settings{StrongBranching: true, WDGBound: true, WDGRelaxed: true})
	sRelaxed, ok := relaxed.MkState(relaxed.Bound(), noCost)
	require.True(t, ok)

	assert.Equal(t, 5, sPlain.LB)
	assert.Equal(t, 7, sWDG.LB, "cheapest order pays 2 more in job 0's partition")
	assert.GreaterOrEqual(t, sWDG.LB, sPlain.LB)
	assert.GreaterOrEqual(t, sWDG.LB, sRelaxed.LB)
	assert.GreaterOrEqual(t, sRelaxed.LB, sPlain.LB)
	assert.Equal(t, []problem.Edge{{Src: 0, Tgt: 2, Weight: 3}, {Src: 2, Tgt: 0, Weight: 2}}, sWDG.Branching)
}

func TestMkState_PrunedByIncumbent(t *testing.T) {
	w := mustWorld(t, twoJobsOneMachine(), world.DefaultSettings())

	// Every alternative reaches the incumbent and so does the parent bound.
	_, ok := w.MkState(w.Bound(), 5)
	assert.False(t, ok)

	// Both orders cost at least 7: the node is dead below an incumbent of 7.
	st, ok := w.MkState(w.Bound(), 7)
	require.True(t, ok)
	assert.True(t, st.Dead())
	assert.Equal(t, 5, st.LB)

	// With an incumbent of 8 only the job-1-first order survives: forced.
	st, ok = w.MkState(w.Bound(), 8)
	require.True(t, ok)
	assert.Equal(t, 5, st.LB)
	assert.Equal(t, []problem.Edge{{Src: 2, Tgt: 0, Weight: 2}}, st.Branching)

	// Both orders survive an incumbent of 9 and the WDG bound applies.
	st, ok = w.MkState(w.Bound(), 9)
	require.True(t, ok)
	assert.Equal(t, 7, st.LB)
	assert.Len(t, st.Branching, 2)
}

func TestMkState_BranchingHeuristics(t *testing.T) {
	// Disjunction 1 is early and cheap, disjunction 2 late and expensive.
	g := &problem.DisjunctiveGraph{
		Nodes: []problem.Node{
			{UB: inf, Coeff: 1}, {UB: inf, Coeff: 1},
			{LB: 10, UB: inf, Coeff: 5}, {LB: 10, UB: inf, Coeff: 5},
		},
		EdgeSets: [][]problem.Edge{
			{{Src: 0, Tgt: 1, Weight: 1}, {Src: 1, Tgt: 0, Weight: 1}},
			{{Src: 2, Tgt: 3, Weight: 2}, {Src: 3, Tgt: 2, Weight: 2}},
		},
	}

	chrono := mustWorld(t, g, world.Settings{})
	st, ok := chrono.MkState(chrono.Bound(), noCost)
	require.True(t, ok)
	assert.Equal(t, g.EdgeSets[0], st.Branching)

	strong := mustWorld(t, g, world.Settings{StrongBranching: true})
	st, ok = strong.MkState(strong.Bound(), noCost)
	require.True(t, ok)
	assert.Equal(t, g.EdgeSets[1], st.Branching)
	assert.Equal(t, 100, st.LB)
}

func TestMkState_SatisfiedDisjunctionIsSkipped(t *testing.T) {
	g := &problem.DisjunctiveGraph{
		Nodes: []problem.Node{{UB: inf}, {LB: 5, UB: inf, Coeff: 1}},
		EdgeSets: [][]problem.Edge{
			{{Src: 0, Tgt: 1, Weight: 2}, {Src: 1, Tgt: 0, Weight: 1}},
		},
	}
	w := mustWorld(t, g, world.DefaultSettings())
	st, ok := w.MkState(w.Bound(), noCost)
	require.True(t, ok)
	assert.True(t, st.Terminal())
	assert.Equal(t, 5, st.LB)
}

func TestMkState_LeavesEngineUntouched(t *testing.T) {
	w := mustWorld(t, twoJobsOneMachine(), world.DefaultSettings())
	before := w.Schedule()
	_, _ = w.MkState(w.Bound(), noCost)
	assert.Equal(t, before, w.Schedule())
	assert.Equal(t, 5, w.Bound())
	assert.Equal(t, 0, w.Depth())
}

func TestNew_Errors(t *testing.T) {
	empty := twoJobsOneMachine()
	empty.EdgeSets = append(empty.EdgeSets, []problem.Edge{})
	_, err := world.New(empty, world.DefaultSettings())
	assert.Equal(t, world.ErrInfeasible, errors.Cause(err))

	tight := twoJobsOneMachine()
	tight.Nodes[1].UB = 2
	_, err = world.New(tight, world.DefaultSettings())
	assert.Equal(t, world.ErrInfeasible, errors.Cause(err))

	window := twoJobsOneMachine()
	window.Nodes[0].LB, window.Nodes[0].UB = 4, 3
	_, err = world.New(window, world.DefaultSettings())
	assert.Equal(t, world.ErrInfeasible, errors.Cause(err))

	_, err = world.New(twoJobsOneMachine(), world.Settings{WDGRelaxed: true})
	assert.Equal(t, world.ErrInvalidSettings, errors.Cause(err))

	bad := twoJobsOneMachine()
	bad.EdgeSets[0][0].Tgt = 9
	_, err = world.New(bad, world.DefaultSettings())
	assert.Equal(t, problem.ErrNodeIndex, errors.Cause(err))
}

func TestSettings(t *testing.T) {
	assert.NoError(t, world.DefaultSettings().Validate())
	assert.Error(t, world.Settings{WDGRelaxed: true}.Validate())

	assert.Equal(t, "chrono", world.Settings{}.String())
	assert.Equal(t, "strong+wdg", world.DefaultSettings().String())
	assert.Equal(t, "strong+wdg-relaxed", world.Settings{StrongBranching: true, WDGBound: true, WDGRelaxed: true}.String())
}

func TestMkState_ParentBoundIsFloor(t *testing.T) {
	w := mustWorld(t, twoJobsOneMachine(), world.DefaultSettings())
	st, ok := w.MkState(9, noCost)
	require.True(t, ok)
	assert.Equal(t, 9, st.LB)

	_, ok = w.MkState(9, 9)
	assert.False(t, ok)
}

func TestWorld_Accessors(t *testing.T) {
	s := world.Settings{StrongBranching: true}
	w := mustWorld(t, twoJobsOneMachine(), s)
	assert.Equal(t, s, w.Settings())
	assert.Equal(t, 1, w.NumOpen())
	assert.Equal(t, 2, w.NumPartitions())
	assert.Equal(t, 0, w.Depth())
}

// An expired deadline still yields a bound between the plain and exact ones.
func TestMkState_PastDeadline(t *testing.T) {
	w := mustWorld(t, twoJobsOneMachine(), world.DefaultSettings())
	w.SetDeadline(time.Now().Add(-time.Minute))
	st, ok := w.MkState(w.Bound(), noCost)
	require.True(t, ok)
	assert.GreaterOrEqual(t, st.LB, 5)
	assert.LessOrEqual(t, st.LB, 7)

	w.SetDeadline(time.Time{})
	st, ok = w.MkState(w.Bound(), noCost)
	require.True(t, ok)
	assert.Equal(t, 7, st.LB)
}
