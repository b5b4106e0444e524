package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/disjunct/partition"
	"github.com/katalvlaran/disjunct/problem"
)

func TestBuild_DenseIDs(t *testing.T) {
	// Two chains {0,2,4} and {1,3}, plus the isolated node 5.
	fixed := []problem.Edge{
		{Src: 4, Tgt: 2, Weight: 1},
		{Src: 3, Tgt: 1, Weight: 1},
		{Src: 0, Tgt: 2, Weight: 1},
	}
	p := partition.Build(6, fixed)

	assert.Equal(t, 3, p.Count())
	assert.Equal(t, []int{0, 1, 0, 1, 0, 2}, p.IDs())
	assert.Equal(t, 2, p.Of(5))
}

func TestBuild_NoEdges(t *testing.T) {
	p := partition.Build(3, nil)
	assert.Equal(t, 3, p.Count())
	assert.Equal(t, []int{0, 1, 2}, p.IDs())
}

func TestBuild_LongChainAndSelfLoop(t *testing.T) {
	var fixed []problem.Edge
	for i := 0; i+1 < 50; i++ {
		fixed = append(fixed, problem.Edge{Src: i + 1, Tgt: i})
	}
	fixed = append(fixed, problem.Edge{Src: 7, Tgt: 7})
	p := partition.Build(51, fixed)
	assert.Equal(t, 2, p.Count())
	assert.Equal(t, 0, p.Of(49))
	assert.Equal(t, 1, p.Of(50))
}

func TestOutOfRangePanics(t *testing.T) {
	p := partition.Build(2, nil)
	assert.Panics(t, func() { p.Of(2) })
	assert.Panics(t, func() { p.Of(-1) })
	assert.Panics(t, func() { partition.Build(2, []problem.Edge{{Src: 0, Tgt: 5}}) })
}

func TestIDs_IsCopy(t *testing.T) {
	p := partition.Build(2, nil)
	ids := p.IDs()
	ids[0] = 42
	assert.Equal(t, 0, p.Of(0))
}
