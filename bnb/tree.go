package bnb

import (
	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

const noParent int32 = -1

// treeNode is an immutable search-tree entry. edge is the decision that
// leads from parent to this node.
type treeNode struct {
	state  world.State
	depth  int32
	parent int32
	edge   problem.Edge
}

// tree is an append-only arena of search nodes addressed by id.
type tree struct {
	nodes []treeNode
	path  []int32 // scratch for navigate
}

func (t *tree) add(n treeNode) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// navigate moves w from node cur to node target and returns target.
//
// The deeper side is walked up until both meet at the common ancestor;
// every step up on the current side is a Pop, every target-side node is
// buffered and pushed afterwards. A failing Push means the arena and the
// engine disagree, which is fatal.
func (t *tree) navigate(w *world.World, cur, target int32) int32 {
	t.path = t.path[:0]
	up := target
	for cur != up {
		if t.nodes[up].depth > t.nodes[cur].depth {
			t.path = append(t.path, up)
			up = t.nodes[up].parent
		} else {
			w.Pop()
			cur = t.nodes[cur].parent
		}
	}
	for i := len(t.path) - 1; i >= 0; i-- {
		n := &t.nodes[t.path[i]]
		if !w.Push(n.edge) {
			panic("bnb: replaying a tree edge failed; engine out of sync with search tree")
		}
	}

	return target
}

// decisions returns the edges from the root to id in commit order.
func (t *tree) decisions(id int32) []problem.Edge {
	out := make([]problem.Edge, t.nodes[id].depth)
	for n := &t.nodes[id]; n.parent != noParent; n = &t.nodes[n.parent] {
		out[n.depth-1] = n.edge
	}

	return out
}
