package longestpath

// BoundChange is the objective growth attributed to a single node during
// one PushEdge.
type BoundChange struct {
	Node  int
	Delta int
}

// nodeState is the mutable per-node propagation state.
type nodeState struct {
	position     int
	ub           int
	delayedAfter int
	coeff        int
}

// cost is the node's contribution to the objective at its current position.
func (n *nodeState) cost() int {
	if d := n.position - n.delayedAfter; d > 0 {
		return n.coeff * d
	}

	return 0
}

// arc is an outgoing adjacency entry.
type arc struct {
	tgt    int
	weight int
}

// trailEntry remembers the position a node had before a push moved it.
type trailEntry struct {
	node     int
	position int
}
