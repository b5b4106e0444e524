package problem

import "errors"

// Sentinel errors returned by decoding and validation.
var (
	// ErrNoNodes indicates a document without any node.
	ErrNoNodes = errors.New("problem: no nodes")

	// ErrNodeIndex indicates an edge endpoint outside the node range.
	ErrNodeIndex = errors.New("problem: edge endpoint out of range")

	// ErrNegativeCoeff indicates a node whose cost coefficient is negative.
	// Propagation only ever increases positions, so a negative coefficient
	// would make the incremental objective non-monotone.
	ErrNegativeCoeff = errors.New("problem: negative cost coefficient")

	// ErrDecode indicates a malformed JSON/YAML document.
	ErrDecode = errors.New("problem: cannot decode document")
)

// Unbounded is the conventional "no upper bound" value written by the
// converters; it fits the 32-bit integers used by the file format.
const Unbounded = 1<<31 - 1

// Node is one timed event of the schedule.
type Node struct {
	LB        int `json:"lb"`
	UB        int `json:"ub"`
	Coeff     int `json:"coeff"`
	Threshold int `json:"threshold"`
}

// Edge is the precedence constraint time(Tgt) ≥ time(Src) + Weight.
type Edge struct {
	Src    int `json:"src"`
	Tgt    int `json:"tgt"`
	Weight int `json:"weight"`
}

// DisjunctiveGraph is the problem document.
type DisjunctiveGraph struct {
	Nodes    []Node   `json:"nodes"`
	EdgeSets [][]Edge `json:"edge_sets"`
}

// Summary counts the parts of a DisjunctiveGraph; see (*DisjunctiveGraph).Summary.
type Summary struct {
	Nodes        int
	Fixed        int
	Disjunctions int
	Empty        int
}
