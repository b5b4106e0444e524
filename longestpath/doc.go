// Package longestpath maintains earliest feasible times over a growing set
// of precedence edges, with exact LIFO rollback.
//
// The Engine is the hot loop of the branch-and-bound search. Every committed
// edge (Src, Tgt, Weight) enforces position[Tgt] ≥ position[Src] + Weight; the
// engine relaxes positions forward (Bellman-Ford style, over a worklist) and
// keeps the weighted objective
//
//	Σ coeff·max(0, position − threshold)
//
// up to date incrementally.
//
// Undo discipline:
//
//   - Every PushEdge records one checkpoint (current trail length) and logs
//     (node, previous position) for each node it moves.
//   - Pop restores exactly the positions logged since the last checkpoint.
//   - Pop must mirror PushEdge in strict LIFO order. Popping with nothing
//     pushed, or adding a fixed edge once search edges exist, panics: these
//     are programming errors, not runtime conditions.
//
// Failure modes of PushEdge (the edge is rolled back, the call returns false):
//
//   - a positive cycle through the new edge's source;
//   - a node pushed past its upper bound.
//
// Complexity: O(k log k)-ish per push in practice, where k is the number of
// nodes whose position changes; the worklist is insertion-sorted so nodes
// with smaller positions settle first. Pop is O(k).
package longestpath
