// Package bnb is the branch-and-bound driver over a world.World.
//
// The driver owns an append-only search tree whose nodes are immutable
// arena entries linked to their parent by index. A single engine is moved
// between tree nodes by popping back to the lowest common ancestor and
// pushing the target's edges back down, so the work per move is
// proportional to the tree distance rather than the problem size.
//
// Node selection is a hybrid of depth-first and best-first search:
//   - after expanding a node its surviving children are sorted by bound;
//   - the best child is descended into when its bound does not exceed the
//     frontier minimum (the newest node wins ties);
//   - otherwise the frontier minimum is popped and the children join the
//     frontier.
//
// Search stops when the frontier is exhausted, when the selected target
// cannot beat the incumbent (optimality proven), or when the timeout or the
// context expires. A timed-out search still reports its incumbent.
//
// Usage:
//
//	res, err := bnb.Solve(ctx, g,
//	    bnb.WithSettings(world.DefaultSettings()),
//	    bnb.WithTimeout(30*time.Second),
//	)
//	if err != nil { /* malformed input */ }
//	if res.Found { fmt.Println(res.Value, res.Schedule) }
package bnb
