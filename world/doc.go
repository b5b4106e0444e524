// Package world evaluates search-tree nodes of the disjunctive
// branch-and-bound: given the committed state of the propagation engine it
// decides which open disjunctions remain, which alternatives are still
// affordable, what to branch on next, and what lower bound the node has.
//
// A World owns one longestpath.Engine, the static partitioning of the problem
// and one wdg.Solver. The branch-and-bound driver moves it between tree
// nodes with Push and Pop and asks for node evaluations with MkState.
//
// Bounds come from three places:
//
//   - the realized objective of the engine (propagation alone);
//   - forced-edge detection: a disjunction with fewer than two affordable
//     alternatives short-circuits the scan;
//   - the WDG subproblem over all remaining open disjunctions (optional).
//
// Branching heuristics (Settings.StrongBranching):
//
//   - strong:        score = 5·min(Δ) + max(Δ) over the alternatives' bound growth;
//   - chronological: score = −(earliest endpoint time) of the disjunction.
//
// The disjunction with the highest score is branched on; ties keep the
// first one met.
package world
