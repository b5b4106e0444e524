// Package wdg computes the weighted-disjunctive-graph (WDG) lower bound: the
// extra cost that still-open binary disjunctions will unavoidably add, per
// partition of the problem.
//
// Model:
//
//   - Each open disjunction contributes alternative-pairs ((P1,c1),(P2,c2)):
//     choosing the first alternative costs at least c1 in partition P1,
//     choosing the second costs at least c2 in partition P2.
//   - Pairs sharing the unordered key (P1,P2) are kept on a Pareto frontier;
//     a pair no larger than another on both sides is redundant and dropped.
//   - Solve minimises Σ cost[P] subject to
//     cost[P1] ≥ c1·s and cost[P2] ≥ c2·(1−s), with s ∈ {0,1} per pair
//     (or s ∈ [0,1] in relaxed mode), cost[P] ≥ 0.
//
// Any resolution of the disjunctions pays at least one side of every pair,
// and costs incurred in the same partition overlap rather than add up, so the
// optimum is a valid lower bound. Dropping a dominated pair never changes it:
// the dominating pair's selection satisfies the dominated pair's constraints.
//
// Eliminating s, a cost vector serves a pair iff cost[P1] ≥ c1 or
// cost[P2] ≥ c2, so the exact program is a covering problem over per-partition
// levels, and its LP relaxation is min Σ cost s.t.
// cost[P1]/c1 + cost[P2]/c2 ≥ 1 per pair.
//
// Backend: the relaxation is solved in dual form with gonum's simplex
// (gonum.org/v1/gonum/optimize/convex/lp), one row per partition. The exact
// bound comes from a depth-first branch-and-bound that raises one side of
// an uncovered pair per branch, seeded with a greedy cover and pruned on the
// ceiling of the LP bound. It is capped by a node limit and an optional
// deadline; a capped solve returns the smallest bound of the subtrees it
// left open.
package wdg
