// Package disjunct solves disjunctive scheduling problems, such as
// job-shop scheduling, by branch and bound over a constraint graph whose
// edges come in mutually exclusive alternative sets.
//
// A problem is a set of time points (nodes) with release dates, deadlines
// and delay costs, plus precedence edges grouped into edge sets. A set of
// one edge is a fixed precedence; a larger set is a disjunction of which
// exactly one edge must hold. The objective is the weighted delay
//
//	Σ coeff · max(0, time − threshold)
//
// over all nodes, with every node starting as early as its constraints
// allow.
//
// Packages:
//
//	problem/      wire format, validation and schedule checks
//	longestpath/  incremental earliest-time propagation with exact undo
//	partition/    union-find grouping of nodes joined by fixed edges
//	wdg/          Pareto-pruned bound subproblem solved as a small MIP
//	world/        node evaluation: bounds and branching choice
//	bnb/          the branch-and-bound driver, statistics and metrics
//	jsplib/       JSPLIB job-shop reader, converter and generator
//	cmd/disjunct  the solve, convert and generate commands
//
// Quick example:
//
//	   job 0:  a ──3──▶ a'        one machine: a before b,
//	   job 1:  b ──2──▶ b'        or b before a
//
// Minimizing the sum of job ends puts the short job first: b at 0, a at 2,
// value 2 + 5 = 7.
//
//	res, err := bnb.Solve(ctx, g, bnb.WithTimeout(time.Minute))
package disjunct
