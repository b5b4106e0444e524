// Package problem defines the immutable input of a disjunctive scheduling
// problem: timed nodes with linear cost coefficients, and edge sets that are
// either fixed precedence constraints or open disjunctions.
//
// Overview:
//
//   - A Node carries an admissible time window [LB, UB] and a cost Coeff that
//     is incurred per time unit past Threshold.
//   - An Edge (Src, Tgt, Weight) reads "time(Tgt) ≥ time(Src) + Weight" once
//     committed.
//   - An edge set of length 1 is a fixed edge, of length ≥ 2 an open
//     disjunction (exactly one alternative must eventually hold), and of
//     length 0 makes the whole problem infeasible.
//
// Documents are read as JSON or YAML with identical keys:
//
//	{"nodes": [{"lb":0,"ub":100,"coeff":1,"threshold":0}],
//	 "edge_sets": [[{"src":0,"tgt":1,"weight":5}]]}
//
// Errors (sentinel, wrapped with context):
//
//   - ErrNoNodes       if the document declares no nodes.
//   - ErrNodeIndex     if an edge refers to a node outside [0, len(Nodes)).
//   - ErrNegativeCoeff if a node has a negative cost coefficient.
//   - ErrDecode        if the document cannot be decoded.
package problem
