// Package jsplib reads job-shop instances in the JSPLIB text format and
// turns them into disjunctive graphs.
//
// Text format: '#' lines are comments, the first data line holds the job
// and machine counts, and each following line lists one job as
// "machine duration" pairs in processing order.
//
// Conversion: every operation becomes a node with a fixed edge to the next
// node of its job (weight = duration), every job ends in a finishing node
// with cost coefficient 1, and every pair of operations sharing a machine
// becomes a binary disjunction. The objective is therefore the total
// completion time.
//
// The package also carries the JSPLIB instance index (instances.json) and
// a seeded random generator for synthetic shops.
package jsplib
