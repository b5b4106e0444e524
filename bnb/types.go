package bnb

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

// Status is the outcome of a search.
type Status int

const (
	// Optimal means the search completed and Value is proven optimal.
	Optimal Status = iota

	// Infeasible means no schedule exists, detected either at load time or
	// by exhausting the tree.
	Infeasible

	// TimedOut means the time budget or context expired first. The
	// incumbent, if any, is reported but not proven optimal.
	TimedOut
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case TimedOut:
		return "timeout"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Stats accumulates search diagnostics.
type Stats struct {
	StatesGenerated int // World evaluations of children
	NodesGenerated  int // children kept in the tree
	NodesSolved     int // nodes navigated to and expanded
	MaxDepth        int
	SolutionDepth   int // depth of the incumbent, -1 without one
	RootBound       int
	BestBound       int // highest bound of an expanded node
	BestValue       int // incumbent value, problem.Unbounded without one
	Elapsed         time.Duration
}

// Result is the outcome of Solve.
type Result struct {
	Status Status

	// Found reports whether an incumbent exists.
	Found bool

	// Value is the objective of the incumbent.
	Value int

	// Schedule holds the earliest start time of every node under the
	// incumbent's decisions.
	Schedule []int

	// Decisions lists the disjunctive edges chosen on the path from the
	// root to the incumbent, in commit order.
	Decisions []problem.Edge

	Stats Stats
}

// Options configures Solve.
type Options struct {
	Settings world.Settings
	Timeout  time.Duration // negative means no limit
	Logger   logrus.FieldLogger
	Metrics  *Metrics // nil disables instrumentation
}

// NoTimeout disables the time budget.
const NoTimeout time.Duration = -1

// Option is a functional option for Solve.
type Option func(*Options)

// WithSettings selects the branching and bounding strategy.
func WithSettings(s world.Settings) Option {
	return func(o *Options) { o.Settings = s }
}

// WithTimeout sets a wall-clock budget; NoTimeout removes it. The budget is
// checked once per iteration after the root has been expanded, so at least
// one node is always solved, even with a zero budget.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithLogger routes search diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics records search counters into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// DefaultOptions returns the default strategy, no time limit and a silent
// logger.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return Options{
		Settings: world.DefaultSettings(),
		Timeout:  NoTimeout,
		Logger:   l,
	}
}
