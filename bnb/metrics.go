package bnb

import (
	"github.com/prometheus/client_golang/prometheus"
)

const boundLabel = "kind"

// Metrics holds the Prometheus collectors updated by Solve. One Metrics may
// be shared by concurrent searches.
type Metrics struct {
	nodesSolved     prometheus.Counter
	nodesGenerated  prometheus.Counter
	statesGenerated prometheus.Counter
	incumbents      prometheus.Counter
	duration        prometheus.Histogram
	lastBound       *prometheus.GaugeVec
}

// NewMetrics creates the search collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodesSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disjunct_nodes_solved_total",
			Help: "Search-tree nodes navigated to and expanded",
		}),
		nodesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disjunct_nodes_generated_total",
			Help: "Search-tree nodes kept after evaluation",
		}),
		statesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disjunct_states_generated_total",
			Help: "Child evaluations performed",
		}),
		incumbents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disjunct_incumbents_total",
			Help: "Improving solutions found",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "disjunct_search_duration_seconds",
			Help:    "Wall-clock time of complete searches",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		lastBound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "disjunct_last_bound",
			Help: "Bounds reported by the most recent search (root, best, value)",
		}, []string{boundLabel}),
	}
	if reg != nil {
		reg.MustRegister(
			m.nodesSolved,
			m.nodesGenerated,
			m.statesGenerated,
			m.incumbents,
			m.duration,
			m.lastBound,
		)
	}

	return m
}

// observe folds the final statistics of one search into m.
func (m *Metrics) observe(st Stats, found bool) {
	if m == nil {
		return
	}
	m.nodesSolved.Add(float64(st.NodesSolved))
	m.nodesGenerated.Add(float64(st.NodesGenerated))
	m.statesGenerated.Add(float64(st.StatesGenerated))
	m.duration.Observe(st.Elapsed.Seconds())
	m.lastBound.WithLabelValues("root").Set(float64(st.RootBound))
	m.lastBound.WithLabelValues("best").Set(float64(st.BestBound))
	if found {
		m.lastBound.WithLabelValues("value").Set(float64(st.BestValue))
	}
}

func (m *Metrics) incumbent() {
	if m == nil {
		return
	}
	m.incumbents.Inc()
}
