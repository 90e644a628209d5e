package scf

import "github.com/prometheus/client_golang/prometheus"

// Stats is an optional prometheus.Collector exposing a filter's counters.
// Counting starts at the first call to Filter.Stats; events before that
// call (including the first filter appended by New) are not counted. It is
// never registered by the library itself — callers that
// want these metrics call Filter.Stats() and register the result with
// their own prometheus.Registerer, the same opt-in posture the teacher's
// storage engine takes with its own Options.ReportStats flag, just pushed
// one level further out since this is a library, not an embedded service.
type Stats struct {
	inserts     prometheus.Counter
	insertsFull prometheus.Counter
	grows       prometheus.Counter
	shrinks     prometheus.Counter
}

func newStats(name string) *Stats {
	labels := prometheus.Labels{"name": name}
	return &Stats{
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "scf_inserts_total",
			Help:        "Number of items newly stored by Insert.",
			ConstLabels: labels,
		}),
		insertsFull: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "scf_insert_full_total",
			Help:        "Number of times the active filter refused an insert and triggered a grow.",
			ConstLabels: labels,
		}),
		grows: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "scf_grows_total",
			Help:        "Number of cuckoo filters appended to the stack.",
			ConstLabels: labels,
		}),
		shrinks: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "scf_shrinks_total",
			Help:        "Number of ShrinkToFit calls that rebuilt the stack.",
			ConstLabels: labels,
		}),
	}
}

// Describe implements prometheus.Collector.
func (s *Stats) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range s.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (s *Stats) Collect(ch chan<- prometheus.Metric) {
	for _, c := range s.collectors() {
		c.Collect(ch)
	}
}

func (s *Stats) collectors() []prometheus.Collector {
	return []prometheus.Collector{s.inserts, s.insertsFull, s.grows, s.shrinks}
}

// Stats returns a prometheus.Collector tracking this filter's counters from
// the first call onward. Each call returns the same collector instance; register it at
// most once.
func (flt *Filter) Stats() *Stats {
	if flt.stats == nil {
		flt.stats = newStats(flt.opts.Name)
	}
	return flt.stats
}
