package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docscan_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docscan_analysis_seconds",
		Help:    "Time spent on high-level analysis tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})

	FilesAnalyzedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscan_files_analyzed_total",
		Help: "Total number of pipeline runs by outcome.",
	}, []string{"result"})

	EntitiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscan_entities_total",
		Help: "Total number of extracted entities by kind and documentation state.",
	}, []string{"kind", "documented"})

	DocsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscan_docs_generated_total",
		Help: "Total number of synthesized docstrings by style.",
	}, []string{"style"})

	CheckerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docscan_checker_runs_total",
		Help: "Total number of convention checker invocations by result.",
	}, []string{"checker", "result"})

	ViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docscan_violations_total",
		Help: "Total number of convention violations reported by the checker.",
	})

	UnattributedViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docscan_unattributed_violations_total",
		Help: "Total number of violations whose line matched no entity.",
	})

	BatchCoverage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docscan_batch_coverage_percent",
		Help: "Aggregate documentation coverage of the most recent batch run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docscan_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
