package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ejbctx_files_scanned_total",
		Help: "Total number of candidate Java source files yielded by the scanner.",
	})

	FileReadFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ejbctx_file_read_failures_total",
		Help: "Total number of source files skipped because they could not be read.",
	}, []string{"phase"})

	SymbolTableEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ejbctx_symbol_table_entries",
		Help: "Number of entries (simple and qualified) in the most recent symbol table.",
	})

	InterfacesFoundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ejbctx_interfaces_found_total",
		Help: "Total number of EJB interfaces classified, by category.",
	}, []string{"category"})

	BeanLinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ejbctx_bean_links_total",
		Help: "Bean linking outcomes by strategy (naming, implements, none).",
	}, []string{"strategy"})

	RelatedDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ejbctx_related_types_dropped_total",
		Help: "Related DTO/entity names left out of a Super-Context because no readable source was found.",
	})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ejbctx_phase_seconds",
		Help:    "Time spent in each analysis pipeline phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ejbctx_store_operations_total",
		Help: "Context store operations by kind and result.",
	}, []string{"operation", "result"})

	GenerationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ejbctx_generation_requests_total",
		Help: "Document generation requests by result.",
	}, []string{"result"})

	WatchEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ejbctx_watch_events_total",
		Help: "Raw file system events received by the watcher.",
	})

	RescansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ejbctx_watch_rescans_total",
		Help: "Full rescans triggered by file system changes.",
	})
)
