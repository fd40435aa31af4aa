// Package telemetry registers the prometheus counters and histograms the
// rest of the module increments: block store puts/gets, XOR pipeline
// throughput, quorum seal/unseal latency. Registration happens against a
// package-level registry so tests can assert on counter values directly;
// no network-exposed /metrics endpoint is wired here, since scraping is a
// network surface outside this module's scope.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Registry is the collector registry every metric below is registered
// against. CLI commands that want a scrape endpoint can mount it behind
// promhttp.HandlerFor themselves; this package never listens on a socket.
var Registry = prometheus.NewRegistry()

var (
	// StorePuts counts successful Store.SetData calls, labeled by block size.
	StorePuts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brightchain_store_puts_total",
		Help: "Number of blocks successfully persisted to the block store.",
	}, []string{"block_size"})

	// StoreGets counts successful Store.GetData calls, labeled by block size.
	StoreGets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brightchain_store_gets_total",
		Help: "Number of blocks successfully read from the block store.",
	}, []string{"block_size"})

	// StoreErrors counts failed store operations, labeled by operation and
	// the sentinel error reason.
	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brightchain_store_errors_total",
		Help: "Number of block store operations that returned an error.",
	}, []string{"operation", "reason"})

	// XorBytesProcessed tracks throughput of the XOR pipeline.
	XorBytesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brightchain_xor_bytes_total",
		Help: "Total bytes streamed through the XOR pipeline.",
	})

	// XorDuration measures how long one XorPipeline call takes.
	XorDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brightchain_xor_duration_seconds",
		Help:    "Duration of a single XOR pipeline combine/decombine call.",
		Buckets: prometheus.DefBuckets,
	})

	// QuorumSealDuration measures Seal() latency.
	QuorumSealDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brightchain_quorum_seal_duration_seconds",
		Help:    "Duration of a quorum Seal call.",
		Buckets: prometheus.DefBuckets,
	})

	// QuorumUnsealDuration measures Unseal() latency.
	QuorumUnsealDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brightchain_quorum_unseal_duration_seconds",
		Help:    "Duration of a quorum Unseal call.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	Registry.MustRegister(
		StorePuts,
		StoreGets,
		StoreErrors,
		XorBytesProcessed,
		XorDuration,
		QuorumSealDuration,
		QuorumUnsealDuration,
	)
}
