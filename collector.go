package checkpoint

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const labelStreamName = "stream_name"

var (
	counterCheckpointsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "net",
		Subsystem: "kinesis",
		Name:      "reader_checkpoints_generated_count_total",
		Help:      "Number of reader checkpoints that have been generated for the stream.",
	}, []string{
		labelStreamName,
	})

	counterShardsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "net",
		Subsystem: "kinesis",
		Name:      "shards_resolved_count_total",
		Help:      "Number of shard checkpoints resolved across all generated reader checkpoints for the stream.",
	}, []string{
		labelStreamName,
	})

	counterTopologyErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "net",
		Subsystem: "kinesis",
		Name:      "topology_errors_count_total",
		Help:      "Number of failed attempts to enumerate the shard topology of the stream.",
	}, []string{
		labelStreamName,
	})
)

// registerCollectors is safe to call once per registry; generators sharing a
// registry register the same collectors.
func registerCollectors(registry prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		counterCheckpointsGenerated,
		counterShardsResolved,
		counterTopologyErrors,
	} {
		if err := registry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}
