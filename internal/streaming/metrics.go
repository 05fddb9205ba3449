package streaming

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "voxel"

// Metrics are the streaming counters exported to Prometheus.
type Metrics struct {
	chunksCreated   prometheus.Counter
	chunksEvicted   prometheus.Counter
	buildsCompleted prometheus.Counter
	buildsDiscarded prometheus.Counter
	uploads         prometheus.Counter
	uploadErrors    prometheus.Counter
	rebuilds        prometheus.Counter
	buildDuration   prometheus.Histogram
	meshVertices    prometheus.Histogram
	activeChunks    prometheus.Gauge
	readyChunks     prometheus.Gauge
}

// NewMetrics creates the streaming metrics and registers them on reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := newMetrics()
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register streaming metrics: %w", err)
		}
	}
	return m, nil
}

// newMetrics creates unregistered metrics.
func newMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "streaming",
			Name:      name,
			Help:      help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "streaming",
			Name:      name,
			Help:      help,
		})
	}

	return &Metrics{
		chunksCreated:   counter("chunks_created_total", "Chunks added to the active window."),
		chunksEvicted:   counter("chunks_evicted_total", "Chunks destroyed after leaving the active window."),
		buildsCompleted: counter("builds_completed_total", "Background builds that published a mesh."),
		buildsDiscarded: counter("builds_discarded_total", "Background builds dropped because their chunk was destroyed."),
		uploads:         counter("uploads_total", "Meshes handed to the renderer."),
		uploadErrors:    counter("upload_errors_total", "Failed mesh uploads."),
		rebuilds:        counter("rebuilds_total", "Full world rebuilds after a reload or settings change."),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "streaming",
			Name:      "build_duration_seconds",
			Help:      "Time to generate and mesh one chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		meshVertices: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "streaming",
			Name:      "mesh_vertices",
			Help:      "Vertices per built chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(256, 2, 10),
		}),
		activeChunks: gauge("active_chunks", "Chunks in the active window."),
		readyChunks:  gauge("ready_chunks", "Active chunks whose mesh is built."),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.chunksCreated,
		m.chunksEvicted,
		m.buildsCompleted,
		m.buildsDiscarded,
		m.uploads,
		m.uploadErrors,
		m.rebuilds,
		m.buildDuration,
		m.meshVertices,
		m.activeChunks,
		m.readyChunks,
	}
}
