package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// Recorder collects build metrics through domain.BuildHooks.
// It owns a private registry so that several recorders can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	builds     prometheus.Counter
	violations prometheus.Counter
	duration   prometheus.Histogram
	elements   *prometheus.GaugeVec
	edges      *prometheus.GaugeVec
	groups     prometheus.Gauge
}

// NewRecorder creates a Recorder with every meshtopo metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meshtopo_builds_total",
			Help: "Total number of successful topology builds",
		}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meshtopo_integrity_violations_total",
			Help: "Total number of mesh integrity violations found",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "meshtopo_build_duration_seconds",
			Help:    "Duration of topology builds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		elements: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "meshtopo_elements",
				Help: "Elements of the last built mesh by kind",
			},
			[]string{"kind"},
		),
		edges: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "meshtopo_edges",
				Help: "Edges of the last built mesh by class",
			},
			[]string{"class"},
		),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "meshtopo_boundary_groups",
			Help: "Boundary groups of the last built mesh",
		}),
	}
	r.registry.MustRegister(r.builds, r.violations, r.duration, r.elements, r.edges, r.groups)
	return r
}

// Hooks returns the callbacks to pass to the builder.
func (r *Recorder) Hooks() domain.BuildHooks {
	return domain.BuildHooks{
		OnBuilt: func(_ context.Context, e *domain.BuildEvent) {
			r.builds.Inc()
			r.duration.Observe(e.Duration.Seconds())

			s := e.Stats
			r.elements.WithLabelValues("vertex").Set(float64(s.Vertices))
			r.elements.WithLabelValues("triangle").Set(float64(s.Triangles))
			r.elements.WithLabelValues("line").Set(float64(s.Lines))
			r.elements.WithLabelValues("ignored").Set(float64(s.Ignored))

			r.edges.WithLabelValues("interior").Set(float64(s.InteriorEdges))
			r.edges.WithLabelValues("boundary").Set(float64(s.BoundaryEdges))
			r.edges.WithLabelValues("labeled").Set(float64(s.LabeledEdges))
			r.edges.WithLabelValues("unlabeled").Set(float64(s.UnlabeledEdges))

			r.groups.Set(float64(s.BoundaryGroups))
		},
		OnViolation: func(context.Context, *domain.IntegrityError) {
			r.violations.Inc()
		},
	}
}

// Gatherer exposes the registry, e.g. for tests or an embedding program's handler.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in the node_exporter textfile collector format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
