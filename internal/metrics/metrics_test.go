package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/internal/metrics"
	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/domain"
)

func single() *domain.RawMesh {
	return &domain.RawMesh{
		Vertices: map[domain.VertexID]domain.Coord{1: {0, 0}, 2: {1, 0}, 3: {0, 1}},
		Elements: []domain.Element{
			{ID: 10, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 2, 3}},
			{ID: 20, Kind: domain.KindLine, Vertices: []domain.VertexID{1, 2}},
			{ID: 30, Kind: domain.KindOther, Vertices: []domain.VertexID{1}},
		},
		LineGroups: map[domain.ElementID][]domain.GroupID{20: {5}},
	}
}

func TestRecorder_BuildHooks(t *testing.T) {
	rec := metrics.NewRecorder()
	b := topology.NewBuilder(topology.WithBuildHooks(rec.Hooks()))

	_, err := b.Build(context.Background(), single())
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(rec.Gatherer(), "meshtopo_builds_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += "/" + l.GetValue()
			}
			switch {
			case m.GetGauge() != nil:
				values[name] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, values["meshtopo_builds_total"])
	assert.Equal(t, 3.0, values["meshtopo_elements/vertex"])
	assert.Equal(t, 1.0, values["meshtopo_elements/triangle"])
	assert.Equal(t, 1.0, values["meshtopo_elements/ignored"])
	assert.Equal(t, 3.0, values["meshtopo_edges/boundary"])
	assert.Equal(t, 1.0, values["meshtopo_edges/labeled"])
	assert.Equal(t, 2.0, values["meshtopo_edges/unlabeled"])
	assert.Equal(t, 1.0, values["meshtopo_boundary_groups"])
}

func TestRecorder_CountsViolations(t *testing.T) {
	rec := metrics.NewRecorder()
	raw := single()
	raw.Elements = append(raw.Elements,
		domain.Element{ID: 11, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 2, 9}},
		domain.Element{ID: 12, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 1, 2}},
	)

	err := topology.NewBuilder(topology.WithBuildHooks(rec.Hooks())).Validate(context.Background(), raw)
	require.Error(t, err)

	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "meshtopo_integrity_violations_total" {
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue())
			return
		}
	}
	t.Fatal("violations counter not gathered")
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.Hooks().OnBuilt(context.Background(), &domain.BuildEvent{
		Timestamp: time.Now(),
		Duration:  5 * time.Millisecond,
		Stats:     domain.BuildStats{Triangles: 4, BoundaryGroups: 2},
	})

	path := filepath.Join(t.TempDir(), "meshtopo.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `meshtopo_elements{kind="triangle"} 4`)
	assert.Contains(t, string(data), "meshtopo_boundary_groups 2")
	assert.Contains(t, string(data), "meshtopo_build_duration_seconds_count 1")
}
