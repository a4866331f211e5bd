package dsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/domain"
	contract "github.com/aretw0/meshtopo/pkg/ports/tests"
)

func TestBuilder_SingleTriangle(t *testing.T) {
	// 1. Build the mesh using DSL
	b := New().
		Vertex(1, 0, 0).
		Vertex(2, 1, 0).
		Vertex(3, 0, 1)

	b.Other(1, 1)
	b.Line(20, 1, 2).Groups(5, 7).
		Mesh().Triangle(10, 1, 2, 3)

	// 2. Compile to Source and check it against the port contract
	raw, err := b.Raw()
	require.NoError(t, err)
	assert.Equal(t, []domain.ElementID{1, 20, 10}, []domain.ElementID{raw.Elements[0].ID, raw.Elements[1].ID, raw.Elements[2].ID})

	src, err := b.Build()
	require.NoError(t, err)
	contract.MeshSourceContractTest(t, src, raw)

	// 3. Verify the built topology
	snapshot, err := topology.Snapshot(context.Background(), src)
	require.NoError(t, err)
	mesh, err := topology.NewBuilder().Build(context.Background(), snapshot)
	require.NoError(t, err)

	e, ok := mesh.Edge(2, 1)
	require.True(t, ok)
	require.NotNil(t, e.Line)
	assert.Equal(t, []domain.GroupID{5, 7}, e.Line.Groups)
	assert.Equal(t, []domain.ElementID{20}, mesh.Boundaries[5].Lines)
	assert.Zero(t, src.Leaked())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := New().Vertex(1, 0, 0).Vertex(1, 1, 1).Build()
	assert.ErrorContains(t, err, "vertex 1 defined twice")

	b := New().Vertex(1, 0, 0).Vertex(2, 1, 0).Vertex(3, 0, 1)
	b.Triangle(10, 1, 2, 3).Groups(4)
	_, err = b.Build()
	assert.ErrorContains(t, err, "only line elements carry physical groups")
}

func TestBuilder_LeavesIntegrityToTopology(t *testing.T) {
	b := New().Vertex(1, 0, 0).Vertex(2, 1, 0)
	b.Line(20, 1, 9)
	b.Line(20, 1, 2)

	raw, err := b.Raw()
	require.NoError(t, err)

	err = topology.NewBuilder().Validate(context.Background(), raw)
	assert.Len(t, domain.Violations(err), 2)
}
