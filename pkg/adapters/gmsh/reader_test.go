package gmsh_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/pkg/adapters/gmsh"
	"github.com/aretw0/meshtopo/pkg/domain"
	contract "github.com/aretw0/meshtopo/pkg/ports/tests"
)

const meshV22 = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
2
1 5 "inlet"
2 9 "domain"
$EndPhysicalNames
$Nodes
3
1 0 0 0
2 1 0 0
3 0 1 0
$EndNodes
$Elements
4
1 15 2 0 1 1
20 1 2 5 1 1 2
21 1 2 0 2 1 3
10 2 2 9 1 1 2 3
$EndElements
`

const meshV41 = `$MeshFormat
4.1 0 8
$EndMeshFormat
$Entities
1 2 1 0
1 0 0 0 0
1 0 0 0 1 0 0 1 5 2 1 -2
2 0 0 0 0 1 0 2 5 7 2 2 -3
1 0 0 0 1 1 0 1 9 3 1 2 3
$EndEntities
$Nodes
1 3 1 3
2 1 0 3
1
2
3
0 0 0
1 0 0
0 1 0
$EndNodes
$Elements
3 3 10 21
1 1 1 1
20 1 2
1 2 1 1
21 1 3
2 1 2 1
10 1 2 3
$EndElements
$Periodic
0
$EndPeriodic
`

func createTempMshFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.msh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func triangleFixture(groups map[domain.ElementID][]domain.GroupID) *domain.RawMesh {
	return &domain.RawMesh{
		Vertices: map[domain.VertexID]domain.Coord{1: {0, 0}, 2: {1, 0}, 3: {0, 1}},
		Elements: []domain.Element{
			{ID: 20, Kind: domain.KindLine, Vertices: []domain.VertexID{1, 2}},
			{ID: 21, Kind: domain.KindLine, Vertices: []domain.VertexID{1, 3}},
			{ID: 10, Kind: domain.KindTriangle, Vertices: []domain.VertexID{1, 2, 3}},
		},
		LineGroups: groups,
	}
}

func TestGmshSource_ContractV22(t *testing.T) {
	want := triangleFixture(map[domain.ElementID][]domain.GroupID{20: {5}})
	want.Elements = append([]domain.Element{{ID: 1, Kind: domain.KindOther, Vertices: []domain.VertexID{1}}}, want.Elements...)

	contract.MeshSourceContractTest(t, gmsh.New(createTempMshFile(t, meshV22)), want)
}

func TestGmshSource_ContractV41(t *testing.T) {
	want := triangleFixture(map[domain.ElementID][]domain.GroupID{20: {5}, 21: {5, 7}})
	contract.MeshSourceContractTest(t, gmsh.New(createTempMshFile(t, meshV41)), want)
}

func TestParse_PhysicalNames(t *testing.T) {
	f, err := gmsh.Parse(strings.NewReader(meshV22))
	require.NoError(t, err)

	assert.Equal(t, "2.2", f.Version)
	require.Len(t, f.PhysicalNames, 2)
	assert.Equal(t, gmsh.PhysicalName{Dimension: 1, Tag: 5, Name: "inlet"}, f.PhysicalNames[0])
	assert.Equal(t, []domain.GroupID{9}, f.PhysicalGroups(10))
	assert.Nil(t, f.PhysicalGroups(21), "physical tag 0 means untagged")
}

func TestGmshSource_Keep3D(t *testing.T) {
	src := gmsh.New(createTempMshFile(t, meshV22))
	src.Keep3D = true

	session, err := src.Open(context.Background())
	require.NoError(t, err)
	defer session.Close()

	vertices, err := session.Vertices()
	require.NoError(t, err)
	assert.Equal(t, domain.Coord{1, 0, 0}, vertices[2])
}

func TestGmshSource_MissingFile(t *testing.T) {
	_, err := gmsh.New(filepath.Join(t.TempDir(), "absent.msh")).Open(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "missing format",
			content: "$Nodes\n1\n1 0 0 0\n$EndNodes\n",
			message: "$Nodes before $MeshFormat",
		},
		{
			name:    "binary",
			content: "$MeshFormat\n4.1 1 8\n$EndMeshFormat\n",
			message: "binary meshes are not supported",
		},
		{
			name:    "unsupported version",
			content: "$MeshFormat\n3.0 0 8\n$EndMeshFormat\n",
			message: "unsupported version 3.0",
		},
		{
			name:    "truncated nodes",
			content: "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n3\n1 0 0 0\n",
			message: "unexpected EOF",
		},
		{
			name:    "bad coordinate",
			content: "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n1\n1 zero 0 0\n$EndNodes\n",
			message: `invalid number "zero"`,
		},
		{
			name:    "duplicate node",
			content: "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n2\n1 0 0 0\n1 1 0 0\n$EndNodes\n",
			message: "duplicate node 1",
		},
		{
			name:    "negative node block size",
			content: "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n$Nodes\n1 1 1 1\n2 1 0 -1\n$EndNodes\n",
			message: "invalid block size -1",
		},
		{
			name:    "node block larger than section",
			content: "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n$Nodes\n1 1 1 1\n2 1 0 1000000000000\n$EndNodes\n",
			message: "invalid block size 1000000000000 (1 left in section)",
		},
		{
			name:    "element block larger than section",
			content: "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n$Elements\n1 1 1 1\n2 1 2 2\n1 1 2 3\n2 1 3 4\n$EndElements\n",
			message: "invalid block size 2 (1 left in section)",
		},
		{
			name:    "negative block count",
			content: "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n$Elements\n-1 0 0 0\n$EndElements\n",
			message: "negative count -1",
		},
		{
			name:    "negative node count",
			content: "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n-3\n$EndNodes\n",
			message: "negative count -3",
		},
		{
			name:    "negative element count",
			content: "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Elements\n-1\n$EndElements\n",
			message: "negative count -1",
		},
		{
			name:    "empty",
			content: "",
			message: "missing $MeshFormat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gmsh.Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, gmsh.ErrFormat)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestGmshSource_CorruptFileFailsOnRead(t *testing.T) {
	session, err := gmsh.New(createTempMshFile(t, "$MeshFormat\n2.2 0 8\n")).Open(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Vertices()
	assert.ErrorIs(t, err, gmsh.ErrFormat)
	_, err = session.Elements()
	assert.ErrorIs(t, err, gmsh.ErrFormat, "parse error is sticky")
}

func TestGmshSource_GroupNames(t *testing.T) {
	src := gmsh.New(createTempMshFile(t, meshV22))
	assert.Empty(t, src.GroupNames())

	session, err := src.Open(context.Background())
	require.NoError(t, err)
	_, err = session.Elements()
	require.NoError(t, err)
	require.NoError(t, session.Close())

	// Only curve groups name boundaries; "domain" is a surface group.
	assert.Equal(t, map[domain.GroupID]string{5: "inlet"}, src.GroupNames())
}
