package file_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/internal/adapters/file"
)

func text(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := fmt.Fprint(w, s)
		return err
	}
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	list, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range list {
		names = append(names, e.Name())
	}
	return names
}

func TestPublish_WritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	geom := filepath.Join(dir, "out", "geometry.txt")
	topo := filepath.Join(dir, "out", "topology.txt")

	err := file.New().Publish(context.Background(),
		file.Output{Path: geom, Render: text("1 0 0\n")},
		file.Output{Path: topo, Render: text("1 2 10 -1\n")},
	)
	require.NoError(t, err)

	data, err := os.ReadFile(geom)
	require.NoError(t, err)
	assert.Equal(t, "1 0 0\n", string(data))
	data, err = os.ReadFile(topo)
	require.NoError(t, err)
	assert.Equal(t, "1 2 10 -1\n", string(data))

	assert.ElementsMatch(t, []string{"geometry.txt", "topology.txt"}, entries(t, filepath.Join(dir, "out")))
}

func TestPublish_FailedRenderLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	geom := filepath.Join(dir, "geometry.txt")
	topo := filepath.Join(dir, "topology.txt")
	boom := errors.New("boom")

	err := file.New().Publish(context.Background(),
		file.Output{Path: geom, Render: text("1 0 0\n")},
		file.Output{Path: topo, Render: func(w io.Writer) error {
			_, _ = fmt.Fprint(w, "partial")
			return boom
		}},
	)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, entries(t, dir), "no destination or temp file may survive")
}

func TestPublish_FailedRenderKeepsPreviousOutputs(t *testing.T) {
	dir := t.TempDir()
	geom := filepath.Join(dir, "geometry.txt")
	require.NoError(t, os.WriteFile(geom, []byte("old"), 0644))

	err := file.New().Publish(context.Background(),
		file.Output{Path: geom, Render: text("new")},
		file.Output{Path: filepath.Join(dir, "topology.txt"), Render: func(io.Writer) error { return errors.New("boom") }},
	)
	require.Error(t, err)

	data, err := os.ReadFile(geom)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestPublish_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, file.New().Publish(context.Background(), file.Output{Path: path, Render: text("new")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestPublish_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := file.New().Publish(ctx, file.Output{Path: filepath.Join(dir, "a.txt"), Render: text("a")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, entries(t, dir))
}

func TestPublish_InvalidOutputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	err := file.New().Publish(context.Background(), file.Output{Path: "", Render: text("a")})
	assert.Error(t, err)

	err = file.New().Publish(context.Background(),
		file.Output{Path: path, Render: text("a")},
		file.Output{Path: path, Render: text("b")},
	)
	assert.ErrorContains(t, err, "listed twice")
	assert.Empty(t, entries(t, dir))
}
