package topology_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/adapters/memory"
	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
)

func TestSnapshot_ReleasesSession(t *testing.T) {
	src := memory.NewSource(square())

	raw, err := topology.Snapshot(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 0, src.Leaked())
	assert.Len(t, raw.Vertices, 4)
	assert.Len(t, raw.Elements, 7)
	assert.Equal(t, []domain.GroupID{2, 7}, raw.LineGroups[23])
}

func TestSnapshot_ReleasesSessionOnError(t *testing.T) {
	src := memory.NewSource(square())
	src.ElementsErr = errors.New("truncated element block")

	raw, err := topology.Snapshot(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, raw)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "truncated element block")
	assert.Equal(t, 0, src.Leaked())
}

type failingOpener struct{ err error }

func (f failingOpener) Open(context.Context) (ports.MeshSession, error) { return nil, f.err }

func TestSnapshot_OpenFailure(t *testing.T) {
	_, err := topology.Snapshot(context.Background(), failingOpener{err: errors.New("no such file")})
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	_, err = topology.Snapshot(context.Background(), failingOpener{err: context.Canceled})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}
