package tests

import (
	"context"
	"testing"

	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
)

// MeshSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.MeshOpener.
// want holds the data the opener is expected to yield.
func MeshSourceContractTest(t *testing.T, opener ports.MeshOpener, want *domain.RawMesh) {
	t.Helper()

	open := func(t *testing.T) ports.MeshSession {
		t.Helper()
		session, err := opener.Open(context.Background())
		if err != nil {
			t.Fatalf("unexpected error opening source: %v", err)
		}
		t.Cleanup(func() { _ = session.Close() })
		return session
	}

	// 1. Vertices
	t.Run("Vertices", func(t *testing.T) {
		session := open(t)
		got, err := session.Vertices()
		if err != nil {
			t.Fatalf("unexpected error reading vertices: %v", err)
		}
		if len(got) != len(want.Vertices) {
			t.Fatalf("expected %d vertices, got %d", len(want.Vertices), len(got))
		}
		for id, coord := range want.Vertices {
			c, ok := got[id]
			if !ok {
				t.Errorf("vertex %d missing", id)
				continue
			}
			if len(c) != len(coord) {
				t.Errorf("vertex %d: expected %d components, got %d", id, len(coord), len(c))
				continue
			}
			for i := range coord {
				if c[i] != coord[i] {
					t.Errorf("vertex %d component %d: got %v, want %v", id, i, c[i], coord[i])
				}
			}
		}
	})

	// 2. Elements keep source order and kind
	t.Run("Elements", func(t *testing.T) {
		session := open(t)
		got, err := session.Elements()
		if err != nil {
			t.Fatalf("unexpected error reading elements: %v", err)
		}
		if len(got) != len(want.Elements) {
			t.Fatalf("expected %d elements, got %d", len(want.Elements), len(got))
		}
		for i, el := range want.Elements {
			if got[i].ID != el.ID || got[i].Kind != el.Kind {
				t.Errorf("element %d: got %d/%s, want %d/%s", i, got[i].ID, got[i].Kind, el.ID, el.Kind)
			}
			if len(got[i].Vertices) != len(el.Vertices) {
				t.Errorf("element %d: got %d vertices, want %d", el.ID, len(got[i].Vertices), len(el.Vertices))
			}
		}
	})

	// 3. Physical groups of every line element
	t.Run("PhysicalGroupsForLine", func(t *testing.T) {
		session := open(t)
		for _, el := range want.Elements {
			if el.Kind != domain.KindLine {
				continue
			}
			got, err := session.PhysicalGroupsForLine(el.ID)
			if err != nil {
				t.Fatalf("unexpected error reading groups of line %d: %v", el.ID, err)
			}
			expected := want.LineGroups[el.ID]
			if len(got) != len(expected) {
				t.Errorf("line %d: got groups %v, want %v", el.ID, got, expected)
				continue
			}
			for i := range expected {
				if got[i] != expected[i] {
					t.Errorf("line %d: got groups %v, want %v", el.ID, got, expected)
					break
				}
			}
		}
	})

	// 4. Close is idempotent
	t.Run("Close", func(t *testing.T) {
		session, err := opener.Open(context.Background())
		if err != nil {
			t.Fatalf("unexpected error opening source: %v", err)
		}
		if err := session.Close(); err != nil {
			t.Fatalf("unexpected error closing source: %v", err)
		}
		if err := session.Close(); err != nil {
			t.Errorf("second Close should be a no-op, got: %v", err)
		}
	})
}
