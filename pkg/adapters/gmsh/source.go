package gmsh

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
)

var (
	_ ports.MeshOpener = (*Source)(nil)
	_ ports.GroupNamer = (*Source)(nil)
)

// Source implements ports.MeshOpener for a Gmsh .msh file on disk.
type Source struct {
	Path string

	// Keep3D keeps the z component even when every node lies in the z=0 plane.
	Keep3D bool

	mu    sync.Mutex
	names map[domain.GroupID]string
}

// New creates a Source for the given path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Open acquires the file handle. The file is parsed on first access and released by Close.
func (s *Source) Open(ctx context.Context) (ports.MeshSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return &session{src: s, file: file, keep3D: s.Keep3D}, nil
}

// GroupNames returns the names of the curve physical groups ($PhysicalNames entries of
// dimension 1) seen by the last session that parsed the file. It is empty before that.
func (s *Source) GroupNames() map[domain.GroupID]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make(map[domain.GroupID]string, len(s.names))
	for id, name := range s.names {
		names[id] = name
	}
	return names
}

func (s *Source) remember(f *File) {
	names := make(map[domain.GroupID]string)
	for _, pn := range f.PhysicalNames {
		if pn.Dimension == 1 {
			names[pn.Tag] = pn.Name
		}
	}
	s.mu.Lock()
	s.names = names
	s.mu.Unlock()
}

type session struct {
	src    *Source
	file   *os.File
	keep3D bool

	parsed   *File
	parseErr error
	done     bool
}

func (s *session) load() (*File, error) {
	if s.done {
		return s.parsed, s.parseErr
	}
	if s.file == nil {
		return nil, errors.New("gmsh: session closed")
	}
	s.done = true
	f, err := Parse(s.file)
	if err != nil {
		s.parseErr = fmt.Errorf("%s: %w", s.file.Name(), err)
		return nil, s.parseErr
	}
	if !s.keep3D {
		flatten(f.Nodes)
	}
	s.parsed = f
	s.src.remember(f)
	return f, nil
}

func (s *session) Vertices() (map[domain.VertexID]domain.Coord, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Nodes, nil
}

func (s *session) Elements() ([]domain.Element, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Elements, nil
}

func (s *session) PhysicalGroupsForLine(id domain.ElementID) ([]domain.GroupID, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.PhysicalGroups(id), nil
}

// Close releases the file handle. It is safe to call more than once.
func (s *session) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// flatten drops z from every node when the whole mesh lies in the z=0 plane.
func flatten(nodes map[domain.VertexID]domain.Coord) {
	for _, c := range nodes {
		if len(c) > 2 && c[2] != 0 {
			return
		}
	}
	for id, c := range nodes {
		if len(c) > 2 {
			nodes[id] = c[:2]
		}
	}
}
