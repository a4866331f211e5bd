package gmsh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/meshtopo/pkg/domain"
)

// ErrFormat is returned when the input is not a supported Gmsh ASCII mesh.
var ErrFormat = errors.New("gmsh: invalid mesh format")

// Gmsh element type codes used by the topology. Every other code maps to domain.KindOther.
const (
	typeLine     = 1
	typeTriangle = 2
)

// PhysicalName is an entry of the $PhysicalNames section.
type PhysicalName struct {
	Dimension int
	Tag       domain.GroupID
	Name      string
}

// File is a parsed Gmsh mesh.
type File struct {
	Version       string
	Nodes         map[domain.VertexID]domain.Coord
	Elements      []domain.Element
	PhysicalNames []PhysicalName

	// physical holds the physical tags of every element that has any.
	physical map[domain.ElementID][]domain.GroupID
}

// PhysicalGroups returns the physical tags attached to an element.
func (f *File) PhysicalGroups(id domain.ElementID) []domain.GroupID {
	return f.physical[id]
}

// entity is a geometric entity of the v4 $Entities section.
type entity struct {
	physical []domain.GroupID
}

// scanner wraps bufio.Scanner with line numbers and typed field access.
type scanner struct {
	sc   *bufio.Scanner
	line int
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	// Node and element lines of large meshes stay short, but $Entities lines can grow.
	const maxScanTokenSize = 1024 * 1024 * 10
	sc.Buffer(make([]byte, 0, 64*1024), maxScanTokenSize)
	return &scanner{sc: sc}
}

func (s *scanner) next() ([]string, error) {
	for s.sc.Scan() {
		s.line++
		fields := strings.Fields(s.sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := s.sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return nil, s.errorf("unexpected EOF")
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, s.line, fmt.Sprintf(format, args...))
}

func (s *scanner) ints(fields []string, min int) ([]int64, error) {
	if len(fields) < min {
		return nil, s.errorf("expected at least %d fields, got %d", min, len(fields))
	}
	vals := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, s.errorf("invalid integer %q", f)
		}
		vals[i] = v
	}
	return vals, nil
}

// counts parses section header counts, which must not be negative.
func (s *scanner) counts(fields []string, min int) ([]int64, error) {
	vals, err := s.ints(fields, min)
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		if v < 0 {
			return nil, s.errorf("negative count %d", v)
		}
	}
	return vals, nil
}

// blockSize checks a block size against what is left of the section total.
func (s *scanner) blockSize(size, left int64) error {
	if size < 0 || size > left {
		return s.errorf("invalid block size %d (%d left in section)", size, left)
	}
	return nil
}

func (s *scanner) floats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, s.errorf("invalid number %q", f)
		}
		vals[i] = v
	}
	return vals, nil
}

// skipTo consumes lines up to and including the given section end marker.
func (s *scanner) skipTo(end string) error {
	for {
		fields, err := s.next()
		if err != nil {
			return err
		}
		if fields[0] == end {
			return nil
		}
	}
}

// expectEnd requires the next non-empty line to be the given marker.
func (s *scanner) expectEnd(end string) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	if fields[0] != end {
		return s.errorf("expected %s, got %q", end, fields[0])
	}
	return nil
}

// Parse reads a Gmsh ASCII mesh in format 2.2 or 4.1.
func Parse(r io.Reader) (*File, error) {
	s := newScanner(r)
	f := &File{
		Nodes:    make(map[domain.VertexID]domain.Coord),
		physical: make(map[domain.ElementID][]domain.GroupID),
	}
	entities := make(map[int]map[int64]entity) // dim -> tag -> entity

	for s.sc.Scan() {
		s.line++
		line := strings.TrimSpace(s.sc.Text())

		var err error
		switch line {
		case "$MeshFormat":
			err = readMeshFormat(s, f)
		case "$PhysicalNames":
			err = readPhysicalNames(s, f)
		case "$Entities":
			err = readEntities(s, entities)
		case "$Nodes":
			if f.Version == "" {
				return nil, s.errorf("$Nodes before $MeshFormat")
			}
			if isV4(f) {
				err = readNodes4(s, f)
			} else {
				err = readNodes2(s, f)
			}
		case "$Elements":
			if f.Version == "" {
				return nil, s.errorf("$Elements before $MeshFormat")
			}
			if isV4(f) {
				err = readElements4(s, f, entities)
			} else {
				err = readElements2(s, f)
			}
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// $Periodic, $NodeData, $PartitionedEntities...: not needed for connectivity.
				err = s.skipTo("$End" + strings.TrimPrefix(line, "$"))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := s.sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("%w: missing $MeshFormat section", ErrFormat)
	}
	return f, nil
}

func isV4(f *File) bool {
	return strings.HasPrefix(f.Version, "4")
}

func readMeshFormat(s *scanner, f *File) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	if len(fields) < 3 {
		return s.errorf("invalid MeshFormat line")
	}
	switch {
	case fields[0] == "2.2", strings.HasPrefix(fields[0], "4.1"):
	default:
		return s.errorf("unsupported version %s (want 2.2 or 4.1)", fields[0])
	}
	if fields[1] != "0" {
		return s.errorf("binary meshes are not supported")
	}
	f.Version = fields[0]
	return s.expectEnd("$EndMeshFormat")
}

func readPhysicalNames(s *scanner, f *File) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	n, err := s.counts(fields[:1], 1)
	if err != nil {
		return err
	}
	for i := int64(0); i < n[0]; i++ {
		fields, err := s.next()
		if err != nil {
			return err
		}
		head, err := s.ints(fields[:min(2, len(fields))], 2)
		if err != nil {
			return err
		}
		name := strings.Trim(strings.Join(fields[2:], " "), `"`)
		f.PhysicalNames = append(f.PhysicalNames, PhysicalName{
			Dimension: int(head[0]),
			Tag:       domain.GroupID(head[1]),
			Name:      name,
		})
	}
	return s.expectEnd("$EndPhysicalNames")
}

// readEntities reads the v4 $Entities section, keeping only physical tags.
func readEntities(s *scanner, entities map[int]map[int64]entity) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	counts, err := s.counts(fields[:min(4, len(fields))], 4)
	if err != nil {
		return err
	}
	for dim := 0; dim < 4; dim++ {
		entities[dim] = make(map[int64]entity)
		// Points: tag x y z nPhys phys...; others: tag minX minY minZ maxX maxY maxZ nPhys phys... nBound bound...
		offset := 7
		if dim == 0 {
			offset = 4
		}
		for i := int64(0); i < counts[dim]; i++ {
			fields, err := s.next()
			if err != nil {
				return err
			}
			if len(fields) <= offset {
				return s.errorf("invalid entity line")
			}
			tag, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return s.errorf("invalid entity tag %q", fields[0])
			}
			nPhys, err := strconv.Atoi(fields[offset])
			if err != nil || nPhys < 0 || len(fields) < offset+1+nPhys {
				return s.errorf("invalid physical tag count")
			}
			var ent entity
			if nPhys > 0 {
				phys, err := s.ints(fields[offset+1:offset+1+nPhys], nPhys)
				if err != nil {
					return err
				}
				for _, p := range phys {
					ent.physical = append(ent.physical, domain.GroupID(abs(p)))
				}
			}
			entities[dim][tag] = ent
		}
	}
	return s.expectEnd("$EndEntities")
}

func readNodes2(s *scanner, f *File) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	n, err := s.counts(fields[:1], 1)
	if err != nil {
		return err
	}
	for i := int64(0); i < n[0]; i++ {
		fields, err := s.next()
		if err != nil {
			return err
		}
		if len(fields) < 4 {
			return s.errorf("invalid node line")
		}
		id, err := s.ints(fields[:1], 1)
		if err != nil {
			return err
		}
		coords, err := s.floats(fields[1:4])
		if err != nil {
			return err
		}
		if err := addNode(s, f, id[0], coords); err != nil {
			return err
		}
	}
	return s.expectEnd("$EndNodes")
}

func readNodes4(s *scanner, f *File) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	header, err := s.counts(fields[:min(4, len(fields))], 4)
	if err != nil {
		return err
	}
	// numEntityBlocks numNodes|numElements minTag maxTag
	left := header[1]
	for block := int64(0); block < header[0]; block++ {
		fields, err := s.next()
		if err != nil {
			return err
		}
		// entityDim entityTag parametric numNodesInBlock
		bh, err := s.ints(fields, 4)
		if err != nil {
			return err
		}
		if bh[2] != 0 {
			return s.errorf("parametric node blocks are not supported")
		}
		count := bh[3]
		if err := s.blockSize(count, left); err != nil {
			return err
		}
		left -= count
		tags := make([]int64, 0, count)
		for j := int64(0); j < count; j++ {
			fields, err := s.next()
			if err != nil {
				return err
			}
			tag, err := s.ints(fields[:1], 1)
			if err != nil {
				return err
			}
			tags = append(tags, tag[0])
		}
		for _, tag := range tags {
			fields, err := s.next()
			if err != nil {
				return err
			}
			if len(fields) < 3 {
				return s.errorf("invalid node coordinate line")
			}
			coords, err := s.floats(fields[:3])
			if err != nil {
				return err
			}
			if err := addNode(s, f, tag, coords); err != nil {
				return err
			}
		}
	}
	return s.expectEnd("$EndNodes")
}

func addNode(s *scanner, f *File, id int64, coords []float64) error {
	vid := domain.VertexID(id)
	if _, dup := f.Nodes[vid]; dup {
		return s.errorf("duplicate node %d", id)
	}
	f.Nodes[vid] = domain.Coord(coords)
	return nil
}

// readElements2 reads: elm-number elm-type number-of-tags <tags> node-number-list.
// The first tag is the physical entity (0 when untagged), the second the elementary entity.
func readElements2(s *scanner, f *File) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	n, err := s.counts(fields[:1], 1)
	if err != nil {
		return err
	}
	for i := int64(0); i < n[0]; i++ {
		fields, err := s.next()
		if err != nil {
			return err
		}
		vals, err := s.ints(fields, 3)
		if err != nil {
			return err
		}
		id, gmshType, nTags := vals[0], vals[1], vals[2]
		if nTags < 0 || int64(len(vals)) < 3+nTags {
			return s.errorf("invalid tag count for element %d", id)
		}
		el := domain.Element{
			ID:       domain.ElementID(id),
			Kind:     kindOf(gmshType),
			Vertices: toVertexIDs(vals[3+nTags:]),
		}
		f.Elements = append(f.Elements, el)
		if nTags > 0 && vals[3] != 0 {
			f.physical[el.ID] = []domain.GroupID{domain.GroupID(vals[3])}
		}
	}
	return s.expectEnd("$EndElements")
}

// readElements4 reads entity blocks; physical tags come from the block's entity.
func readElements4(s *scanner, f *File, entities map[int]map[int64]entity) error {
	fields, err := s.next()
	if err != nil {
		return err
	}
	header, err := s.counts(fields[:min(4, len(fields))], 4)
	if err != nil {
		return err
	}
	// numEntityBlocks numNodes|numElements minTag maxTag
	left := header[1]
	for block := int64(0); block < header[0]; block++ {
		fields, err := s.next()
		if err != nil {
			return err
		}
		// entityDim entityTag elementType numElementsInBlock
		bh, err := s.ints(fields, 4)
		if err != nil {
			return err
		}
		var physical []domain.GroupID
		if ent, ok := entities[int(bh[0])][bh[1]]; ok {
			physical = ent.physical
		}
		if err := s.blockSize(bh[3], left); err != nil {
			return err
		}
		left -= bh[3]
		kind := kindOf(bh[2])
		for j := int64(0); j < bh[3]; j++ {
			fields, err := s.next()
			if err != nil {
				return err
			}
			vals, err := s.ints(fields, 2)
			if err != nil {
				return err
			}
			el := domain.Element{
				ID:       domain.ElementID(vals[0]),
				Kind:     kind,
				Vertices: toVertexIDs(vals[1:]),
			}
			f.Elements = append(f.Elements, el)
			if len(physical) > 0 {
				f.physical[el.ID] = physical
			}
		}
	}
	return s.expectEnd("$EndElements")
}

func kindOf(gmshType int64) domain.ElementKind {
	switch gmshType {
	case typeLine:
		return domain.KindLine
	case typeTriangle:
		return domain.KindTriangle
	default:
		return domain.KindOther
	}
}

func toVertexIDs(vals []int64) []domain.VertexID {
	ids := make([]domain.VertexID, len(vals))
	for i, v := range vals {
		ids[i] = domain.VertexID(v)
	}
	return ids
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
