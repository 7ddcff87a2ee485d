package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// FMS format errors.
var (
	ErrInvalidFMSMagic       = errors.New("invalid FMS magic: expected 'FMSH'")
	ErrUnsupportedFMSVersion = errors.New("unsupported FMS version")
	ErrTruncatedFMSData      = errors.New("truncated FMS data")
	ErrInvalidFMSCounts      = errors.New("invalid FMS counts")
)

// FMSVersion represents the FMS file version.
type FMSVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v FMSVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// FMSComponent is one named value array of a field.
type FMSComponent struct {
	Name   string
	Values []float32 // one value per vertex
}

// FMSField is a named group of components (e.g. velocity with x/y/z).
type FMSField struct {
	Name       string
	Components []FMSComponent
}

// FMS represents a parsed field-mesh file: vertex geometry, optional
// triangle and tetrahedron connectivity, and per-vertex fields. All
// numeric buffers are little-endian float32/uint32 on the wire.
type FMS struct {
	Version     FMSVersion
	Vertices    []float32 // packed xyz, len = 3*VertexCount
	Triangles   []uint32  // len divisible by 3
	Tetrahedra  []uint32  // len divisible by 4
	Fields      []FMSField
	VertexCount uint32
}

// ParseFMS parses an FMS file from raw bytes.
//
// Layout:
//
//	magic   "FMSH"
//	version uint8 minor, uint8 major
//	counts  uint32 vertices, uint32 triangles, uint32 tetrahedra, uint32 fields
//	buffers float32[3*vertices], uint32[3*triangles], uint32[4*tetrahedra]
//	fields  (uint16 nameLen, name, uint16 componentCount,
//	         per component: uint16 nameLen, name, float32[vertices])
func ParseFMS(data []byte) (*FMS, error) {
	if len(data) < 22 {
		return nil, ErrTruncatedFMSData
	}

	if string(data[0:4]) != "FMSH" {
		return nil, ErrInvalidFMSMagic
	}

	// Version is stored as [minor, major]
	version := FMSVersion{Major: data[5], Minor: data[4]}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFMSVersion, version)
	}

	offset := 6
	readCount := func() uint32 {
		v := binary.LittleEndian.Uint32(data[offset:])
		offset += 4
		return v
	}

	vertexCount := readCount()
	triCount := readCount()
	tetCount := readCount()
	fieldCount := readCount()

	if vertexCount == 0 || vertexCount > 1<<26 || fieldCount > 1<<16 {
		return nil, fmt.Errorf("%w: %d vertices, %d fields", ErrInvalidFMSCounts, vertexCount, fieldCount)
	}

	fms := &FMS{Version: version, VertexCount: vertexCount}

	var err error
	fms.Vertices, err = Float32View(data[offset:], int(vertexCount)*3)
	if err != nil {
		return nil, fmt.Errorf("%w: vertex buffer", ErrTruncatedFMSData)
	}
	offset += int(vertexCount) * 3 * 4

	fms.Triangles, err = Uint32View(data[offset:], int(triCount)*3)
	if err != nil {
		return nil, fmt.Errorf("%w: triangle buffer", ErrTruncatedFMSData)
	}
	offset += int(triCount) * 3 * 4

	fms.Tetrahedra, err = Uint32View(data[offset:], int(tetCount)*4)
	if err != nil {
		return nil, fmt.Errorf("%w: tetrahedron buffer", ErrTruncatedFMSData)
	}
	offset += int(tetCount) * 4 * 4

	for i := uint32(0); i < fieldCount; i++ {
		field, next, err := parseFMSField(data, offset, int(vertexCount))
		if err != nil {
			return nil, fmt.Errorf("parsing field %d: %w", i, err)
		}
		fms.Fields = append(fms.Fields, field)
		offset = next
	}

	return fms, nil
}

// parseFMSField parses one field record starting at offset.
func parseFMSField(data []byte, offset, vertexCount int) (FMSField, int, error) {
	name, offset, err := readFMSString(data, offset)
	if err != nil {
		return FMSField{}, 0, err
	}

	if offset+2 > len(data) {
		return FMSField{}, 0, ErrTruncatedFMSData
	}
	compCount := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2

	field := FMSField{Name: name}
	for c := 0; c < compCount; c++ {
		compName, next, err := readFMSString(data, offset)
		if err != nil {
			return FMSField{}, 0, err
		}
		offset = next

		values, err := Float32View(data[offset:], vertexCount)
		if err != nil {
			return FMSField{}, 0, fmt.Errorf("%w: component %q", ErrTruncatedFMSData, compName)
		}
		offset += vertexCount * 4

		field.Components = append(field.Components, FMSComponent{Name: compName, Values: values})
	}

	return field, offset, nil
}

// readFMSString reads a uint16 length-prefixed string.
func readFMSString(data []byte, offset int) (string, int, error) {
	if offset+2 > len(data) {
		return "", 0, ErrTruncatedFMSData
	}
	n := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2
	if offset+n > len(data) {
		return "", 0, ErrTruncatedFMSData
	}
	return string(data[offset : offset+n]), offset + n, nil
}

// LoadFMS reads and parses an FMS file from disk.
func LoadFMS(path string) (*FMS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseFMS(data)
}

// EncodeFMS serializes a mesh with fields into the FMS wire format.
// Inverse of ParseFMS; used by tools that convert meshes for the viewer.
func EncodeFMS(fms *FMS) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("FMSH")
	buf.WriteByte(fms.Version.Minor)
	buf.WriteByte(fms.Version.Major)

	binary.Write(buf, binary.LittleEndian, fms.VertexCount)
	binary.Write(buf, binary.LittleEndian, uint32(len(fms.Triangles)/3))
	binary.Write(buf, binary.LittleEndian, uint32(len(fms.Tetrahedra)/4))
	binary.Write(buf, binary.LittleEndian, uint32(len(fms.Fields)))

	binary.Write(buf, binary.LittleEndian, fms.Vertices)
	binary.Write(buf, binary.LittleEndian, fms.Triangles)
	binary.Write(buf, binary.LittleEndian, fms.Tetrahedra)

	writeString := func(s string) {
		binary.Write(buf, binary.LittleEndian, uint16(len(s)))
		buf.WriteString(s)
	}

	for _, field := range fms.Fields {
		writeString(field.Name)
		binary.Write(buf, binary.LittleEndian, uint16(len(field.Components)))
		for _, comp := range field.Components {
			writeString(comp.Name)
			binary.Write(buf, binary.LittleEndian, comp.Values)
		}
	}

	return buf.Bytes()
}
