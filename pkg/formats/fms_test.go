package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// createTestFMS builds a minimal valid FMS file: a single tetrahedron with
// one scalar field and one 3-component field.
func createTestFMS() []byte {
	buf := new(bytes.Buffer)

	// Magic "FMSH"
	buf.WriteString("FMSH")

	// Version 1.0 (stored as minor, major)
	buf.WriteByte(0)
	buf.WriteByte(1)

	// Counts: 4 vertices, 1 triangle, 1 tetrahedron, 2 fields
	binary.Write(buf, binary.LittleEndian, uint32(4))
	binary.Write(buf, binary.LittleEndian, uint32(1))
	binary.Write(buf, binary.LittleEndian, uint32(1))
	binary.Write(buf, binary.LittleEndian, uint32(2))

	// Vertices
	binary.Write(buf, binary.LittleEndian, []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	// Triangle and tetrahedron indices
	binary.Write(buf, binary.LittleEndian, []uint32{0, 1, 2})
	binary.Write(buf, binary.LittleEndian, []uint32{0, 1, 2, 3})

	writeString := func(s string) {
		binary.Write(buf, binary.LittleEndian, uint16(len(s)))
		buf.WriteString(s)
	}

	// Scalar field "pressure"
	writeString("pressure")
	binary.Write(buf, binary.LittleEndian, uint16(1))
	writeString("value")
	binary.Write(buf, binary.LittleEndian, []float32{0, 1, 2, 3})

	// Vector field "velocity"
	writeString("velocity")
	binary.Write(buf, binary.LittleEndian, uint16(3))
	for _, comp := range []string{"x", "y", "z"} {
		writeString(comp)
		binary.Write(buf, binary.LittleEndian, []float32{1, 1, 1, 1})
	}

	return buf.Bytes()
}

func TestParseFMS_ValidFile(t *testing.T) {
	fms, err := ParseFMS(createTestFMS())
	if err != nil {
		t.Fatalf("ParseFMS failed: %v", err)
	}

	if fms.Version.Major != 1 || fms.Version.Minor != 0 {
		t.Errorf("expected version 1.0, got %s", fms.Version)
	}
	if fms.VertexCount != 4 {
		t.Errorf("expected 4 vertices, got %d", fms.VertexCount)
	}
	if len(fms.Vertices) != 12 {
		t.Errorf("expected 12 vertex values, got %d", len(fms.Vertices))
	}
	if len(fms.Triangles) != 3 {
		t.Errorf("expected 3 triangle indices, got %d", len(fms.Triangles))
	}
	if len(fms.Tetrahedra) != 4 {
		t.Errorf("expected 4 tetrahedron indices, got %d", len(fms.Tetrahedra))
	}
	if len(fms.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fms.Fields))
	}

	pressure := fms.Fields[0]
	if pressure.Name != "pressure" || len(pressure.Components) != 1 {
		t.Errorf("unexpected first field: %+v", pressure)
	}
	if pressure.Components[0].Values[3] != 3 {
		t.Errorf("pressure[3] = %v, want 3", pressure.Components[0].Values[3])
	}

	velocity := fms.Fields[1]
	if velocity.Name != "velocity" || len(velocity.Components) != 3 {
		t.Errorf("unexpected second field: %+v", velocity)
	}
	if velocity.Components[2].Name != "z" {
		t.Errorf("velocity component 2 = %q, want z", velocity.Components[2].Name)
	}
}

func TestParseFMS_InvalidMagic(t *testing.T) {
	data := createTestFMS()
	copy(data, "XXXX")

	if _, err := ParseFMS(data); !errors.Is(err, ErrInvalidFMSMagic) {
		t.Errorf("ParseFMS error = %v, want ErrInvalidFMSMagic", err)
	}
}

func TestParseFMS_UnsupportedVersion(t *testing.T) {
	data := createTestFMS()
	data[5] = 9 // major

	if _, err := ParseFMS(data); !errors.Is(err, ErrUnsupportedFMSVersion) {
		t.Errorf("ParseFMS error = %v, want ErrUnsupportedFMSVersion", err)
	}
}

func TestParseFMS_Truncated(t *testing.T) {
	data := createTestFMS()

	for _, cut := range []int{10, 30, len(data) - 3} {
		if _, err := ParseFMS(data[:cut]); !errors.Is(err, ErrTruncatedFMSData) {
			t.Errorf("ParseFMS(data[:%d]) error = %v, want ErrTruncatedFMSData", cut, err)
		}
	}
}

func TestEncodeFMSRoundTrip(t *testing.T) {
	original, err := ParseFMS(createTestFMS())
	if err != nil {
		t.Fatalf("ParseFMS failed: %v", err)
	}

	reparsed, err := ParseFMS(EncodeFMS(original))
	if err != nil {
		t.Fatalf("ParseFMS(EncodeFMS()) failed: %v", err)
	}

	if reparsed.VertexCount != original.VertexCount {
		t.Errorf("vertex count = %d, want %d", reparsed.VertexCount, original.VertexCount)
	}
	if len(reparsed.Fields) != len(original.Fields) {
		t.Errorf("field count = %d, want %d", len(reparsed.Fields), len(original.Fields))
	}
	if reparsed.Fields[1].Components[1].Name != "y" {
		t.Errorf("component name = %q, want y", reparsed.Fields[1].Components[1].Name)
	}
}
