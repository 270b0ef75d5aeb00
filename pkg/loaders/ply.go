package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

// MeshData contains triangle geometry loaded from a mesh file.
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int // vertex indices, 3 per triangle
}

type plyProperty struct {
	name     string
	typ      string
	isList   bool
	listType string
	dataType string
}

type plyHeader struct {
	format      string // "ascii" or "binary_little_endian"
	vertexCount int
	faceCount   int
	vertexProps []plyProperty
	faceProps   []plyProperty
}

var plyTypeSize = map[string]int{
	"char": 1, "uchar": 1, "int8": 1, "uint8": 1,
	"short": 2, "ushort": 2, "int16": 2, "uint16": 2,
	"int": 4, "uint": 4, "int32": 4, "uint32": 4, "float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

// LoadPLY loads an ascii or binary little-endian PLY file. Only vertex
// positions and triangular faces are kept; other properties are skipped.
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header in %s: %w", filename, err)
	}

	var mesh *MeshData
	switch header.format {
	case "ascii":
		mesh, err = readPLYAscii(reader, header)
	case "binary_little_endian":
		mesh, err = readPLYBinary(reader, header)
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data from %s: %w", filename, err)
	}

	return mesh, nil
}

func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	line, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	header := &plyHeader{}
	element := "" // element whose properties are being declared

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment":
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed format line")
			}
			header.format = fields[1]
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line")
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("bad element count %q", fields[2])
			}
			element = fields[1]
			switch element {
			case "vertex":
				header.vertexCount = count
			case "face":
				header.faceCount = count
			}
		case "property":
			prop := plyProperty{}
			if len(fields) >= 5 && fields[1] == "list" {
				prop.isList = true
				prop.listType = fields[2]
				prop.dataType = fields[3]
				prop.name = fields[4]
			} else if len(fields) >= 3 {
				prop.typ = fields[1]
				prop.name = fields[2]
			} else {
				return nil, fmt.Errorf("malformed property line")
			}
			switch element {
			case "vertex":
				header.vertexProps = append(header.vertexProps, prop)
			case "face":
				header.faceProps = append(header.faceProps, prop)
			}
		case "end_header":
			if header.vertexCount == 0 {
				return nil, fmt.Errorf("no vertex element")
			}
			return header, nil
		}
	}
}

// positionIndices returns the property indices of x, y, z.
func (h *plyHeader) positionIndices() ([3]int, error) {
	idx := [3]int{-1, -1, -1}
	for i, p := range h.vertexProps {
		switch p.name {
		case "x":
			idx[0] = i
		case "y":
			idx[1] = i
		case "z":
			idx[2] = i
		}
	}
	if idx[0] < 0 || idx[1] < 0 || idx[2] < 0 {
		return idx, fmt.Errorf("vertex element lacks x/y/z properties")
	}
	return idx, nil
}

func readPLYAscii(reader *bufio.Reader, header *plyHeader) (*MeshData, error) {
	posIdx, err := header.positionIndices()
	if err != nil {
		return nil, err
	}

	mesh := &MeshData{Vertices: make([]core.Vec3, 0, header.vertexCount)}
	scanner := bufio.NewScanner(reader)

	for v := 0; v < header.vertexCount; v++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of vertex data")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < len(header.vertexProps) {
			return nil, fmt.Errorf("short vertex record %q", scanner.Text())
		}
		var coords [3]float64
		for axis, i := range posIdx {
			coords[axis], err = strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("bad vertex coordinate %q", fields[i])
			}
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	for f := 0; f < header.faceCount; f++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of face data")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			return nil, fmt.Errorf("empty face record")
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil || len(fields) < n+1 {
			return nil, fmt.Errorf("short face record %q", scanner.Text())
		}
		indices := make([]int, n)
		for i := 0; i < n; i++ {
			indices[i], err = strconv.Atoi(fields[i+1])
			if err != nil {
				return nil, fmt.Errorf("bad face index %q", fields[i+1])
			}
		}
		appendFan(mesh, indices)
	}

	return mesh, nil
}

func readPLYBinary(reader *bufio.Reader, header *plyHeader) (*MeshData, error) {
	posIdx, err := header.positionIndices()
	if err != nil {
		return nil, err
	}

	mesh := &MeshData{Vertices: make([]core.Vec3, 0, header.vertexCount)}

	for v := 0; v < header.vertexCount; v++ {
		var coords [3]float64
		for i, prop := range header.vertexProps {
			val, err := readPLYScalar(reader, prop.typ)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", v, err)
			}
			for axis := 0; axis < 3; axis++ {
				if posIdx[axis] == i {
					coords[axis] = val
				}
			}
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	for f := 0; f < header.faceCount; f++ {
		for _, prop := range header.faceProps {
			if !prop.isList {
				if _, err := readPLYScalar(reader, prop.typ); err != nil {
					return nil, fmt.Errorf("face %d: %w", f, err)
				}
				continue
			}
			count, err := readPLYScalar(reader, prop.listType)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", f, err)
			}
			n := int(count)
			indices := make([]int, n)
			for i := 0; i < n; i++ {
				val, err := readPLYScalar(reader, prop.dataType)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", f, err)
				}
				indices[i] = int(val)
			}
			if prop.name == "vertex_indices" || prop.name == "vertex_index" {
				appendFan(mesh, indices)
			}
		}
	}

	return mesh, nil
}

func readPLYScalar(reader io.Reader, typ string) (float64, error) {
	size, ok := plyTypeSize[typ]
	if !ok {
		return 0, fmt.Errorf("unknown property type %q", typ)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(binary.LittleEndian.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(binary.LittleEndian.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(binary.LittleEndian.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(binary.LittleEndian.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf))), nil
	default: // double, float64
		return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
	}
}

// appendFan triangulates a polygon as a fan around its first vertex.
func appendFan(mesh *MeshData, indices []int) {
	for i := 1; i+1 < len(indices); i++ {
		mesh.Faces = append(mesh.Faces, indices[0], indices[i], indices[i+1])
	}
}
