package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

// LoadGLTF loads triangle geometry from a glTF or binary GLB file. Normals,
// UVs, and materials are ignored; only positions and indices are kept.
func LoadGLTF(filename string) (*MeshData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file: %w", err)
	}

	mesh := &MeshData{}
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("failed to read glTF mesh %q: %w", m.Name, err)
		}
	}

	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("no triangle geometry in %s", filename)
	}
	return mesh, nil
}

func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *MeshData) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points carry no renderable surface
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readGLTFVec3(doc, posIdx)
		if err != nil {
			return err
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if prim.Indices != nil {
			indices, err := readGLTFIndices(doc, *prim.Indices)
			if err != nil {
				return err
			}
			for _, i := range indices {
				mesh.Faces = append(mesh.Faces, base+i)
			}
		} else {
			// No index buffer, vertices form sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, base+i, base+i+1, base+i+2)
			}
		}
	}
	return nil
}

func readGLTFVec3(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3 accessor, got %v/%v",
			accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		result[i] = core.NewVec3(
			float64(gltfFloat32(data[off:])),
			float64(gltfFloat32(data[off+4:])),
			float64(gltfFloat32(data[off+8:])),
		)
	}
	return result, nil
}

func readGLTFIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, stride, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		if stride == 0 {
			stride = 1
		}
		for i := range result {
			result[i] = int(data[i*stride])
		}
	case gltf.ComponentUshort:
		if stride == 0 {
			stride = 2
		}
		for i := range result {
			off := i * stride
			result[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		}
	case gltf.ComponentUint:
		if stride == 0 {
			stride = 4
		}
		for i := range result {
			off := i * stride
			result[i] = int(uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24)
		}
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}
	return result, nil
}

// accessorBytes returns the raw buffer slice an accessor reads from and its
// byte stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("external glTF buffers are not supported")
	}

	start := view.ByteOffset + accessor.ByteOffset
	if start > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor offset outside buffer")
	}
	return buffer.Data[start:], view.ByteStride, nil
}

func gltfFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
