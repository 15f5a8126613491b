// Package testutil writes small glTF fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Triangle is a single triangle spanning x in [-1,1], y in [0,1], z = 0.
var Triangle = [][3]float32{{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}}

func positionBytes(verts [][3]float32) []byte {
	buf := make([]byte, 0, len(verts)*12)
	for _, v := range verts {
		for _, c := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
	}
	return buf
}

func bounds(verts [][3]float32) (lo, hi [3]float64) {
	for i, v := range verts {
		for k := 0; k < 3; k++ {
			c := float64(v[k])
			if i == 0 || c < lo[k] {
				lo[k] = c
			}
			if i == 0 || c > hi[k] {
				hi[k] = c
			}
		}
	}
	return lo, hi
}

// document builds the glTF JSON for one mesh with a POSITION accessor. uri is
// empty for GLB, where the buffer lives in the BIN chunk.
func document(verts [][3]float32, uri string) map[string]any {
	lo, hi := bounds(verts)
	buffer := map[string]any{"byteLength": len(verts) * 12}
	if uri != "" {
		buffer["uri"] = uri
	}
	return map[string]any{
		"asset":   map[string]any{"version": "2.0"},
		"scene":   0,
		"scenes":  []any{map[string]any{"nodes": []int{0}}},
		"nodes":   []any{map[string]any{"mesh": 0, "name": "camera"}},
		"meshes":  []any{map[string]any{"primitives": []any{map[string]any{"attributes": map[string]int{"POSITION": 0}}}}},
		"buffers": []any{buffer},
		"bufferViews": []any{map[string]any{
			"buffer": 0, "byteOffset": 0, "byteLength": len(verts) * 12,
		}},
		"accessors": []any{map[string]any{
			"bufferView": 0, "componentType": 5126, "count": len(verts), "type": "VEC3",
			"min": lo[:], "max": hi[:],
		}},
	}
}

func pad(b []byte, with byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, with)
	}
	return b
}

// GLB returns a binary glTF holding verts as a single mesh.
func GLB(t testing.TB, verts [][3]float32) []byte {
	t.Helper()
	js, err := json.Marshal(document(verts, ""))
	if err != nil {
		t.Fatalf("marshal gltf: %v", err)
	}
	js = pad(js, ' ')
	bin := pad(positionBytes(verts), 0)

	var out bytes.Buffer
	total := 12 + 8 + len(js) + 8 + len(bin)
	for _, v := range []uint32{0x46546C67, 2, uint32(total), uint32(len(js)), 0x4E4F534A} {
		_ = binary.Write(&out, binary.LittleEndian, v)
	}
	out.Write(js)
	for _, v := range []uint32{uint32(len(bin)), 0x004E4942} {
		_ = binary.Write(&out, binary.LittleEndian, v)
	}
	out.Write(bin)
	return out.Bytes()
}

// WriteGLB writes GLB(verts) to dir/name (creating parent directories) and returns the path.
func WriteGLB(t testing.TB, dir, name string, verts [][3]float32) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, GLB(t, verts), 0644); err != nil {
		t.Fatalf("write glb: %v", err)
	}
	return path
}

// WriteEmptyGLTF writes a valid glTF JSON document with no meshes.
func WriteEmptyGLTF(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(`{"asset":{"version":"2.0"}}`), 0644); err != nil {
		t.Fatalf("write gltf: %v", err)
	}
	return path
}
