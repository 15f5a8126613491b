package primitives

import (
	"sort"

	"camera-viewer/internal/model"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for a shape. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps shapes to unit meshes sharing one lit material. Meshes are
// created on first use so GPU resources are allocated after the window/OpenGL
// context exists.
type Registry struct {
	cache    map[model.Shape]cached
	shader   rl.Shader
	lighting Lighting
}

// NewRegistry returns a registry with no meshes.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[model.Shape]cached)}
}

// SetLighting sets the lighting for this frame. Call once per frame before drawing.
func (r *Registry) SetLighting(l Lighting) {
	r.lighting = l
}

// defaultSlices controls sphere and cylinder resolution.
const defaultSlices = 32

// unitMesh returns a mesh of extent 1 on every axis for shape, centered on
// the origin except the cylinder, whose base sits at Y=0 (see centerOffset).
func unitMesh(shape model.Shape) (rl.Mesh, bool) {
	switch shape {
	case model.ShapeCube:
		return rl.GenMeshCube(1, 1, 1), true
	case model.ShapeSphere:
		return rl.GenMeshSphere(0.5, defaultSlices, defaultSlices), true
	case model.ShapeCylinder:
		return rl.GenMeshCylinder(0.5, 1, defaultSlices), true
	}
	return rl.Mesh{}, false
}

// centerOffset moves a unit mesh so its center is at the origin. raylib
// cylinders have their base at Y=0 and top at Y=height.
func centerOffset(shape model.Shape) [3]float32 {
	if shape == model.ShapeCylinder {
		return [3]float32{0, -0.5, 0}
	}
	return [3]float32{}
}

func (r *Registry) ensure(shape model.Shape) (cached, bool) {
	if c, ok := r.cache[shape]; ok {
		return c, true
	}
	mesh, ok := unitMesh(shape)
	if !ok {
		return cached{}, false
	}
	if !rl.IsShaderValid(r.shader) {
		r.shader = loadLitShader()
	}
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[shape] = c
	return c, true
}

// partMatrix places a unit mesh: center it, stretch to the part size, move to
// the part center, then apply the model transform.
func partMatrix(p model.Part, t model.Transform) rl.Matrix {
	off := centerOffset(p.Shape)
	m := rl.MatrixTranslate(off[0], off[1], off[2])
	m = rl.MatrixMultiply(m, rl.MatrixScale(p.Size[0], p.Size[1], p.Size[2]))
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(p.Center[0], p.Center[1], p.Center[2]))
	m = rl.MatrixMultiply(m, rl.MatrixScale(t.Scale[0], t.Scale[1], t.Scale[2]))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position[0], t.Position[1], t.Position[2]))
}

// DrawParts draws the parts of a procedural model with transform t. Opaque
// parts go first so translucent ones blend over them. Must be called between
// BeginMode3D and EndMode3D. Unknown shapes are skipped.
func (r *Registry) DrawParts(parts []model.Part, t model.Transform) {
	order := make([]model.Part, len(parts))
	copy(order, parts)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Color[3] > order[j].Color[3] })

	for _, p := range order {
		c, ok := r.ensure(p.Shape)
		if !ok {
			continue
		}
		if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rl.NewColor(p.Color[0], p.Color[1], p.Color[2], p.Color[3])
		}
		SetLighting(c.mtl.Shader, r.lighting, p.Shininess)
		rl.DrawMesh(c.mesh, c.mtl, partMatrix(p, t))
	}
}

// Unload frees the cached meshes, their materials and the shared shader.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		// UnloadMaterial also unloads a non-default shader; the shared one is freed once below.
		c.mtl.Shader.ID = rl.GetShaderIdDefault()
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, k)
	}
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
}
