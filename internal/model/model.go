package model

// Source says where a Model came from. A session ends up with exactly one of the two.
type Source int

const (
	SourceAsset Source = iota + 1
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceAsset:
		return "asset"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Shape names a primitive the renderer knows how to draw. Values match the
// primitive registry keys.
type Shape string

const (
	ShapeCube     Shape = "cube"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
)

// Part is one primitive of a procedural model, in model space. Center is the
// middle of the primitive (cylinders are centered on their axis, not their base).
// Size is the full extent on each axis.
type Part struct {
	Name      string
	Shape     Shape
	Center    [3]float32
	Size      [3]float32
	Color     [4]uint8
	Shininess float32
}

// Bounds is an axis-aligned box in model space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Extent returns the size of the box on each axis.
func (b Bounds) Extent() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	out := b
	for i := 0; i < 3; i++ {
		out.Min[i] = min(out.Min[i], o.Min[i])
		out.Max[i] = max(out.Max[i], o.Max[i])
	}
	return out
}

// Transform is the placement applied to the whole model when it is drawn.
type Transform struct {
	Position [3]float32
	Scale    [3]float32
}

// IdentityTransform places the model at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: [3]float32{1, 1, 1}}
}

// Model is the renderable handle the presentation machine owns. Asset models
// carry LocalPath for GPU upload; fallback models carry Parts.
type Model struct {
	Source    Source
	Resource  string
	LocalPath string
	MeshCount int
	Parts     []Part
	Bounds    Bounds
	Transform Transform
}

// SetTransform places the model. Calling it twice with the same values leaves
// the model unchanged.
func (m *Model) SetTransform(position [3]float32, scale float32) {
	m.Transform.Position = position
	m.Transform.Scale = [3]float32{scale, scale, scale}
}

// PartBounds returns the box covering all parts. ok is false when there are none.
func PartBounds(parts []Part) (b Bounds, ok bool) {
	for i, p := range parts {
		half := [3]float32{p.Size[0] / 2, p.Size[1] / 2, p.Size[2] / 2}
		pb := Bounds{
			Min: [3]float32{p.Center[0] - half[0], p.Center[1] - half[1], p.Center[2] - half[2]},
			Max: [3]float32{p.Center[0] + half[0], p.Center[1] + half[1], p.Center[2] + half[2]},
		}
		if i == 0 {
			b = pb
			continue
		}
		b = b.Union(pb)
	}
	return b, len(parts) > 0
}
