package fallback

import "camera-viewer/internal/model"

// Options selects optional pieces of the placeholder camera.
type Options struct {
	// Buttons adds a shutter button and a mode dial on top of the body.
	Buttons bool
}

var (
	bodyColor    = [4]uint8{0x33, 0x33, 0x33, 255}
	lensColor    = [4]uint8{0x00, 0x66, 0xff, 178} // opacity 0.7
	shutterColor = [4]uint8{0xcc, 0x22, 0x22, 255}
	dialColor    = [4]uint8{0x88, 0x88, 0x88, 255}
)

// Body is a cylinder of radius 1 and height 1.5; the lens is a sphere of radius 0.5
// sitting on the body's front at z=1.
const (
	bodyRadius = 1.0
	bodyHeight = 1.5
	lensRadius = 0.5
	lensZ      = 1.0
	buttonSize = 0.2
)

// Build returns a placeholder camera made of primitives. It does no I/O and
// cannot fail; the same options always give the same model.
func Build(opts Options) *model.Model {
	parts := []model.Part{
		{
			Name:      "body",
			Shape:     model.ShapeCylinder,
			Size:      [3]float32{2 * bodyRadius, bodyHeight, 2 * bodyRadius},
			Color:     bodyColor,
			Shininess: 30,
		},
		{
			Name:      "lens",
			Shape:     model.ShapeSphere,
			Center:    [3]float32{0, 0, lensZ},
			Size:      [3]float32{2 * lensRadius, 2 * lensRadius, 2 * lensRadius},
			Color:     lensColor,
			Shininess: 90,
		},
	}
	if opts.Buttons {
		top := float32(bodyHeight/2 + buttonSize/2)
		parts = append(parts,
			model.Part{
				Name:      "shutter",
				Shape:     model.ShapeCube,
				Center:    [3]float32{0.5, top, 0.3},
				Size:      [3]float32{buttonSize, buttonSize, buttonSize},
				Color:     shutterColor,
				Shininess: 60,
			},
			model.Part{
				Name:      "dial",
				Shape:     model.ShapeCylinder,
				Center:    [3]float32{-0.5, top, 0.3},
				Size:      [3]float32{0.35, buttonSize, 0.35},
				Color:     dialColor,
				Shininess: 60,
			},
		)
	}
	bounds, _ := model.PartBounds(parts)
	return &model.Model{
		Source:    model.SourceFallback,
		Parts:     parts,
		Bounds:    bounds,
		Transform: model.IdentityTransform(),
	}
}
