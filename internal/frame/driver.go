package frame

import "camera-viewer/internal/presentation"

// Surface is the display the driver renders to. Inline presents one frame on the
// window's own refresh; Immersive presents one frame through the stereo path so
// it follows the immersive device's refresh.
type Surface interface {
	ShouldClose() bool
	Inline(render func())
	Immersive(render func())
}

// Driver renders every frame the surface offers until it asks to close.
type Driver struct {
	Surface Surface
	// OnFrame, if set, is called after each presented frame with its mode.
	OnFrame func(presentation.Mode)
}

// Run loops until the surface closes. Each iteration calls step, reads the mode
// and presents render with the matching scheduling. There is no pacing or frame
// skipping here; the surface's vsync paces the loop.
func (d *Driver) Run(mode func() presentation.Mode, step func(), render func()) {
	for !d.Surface.ShouldClose() {
		if step != nil {
			step()
		}
		m := mode()
		if m == presentation.Immersive {
			d.Surface.Immersive(render)
		} else {
			d.Surface.Inline(render)
		}
		if d.OnFrame != nil {
			d.OnFrame(m)
		}
	}
}
