package graphics

import (
	"camera-viewer/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is the raylib window the frame driver presents to. The window is
// resizable and vsynced, so each presented frame follows the display refresh.
type Surface struct {
	Background rl.Color
	// Overlay, if set, draws 2D content over the 3D frame in both modes.
	Overlay func()
	// OnResize, if set, is called with the new size when the window is resized.
	OnResize func(width, height int)

	stereo *xr.Stereo
}

// Open creates the window. Close it with Close.
func Open(title string, width, height int) *Surface {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	return &Surface{Background: rl.RayWhite, stereo: xr.NewStereo()}
}

// ShouldClose reports whether the user asked to close the window.
func (s *Surface) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Inline presents one frame: clear, render, overlay.
func (s *Surface) Inline(render func()) {
	s.checkResize()
	rl.BeginDrawing()
	rl.ClearBackground(s.Background)
	render()
	s.drawOverlay()
	rl.EndDrawing()
}

// Immersive presents one frame through the stereo path: render runs once per
// eye into the stereo target, which is then shown with the overlay on top.
func (s *Surface) Immersive(render func()) {
	s.checkResize()
	s.stereo.Render(render, s.Background)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	s.stereo.Present()
	s.drawOverlay()
	rl.EndDrawing()
}

func (s *Surface) drawOverlay() {
	if s.Overlay != nil {
		s.Overlay()
	}
}

func (s *Surface) checkResize() {
	if rl.IsWindowResized() && s.OnResize != nil {
		s.OnResize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
}

// Close frees the stereo resources and closes the window.
func (s *Surface) Close() {
	s.stereo.Unload()
	rl.CloseWindow()
}
