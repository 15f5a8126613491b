package xr

import rl "github.com/gen2brain/raylib-go/raylib"

// Headset parameters of a simulated head-mounted display (Oculus Rift CV1 class).
var defaultDevice = rl.VrDeviceInfo{
	HResolution:            2160,
	VResolution:            1200,
	HScreenSize:            0.133793,
	VScreenSize:            0.0669,
	EyeToScreenDistance:    0.041,
	LensSeparationDistance: 0.07,
	InterpupillaryDistance: 0.07,
	LensDistortionValues:   [4]float32{1.0, 0.22, 0.24, 0.0},
	ChromaAbCorrection:     [4]float32{0.996, -0.004, 1.014, 0.0},
}

// Stereo renders frames side by side for both eyes into an offscreen target and
// presents it to the window. GPU resources are created on first use and
// recreated when the window size changes.
type Stereo struct {
	config rl.VrStereoConfig
	target rl.RenderTexture2D
	width  int32
	height int32
	ready  bool
}

// NewStereo returns a stereo presenter with no GPU resources yet.
func NewStereo() *Stereo {
	return &Stereo{}
}

func (s *Stereo) ensure(width, height int32) {
	if s.ready && width == s.width && height == s.height {
		return
	}
	if s.ready {
		rl.UnloadRenderTexture(s.target)
	} else {
		s.config = rl.LoadVrStereoConfig(defaultDevice)
	}
	s.target = rl.LoadRenderTexture(width, height)
	s.width, s.height = width, height
	s.ready = true
}

// Render draws render once per eye into the offscreen target. Call outside
// BeginDrawing/EndDrawing.
func (s *Stereo) Render(render func(), background rl.Color) {
	s.ensure(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(background)
	rl.BeginVrStereoMode(s.config)
	render()
	rl.EndVrStereoMode()
	rl.EndTextureMode()
}

// Present draws the last rendered stereo frame to the window. Call between
// BeginDrawing and EndDrawing.
func (s *Stereo) Present() {
	if !s.ready {
		return
	}
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(s.target.Texture.Width), -float32(s.target.Texture.Height))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

// Unload frees the stereo config and target.
func (s *Stereo) Unload() {
	if !s.ready {
		return
	}
	rl.UnloadRenderTexture(s.target)
	rl.UnloadVrStereoConfig(s.config)
	s.ready = false
}
