package scene

import (
	"log/slog"
	"math"

	"camera-viewer/internal/model"
	"camera-viewer/internal/orbit"
	"camera-viewer/internal/presentation"
	"camera-viewer/internal/primitives"
	"camera-viewer/internal/viewerconfig"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 10
	gridMinorAlpha = 50
	// Radians of orbit per pixel of mouse drag.
	dragSensitivity = 0.005
	// Distance units per wheel notch.
	zoomSensitivity = 0.5
)

// specular strength for the stock and refined materials.
const (
	specularStock   = 0.07
	specularRefined = 0.5
)

// Scene holds the cameras, lights and GPU resources for the viewed model.
// Update runs the orbit controls; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	// Camera is the orbit camera used inline.
	Camera rl.Camera3D
	// HeadCamera is the viewer's head in an immersive session: at the origin, looking down -Z.
	HeadCamera  rl.Camera3D
	Background  rl.Color
	GridVisible bool

	controls *orbit.Controls
	prims    *primitives.Registry
	lighting primitives.Lighting
	log      *slog.Logger

	// Asset model: GPU upload is deferred to the first Draw after assignment.
	assetModel  rl.Model
	assetShader rl.Shader
	assetReady  bool
	assetFailed bool
}

// New returns a scene configured from prefs. The refined variant strengthens
// the key light, adds a fill light and a stronger specular highlight.
func New(prefs viewerconfig.ViewerPrefs, log *slog.Logger) *Scene {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Scene{
		Background: hexColor(prefs.Background),
		controls:   orbit.New(),
		prims:      primitives.NewRegistry(),
		log:        log,
	}
	s.controls.DampingFactor = prefs.Damping
	s.setEye(prefs.Eye)

	s.Camera.Position = rl.NewVector3(prefs.Eye[0], prefs.Eye[1], prefs.Eye[2])
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = prefs.FOV
	s.Camera.Projection = rl.CameraPerspective

	s.HeadCamera = s.Camera
	s.HeadCamera.Position = rl.NewVector3(0, 0, 0)
	s.HeadCamera.Target = rl.NewVector3(0, 0, -1)

	s.lighting = lightingFor(prefs)
	return s
}

// lightingFor turns the configured lights into shader inputs.
func lightingFor(prefs viewerconfig.ViewerPrefs) primitives.Lighting {
	amb := hexRGB(prefs.Ambient.Color)
	l := primitives.Lighting{
		Ambient:       [3]float32{amb[0] * prefs.Ambient.Intensity, amb[1] * prefs.Ambient.Intensity, amb[2] * prefs.Ambient.Intensity},
		KeyDir:        prefs.Key.Direction,
		KeyColor:      hexRGB(prefs.Key.Color),
		KeyIntensity:  prefs.Key.Intensity,
		SpecularScale: specularStock,
	}
	if prefs.Variant.Refined() {
		l.KeyIntensity = max(l.KeyIntensity, 1)
		l.FillDir = prefs.Fill.Direction
		l.FillIntensity = prefs.Fill.Intensity
		l.SpecularScale = specularRefined
	}
	return l
}

// setEye points the orbit controls at the origin from eye.
func (s *Scene) setEye(eye [3]float32) {
	x, y, z := float64(eye[0]), float64(eye[1]), float64(eye[2])
	d := math.Sqrt(x*x + y*y + z*z)
	if d == 0 {
		return
	}
	s.controls.Distance = d
	s.controls.Yaw = math.Atan2(x, z)
	s.controls.Pitch = math.Asin(y / d)
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame: left-drag orbits, the wheel zooms. The orbit
// camera keeps easing while damping bleeds off residual motion. pointer is
// false while the mouse is over an overlay control.
func (s *Scene) Update(pointer bool) {
	if pointer && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		s.controls.Rotate(-float64(d.X)*dragSensitivity, float64(d.Y)*dragSensitivity)
	}
	if wheel := rl.GetMouseWheelMove(); pointer && wheel != 0 {
		s.controls.Zoom(float64(wheel) * zoomSensitivity)
	}
	eye := s.controls.Update()
	s.Camera.Position = rl.NewVector3(eye[0], eye[1], eye[2])
}

// Draw renders the model for snap. In immersive mode the head camera is used.
func (s *Scene) Draw(snap presentation.Snapshot) {
	cam := s.Camera
	if snap.Mode == presentation.Immersive {
		cam = s.HeadCamera
	}
	l := s.lighting
	l.ViewPos = [3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z}
	s.prims.SetLighting(l)

	rl.BeginMode3D(cam)
	if s.GridVisible {
		drawGrid()
	}
	if snap.Model != nil {
		s.drawModel(snap.Model, l)
	}
	rl.EndMode3D()
}

func (s *Scene) drawModel(m *model.Model, l primitives.Lighting) {
	if m.Source == model.SourceFallback {
		s.prims.DrawParts(m.Parts, m.Transform)
		return
	}
	s.ensureAsset(m.LocalPath)
	t := m.Transform
	pos := rl.NewVector3(t.Position[0], t.Position[1], t.Position[2])
	scale := rl.NewVector3(t.Scale[0], t.Scale[1], t.Scale[2])
	if !s.assetReady {
		// Upload failed: keep the view usable with the asset's bounds.
		box := rl.NewBoundingBox(
			rl.NewVector3(pos.X+m.Bounds.Min[0]*scale.X, pos.Y+m.Bounds.Min[1]*scale.Y, pos.Z+m.Bounds.Min[2]*scale.Z),
			rl.NewVector3(pos.X+m.Bounds.Max[0]*scale.X, pos.Y+m.Bounds.Max[1]*scale.Y, pos.Z+m.Bounds.Max[2]*scale.Z),
		)
		rl.DrawBoundingBox(box, rl.DarkGray)
		return
	}
	primitives.SetLighting(s.assetShader, l, 30)
	rl.DrawModelEx(s.assetModel, pos, rl.NewVector3(0, 1, 0), 0, scale, rl.White)
}

// ensureAsset uploads the model file the first time it is drawn, after the
// window/OpenGL context exists. A failed upload is logged once.
func (s *Scene) ensureAsset(path string) {
	if s.assetReady || s.assetFailed || path == "" {
		return
	}
	s.assetModel = rl.LoadModel(path)
	if !rl.IsModelValid(s.assetModel) {
		s.assetFailed = true
		s.log.Error("model upload failed", "path", path)
		return
	}
	s.assetShader = primitives.LoadLitTexturedShader()
	if rl.IsShaderValid(s.assetShader) {
		mats := s.assetModel.GetMaterials()
		for i := range mats {
			mats[i].Shader = s.assetShader
		}
	}
	s.assetReady = true
	s.log.Info("model uploaded", "path", path, "meshes", s.assetModel.MeshCount)
}

// Unload frees GPU resources. Call before closing the window.
func (s *Scene) Unload() {
	if s.assetReady {
		// UnloadModel frees meshes and material maps but not textures or shaders.
		unloadTextures(s.assetModel)
		rl.UnloadModel(s.assetModel)
		s.assetReady = false
	}
	if rl.IsShaderValid(s.assetShader) {
		rl.UnloadShader(s.assetShader)
		s.assetShader = rl.Shader{}
	}
	s.prims.Unload()
}

// unloadTextures frees each distinct non-default texture bound to the model's materials.
func unloadTextures(m rl.Model) {
	defaultID := rl.GetTextureIdDefault()
	seen := make(map[uint32]bool)
	for _, mat := range m.GetMaterials() {
		if mat.Maps == nil {
			continue
		}
		for i := int32(0); i < rl.MaxMaterialMaps; i++ {
			tex := mat.GetMap(i).Texture
			if tex.ID == 0 || tex.ID == defaultID || seen[tex.ID] {
				continue
			}
			seen[tex.ID] = true
			rl.UnloadTexture(tex)
		}
	}
}

// drawGrid draws a light grid on the XZ plane under the model.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		start.X, start.Y, start.Z = float32(i), -1, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), -1, float32(gridExtent)
		rl.DrawLine3D(start, end, minor)
		start.X, start.Y, start.Z = float32(-gridExtent), -1, float32(i)
		end.X, end.Y, end.Z = float32(gridExtent), -1, float32(i)
		rl.DrawLine3D(start, end, minor)
	}
}

func hexRGB(c uint32) [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

func hexColor(c uint32) rl.Color {
	return rl.NewColor(uint8(c>>16), uint8(c>>8), uint8(c), 255)
}
