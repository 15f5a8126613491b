package viewerconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"camera-viewer/internal/presentation"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the viewer config file, relative to the process working directory.
const ConfigPath = "config/viewer.yaml"

// DefaultModel is the model resource used when nothing else is configured.
const DefaultModel = "models/camera.glb"

// Variant selects which generation of the viewer runs.
type Variant int

const (
	// VariantBasic: scene, fallback body+lens, orbit controls, no immersive mode.
	VariantBasic Variant = 1
	// VariantImmersive adds the immersive entry control and session hooks.
	VariantImmersive Variant = 2
	// VariantRefined adds lighting/material refinements and fallback buttons.
	VariantRefined Variant = 3
)

// Immersive reports whether the variant offers an immersive session.
func (v Variant) Immersive() bool {
	return v >= VariantImmersive
}

// Refined reports whether the variant uses the refined lighting and fallback.
func (v Variant) Refined() bool {
	return v >= VariantRefined
}

// Light is a light colour (0xRRGGBB), intensity and, for directional lights, the
// direction it comes from.
type Light struct {
	Color     uint32     `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Direction [3]float32 `yaml:"direction,omitempty"`
}

// ViewerPrefs holds viewer preferences. Persisted across runs.
type ViewerPrefs struct {
	Model      string               `yaml:"model"`
	Variant    Variant              `yaml:"variant"`
	CacheDir   string               `yaml:"cache_dir"`
	Background uint32               `yaml:"background"`
	FOV        float32              `yaml:"fov"`
	Eye        [3]float32           `yaml:"eye"`
	Ambient    Light                `yaml:"ambient"`
	Key        Light                `yaml:"key"`
	Fill       Light                `yaml:"fill"`
	Inline     presentation.Profile `yaml:"inline"`
	Immersive  presentation.Profile `yaml:"immersive"`
	ShowFPS    bool                 `yaml:"show_fps"`
	ShowMem    bool                 `yaml:"show_mem"`
	Damping    float64              `yaml:"damping"`
}

// Default returns the preferences of the immersive variant with the stock scene.
func Default() ViewerPrefs {
	return ViewerPrefs{
		Model:      DefaultModel,
		Variant:    VariantImmersive,
		CacheDir:   "assets/models/downloaded",
		Background: 0xf0f0f0,
		FOV:        75,
		Eye:        [3]float32{0, 0, 5},
		Ambient:    Light{Color: 0xffffff, Intensity: 0.5},
		Key:        Light{Color: 0xffffff, Intensity: 0.8, Direction: [3]float32{1, 1, 1}},
		Fill:       Light{Color: 0xffffff, Intensity: 0.3, Direction: [3]float32{-1, 0.5, -1}},
		Inline:     presentation.DefaultInline,
		Immersive:  presentation.DefaultImmersive,
		ShowFPS:    false,
		ShowMem:    false,
		Damping:    0.05,
	}
}

// Load reads preferences from path. Keys missing from the file keep their
// defaults. A missing file returns Default() and no error; an unreadable or
// invalid file returns Default() and the error so the caller can report it.
func Load(path string) (ViewerPrefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return Default(), fmt.Errorf("viewerconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("viewerconfig: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("viewerconfig: %s: %w", path, err)
	}
	return p, nil
}

// Validate checks values the viewer cannot run with.
func (p ViewerPrefs) Validate() error {
	if p.Variant < VariantBasic || p.Variant > VariantRefined {
		return fmt.Errorf("variant %d out of range 1-3", p.Variant)
	}
	if p.Model == "" {
		return errors.New("model is empty")
	}
	if p.Inline.Scale <= 0 || p.Immersive.Scale <= 0 {
		return errors.New("profile scale must be positive")
	}
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("fov %v out of range", p.FOV)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("damping %v out of range (0,1]", p.Damping)
	}
	return nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p ViewerPrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
