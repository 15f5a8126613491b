package debug

import (
	"fmt"
	"runtime"

	"camera-viewer/internal/presentation"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	logFontSize    = 10
	logLineHeight  = logFontSize + 2
)

var (
	statusColor = rl.NewColor(40, 40, 40, 255)
	logColor    = rl.NewColor(60, 60, 60, 220)
)

// Debug holds the on-screen overlays: FPS and memory top-right, the
// presentation status top-left, and the tail of the log bottom-left. All
// overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	// LogLines is how many recent log lines to show; 0 hides the log.
	LogLines int
	// Lines supplies the log history, newest last.
	Lines func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders the enabled overlays for snap. Call last in the frame, outside 3D mode.
func (d *Debug) Draw(snap presentation.Snapshot) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, y)
	}

	if d.ShowStatus {
		rl.DrawText(snap.Status(), padding, padding, fontSize, statusColor)
	}
	if d.LogLines > 0 && d.Lines != nil {
		d.drawLog()
	}
}

func (d *Debug) drawLog() {
	lines := d.Lines()
	if len(lines) > d.LogLines {
		lines = lines[len(lines)-d.LogLines:]
	}
	y := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*logLineHeight
	for _, line := range lines {
		rl.DrawText(line, padding, y, logFontSize, logColor)
		y += logLineHeight
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(rl.GetScreenWidth())-w-padding, y, fontSize, rl.Green)
}
