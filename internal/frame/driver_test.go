package frame

import (
	"testing"

	"camera-viewer/internal/presentation"

	"github.com/stretchr/testify/assert"
)

type fakeSurface struct {
	frames int
	limit  int
	calls  []string
}

func (s *fakeSurface) ShouldClose() bool { return s.frames >= s.limit }

func (s *fakeSurface) Inline(render func()) {
	s.frames++
	s.calls = append(s.calls, "inline")
	render()
}

func (s *fakeSurface) Immersive(render func()) {
	s.frames++
	s.calls = append(s.calls, "immersive")
	render()
}

func TestRunSchedulesByMode(t *testing.T) {
	surf := &fakeSurface{limit: 4}
	mode := presentation.Inline
	steps := 0
	renders := 0
	var seen []presentation.Mode

	d := &Driver{Surface: surf, OnFrame: func(m presentation.Mode) { seen = append(seen, m) }}
	d.Run(
		func() presentation.Mode { return mode },
		func() {
			steps++
			if steps == 2 {
				mode = presentation.Immersive
			}
			if steps == 4 {
				mode = presentation.Inline
			}
		},
		func() { renders++ },
	)

	assert.Equal(t, []string{"inline", "immersive", "immersive", "inline"}, surf.calls)
	assert.Equal(t, 4, steps)
	assert.Equal(t, 4, renders)
	assert.Equal(t, []presentation.Mode{
		presentation.Inline, presentation.Immersive, presentation.Immersive, presentation.Inline,
	}, seen)
}

func TestRunStopsWhenSurfaceCloses(t *testing.T) {
	surf := &fakeSurface{limit: 0}
	d := &Driver{Surface: surf}
	d.Run(func() presentation.Mode { return presentation.Inline }, nil, func() { t.Fatal("rendered after close") })
	assert.Empty(t, surf.calls)
}
