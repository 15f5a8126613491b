package presentation

import (
	"testing"

	"camera-viewer/internal/fallback"
	"camera-viewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine() *Machine {
	return NewMachine(DefaultInline, DefaultImmersive)
}

func assetModel() *model.Model {
	return &model.Model{Source: model.SourceAsset, Resource: "models/camera.glb", Transform: model.IdentityTransform()}
}

func TestNewMachineStartsInline(t *testing.T) {
	m := newMachine()
	assert.Equal(t, Inline, m.Mode())
	assert.Nil(t, m.Model())
}

func TestAssignAppliesInlineProfile(t *testing.T) {
	m := newMachine()
	mdl := assetModel()
	require.NoError(t, m.Assign(mdl))

	assert.Same(t, mdl, m.Model())
	assert.Equal(t, Inline, m.Mode())
	assert.Equal(t, [3]float32{0, -0.5, 0}, mdl.Transform.Position)
	assert.Equal(t, [3]float32{1.5, 1.5, 1.5}, mdl.Transform.Scale)
}

func TestAssignOnlyOnce(t *testing.T) {
	m := newMachine()
	first := assetModel()
	require.NoError(t, m.Assign(first))

	second := fallback.Build(fallback.Options{})
	assert.ErrorIs(t, m.Assign(second), ErrAlreadyAssigned)
	assert.Same(t, first, m.Model())
	assert.Equal(t, model.IdentityTransform(), second.Transform)

	assert.ErrorIs(t, newMachine().Assign(nil), ErrNilModel)
}

func TestRoundTripRestoresInline(t *testing.T) {
	m := newMachine()
	mdl := assetModel()
	require.NoError(t, m.Assign(mdl))
	want := mdl.Transform

	m.OnSessionStart()
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, mdl.Transform.Scale)
	assert.Equal(t, DefaultImmersive.Position, mdl.Transform.Position)

	m.OnSessionEnd()
	assert.Equal(t, want, mdl.Transform)
}

func TestSessionStartBeforeAssign(t *testing.T) {
	m := newMachine()
	m.OnSessionStart()
	assert.Equal(t, Immersive, m.Mode())
	assert.Nil(t, m.Model())

	mdl := fallback.Build(fallback.Options{})
	require.NoError(t, m.Assign(mdl))
	assert.Equal(t, DefaultImmersive.Position, mdl.Transform.Position)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, mdl.Transform.Scale)
}

func TestStartThenEndEndsInline(t *testing.T) {
	for _, assignAfter := range []bool{false, true} {
		m := newMachine()
		mdl := assetModel()
		if !assignAfter {
			require.NoError(t, m.Assign(mdl))
		}
		m.OnSessionStart()
		m.OnSessionEnd()
		if assignAfter {
			require.NoError(t, m.Assign(mdl))
		}
		assert.Equal(t, Inline, m.Mode())
		assert.Equal(t, DefaultInline.Position, mdl.Transform.Position)
		assert.Equal(t, [3]float32{1.5, 1.5, 1.5}, mdl.Transform.Scale)
	}
}

func TestRepeatedSignalsAreIdempotent(t *testing.T) {
	m := newMachine()
	mdl := assetModel()
	require.NoError(t, m.Assign(mdl))

	m.OnSessionStart()
	once := mdl.Transform
	m.OnSessionStart()
	assert.Equal(t, once, mdl.Transform)
	assert.Equal(t, Immersive, m.Mode())
}

func TestOnChange(t *testing.T) {
	m := newMachine()
	var got []Snapshot
	m.OnChange = func(s Snapshot) { got = append(got, s) }

	m.OnSessionStart()
	mdl := assetModel()
	require.NoError(t, m.Assign(mdl))
	m.OnSessionEnd()

	require.Len(t, got, 3)
	assert.Equal(t, Immersive, got[0].Mode)
	assert.Nil(t, got[0].Model)
	assert.Same(t, mdl, got[1].Model)
	assert.Equal(t, Inline, got[2].Mode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "inline", Inline.String())
	assert.Equal(t, "immersive", Immersive.String())
}

func TestSnapshotStatus(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"loading inline", Snapshot{Mode: Inline}, "inline | loading"},
		{"loading immersive", Snapshot{Mode: Immersive}, "immersive | loading"},
		{"asset inline", Snapshot{Mode: Inline, Model: assetModel()}, "inline | asset"},
		{"asset immersive", Snapshot{Mode: Immersive, Model: assetModel()}, "immersive | asset"},
		{"fallback inline", Snapshot{Mode: Inline, Model: fallback.Build(fallback.Options{})}, "inline | fallback"},
		{"fallback immersive", Snapshot{Mode: Immersive, Model: fallback.Build(fallback.Options{Buttons: true})}, "immersive | fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Status())
		})
	}
}
