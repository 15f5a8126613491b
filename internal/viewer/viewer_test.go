package viewer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"camera-viewer/internal/asset"
	"camera-viewer/internal/fallback"
	"camera-viewer/internal/metrics"
	"camera-viewer/internal/model"
	"camera-viewer/internal/presentation"
	"camera-viewer/internal/session"
	"camera-viewer/internal/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualLoader hands out a future the test resolves when it wants.
type manualLoader struct {
	calls   int
	resolve func(asset.Outcome)
}

func (l *manualLoader) Load(ctx context.Context, resource string) *asset.Future {
	l.calls++
	f, resolve := asset.NewFuture()
	l.resolve = resolve
	return f
}

func options(buttons bool) Options {
	return Options{
		Resource:           "models/camera.glb",
		Inline:             presentation.DefaultInline,
		Immersive:          presentation.DefaultImmersive,
		ImmersiveSupported: true,
		Fallback:           fallback.Options{Buttons: buttons},
	}
}

func stepUntilLoaded(t *testing.T, v *Viewer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !v.Loaded() {
		if time.Now().After(deadline) {
			t.Fatal("model never assigned")
		}
		v.Step()
		time.Sleep(time.Millisecond)
	}
}

func TestLoadSuccessAppliesInline(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteGLB(t, dir, "models/camera.glb", testutil.Triangle)
	opts := options(false)
	opts.Resource = path

	met := metrics.New()
	v := New(opts, asset.NewLoader(t.TempDir(), nil), nil, met)
	v.Start(context.Background())
	stepUntilLoaded(t, v)

	s := v.Snapshot()
	assert.Equal(t, presentation.Inline, s.Mode)
	assert.Equal(t, model.SourceAsset, s.Model.Source)
	assert.Equal(t, [3]float32{0, -0.5, 0}, s.Model.Transform.Position)
	assert.Equal(t, [3]float32{1.5, 1.5, 1.5}, s.Model.Transform.Scale)
	assert.Equal(t, 1.0, promtest.ToFloat64(met.ModelLoads.WithLabelValues("asset")))
	assert.Equal(t, 0.0, promtest.ToFloat64(met.ModelLoads.WithLabelValues("fallback")))
}

func TestLoadFailureUsesFallback(t *testing.T) {
	for _, buttons := range []bool{false, true} {
		opts := options(buttons)
		opts.Resource = filepath.Join(t.TempDir(), "missing.glb")
		met := metrics.New()
		v := New(opts, asset.NewLoader(t.TempDir(), nil), nil, met)
		v.Start(context.Background())
		stepUntilLoaded(t, v)

		s := v.Snapshot()
		require.NotNil(t, s.Model)
		assert.Equal(t, model.SourceFallback, s.Model.Source)
		assert.Empty(t, s.Model.LocalPath)
		wantParts := 2
		if buttons {
			wantParts = 4
		}
		assert.Len(t, s.Model.Parts, wantParts)
		assert.Equal(t, presentation.DefaultInline.Position, s.Model.Transform.Position)
		assert.Equal(t, 1.0, promtest.ToFloat64(met.ModelLoads.WithLabelValues("fallback")))
		assert.Equal(t, 0.0, promtest.ToFloat64(met.ModelLoads.WithLabelValues("asset")))
	}
}

func TestOutcomeConsumedOnce(t *testing.T) {
	l := &manualLoader{}
	v := New(options(false), l, nil, nil)
	v.Start(context.Background())
	v.Start(context.Background())
	assert.Equal(t, 1, l.calls)

	v.Step()
	assert.False(t, v.Loaded())

	l.resolve(asset.Outcome{Err: &asset.LoadError{Resource: "x", Stage: asset.StageParse, Err: errors.New("bad")}})
	v.Step()
	first := v.Snapshot().Model
	require.NotNil(t, first)
	v.Step()
	assert.Same(t, first, v.Snapshot().Model)
}

func TestSessionBeforeLoadWins(t *testing.T) {
	l := &manualLoader{}
	met := metrics.New()
	v := New(options(false), l, nil, met)
	v.Start(context.Background())

	require.NoError(t, v.ToggleImmersive())
	assert.Equal(t, presentation.Immersive, v.Mode())

	mdl := &model.Model{Source: model.SourceAsset, Transform: model.IdentityTransform()}
	l.resolve(asset.Outcome{Model: mdl})
	v.Step()

	assert.Equal(t, presentation.DefaultImmersive.Position, mdl.Transform.Position)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, mdl.Transform.Scale)

	require.NoError(t, v.ToggleImmersive())
	assert.Equal(t, presentation.Inline, v.Mode())
	assert.Equal(t, presentation.DefaultInline.Position, mdl.Transform.Position)
	assert.Equal(t, 1.0, promtest.ToFloat64(met.Transitions.WithLabelValues("immersive")))
	assert.Equal(t, 1.0, promtest.ToFloat64(met.Transitions.WithLabelValues("inline")))
}

func TestImmersiveUnsupported(t *testing.T) {
	opts := options(false)
	opts.ImmersiveSupported = false
	v := New(opts, &manualLoader{}, nil, nil)
	assert.ErrorIs(t, v.ToggleImmersive(), session.ErrUnsupported)
	assert.Equal(t, presentation.Inline, v.Mode())
}

func TestResizeKeepsState(t *testing.T) {
	l := &manualLoader{}
	v := New(options(false), l, nil, nil)
	v.Start(context.Background())
	l.resolve(asset.Outcome{Model: &model.Model{Source: model.SourceAsset, Transform: model.IdentityTransform()}})
	v.Step()
	require.NoError(t, v.ToggleImmersive())
	before := v.Snapshot()
	want := before.Model.Transform

	v.Resized(640, 480)
	after := v.Snapshot()
	assert.Equal(t, before.Mode, after.Mode)
	assert.Same(t, before.Model, after.Model)
	assert.Equal(t, want, after.Model.Transform)
}
