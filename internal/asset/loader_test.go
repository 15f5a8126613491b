package asset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"camera-viewer/internal/model"
	"camera-viewer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wait(t *testing.T, f *Future) (*model.Model, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	select {
	case <-f.Done():
	case <-ctx.Done():
		t.Fatal("future did not resolve")
	}
	return f.Wait(ctx)
}

func TestLoadLocalGLB(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteGLB(t, dir, "models/camera.glb", testutil.Triangle)

	l := NewLoader(t.TempDir(), nil)
	mdl, err := wait(t, l.Load(context.Background(), path))
	require.NoError(t, err)
	require.NotNil(t, mdl)

	assert.Equal(t, model.SourceAsset, mdl.Source)
	assert.Equal(t, path, mdl.Resource)
	assert.Equal(t, path, mdl.LocalPath)
	assert.Equal(t, 1, mdl.MeshCount)
	assert.Equal(t, [3]float32{-1, 0, 0}, mdl.Bounds.Min)
	assert.Equal(t, [3]float32{1, 1, 0}, mdl.Bounds.Max)
	assert.Empty(t, mdl.Parts)
	assert.Equal(t, model.IdentityTransform(), mdl.Transform)
}

func TestLoadRemoteGLB(t *testing.T) {
	glb := testutil.GLB(t, testutil.Triangle)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		_, _ = w.Write(glb)
	}))
	defer srv.Close()

	cache := t.TempDir()
	l := NewLoader(cache, nil)
	l.Client = srv.Client()
	mdl, err := wait(t, l.Load(context.Background(), srv.URL+"/models/camera.glb"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "camera.glb"), mdl.LocalPath)
	assert.Equal(t, srv.URL+"/models/camera.glb", mdl.Resource)
}

func TestLoadZippedModel(t *testing.T) {
	dir := t.TempDir()
	zipPath := testutil.WriteZip(t, dir, "camera.zip", map[string][]byte{
		"readme.txt":        []byte("camera"),
		"camera/camera.glb": testutil.GLB(t, testutil.Triangle),
	})

	cache := t.TempDir()
	mdl, err := NewLoader(cache, nil).LoadSync(context.Background(), zipPath)
	require.NoError(t, err)
	assert.Equal(t, zipPath, mdl.Resource)
	assert.Equal(t, filepath.Join(cache, unpackDir, "camera", "camera", "camera.glb"), mdl.LocalPath)
	assert.Equal(t, 1, mdl.MeshCount)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.glb")
	require.NoError(t, os.WriteFile(garbage, []byte("not a model"), 0644))
	empty := testutil.WriteEmptyGLTF(t, dir, "empty.gltf")
	badZip := filepath.Join(dir, "bad.zip")
	require.NoError(t, os.WriteFile(badZip, []byte("not a zip"), 0644))
	noModel := testutil.WriteZip(t, dir, "textures.zip", map[string][]byte{"body.png": []byte("png")})

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	tests := []struct {
		name     string
		resource string
		stage    Stage
	}{
		{"missing file", filepath.Join(dir, "nope.glb"), StageRetrieve},
		{"http 404", srv.URL + "/camera.glb", StageRetrieve},
		{"malformed", garbage, StageParse},
		{"no meshes", empty, StageValidate},
		{"corrupt archive", badZip, StageParse},
		{"archive without model", noModel, StageValidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(t.TempDir(), nil)
			l.Client = srv.Client()
			mdl, err := wait(t, l.Load(context.Background(), tt.resource))
			assert.Nil(t, mdl)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAssetLoad)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.stage, le.Stage)
			assert.Equal(t, tt.resource, le.Resource)
			assert.Contains(t, err.Error(), string(tt.stage))
		})
	}
}

func TestFutureResolvesOnce(t *testing.T) {
	f := newFuture()
	_, ok := f.Poll()
	assert.False(t, ok)

	first := &model.Model{Source: model.SourceAsset}
	f.resolve(Outcome{Model: first})
	f.resolve(Outcome{Err: errors.New("late")})

	o, ok := f.Poll()
	require.True(t, ok)
	assert.Same(t, first, o.Model)
	assert.NoError(t, o.Err)
}

func TestFutureWaitHonoursContext(t *testing.T) {
	f := newFuture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
