package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"camera-viewer/internal/archive"
	"camera-viewer/internal/download"
	"camera-viewer/internal/model"

	"github.com/qmuntal/gltf"
)

// DefaultCacheDir is where remote models are saved before parsing.
const DefaultCacheDir = "assets/models/downloaded"

// unpackDir is the CacheDir subdirectory zipped models are extracted into.
const unpackDir = "unpacked"

var errNoMeshes = errors.New("document has no mesh with POSITION data")

// Loader retrieves and validates glTF/GLB models. Local paths are read in place;
// http(s) URLs are downloaded into CacheDir first. A .zip resource is unpacked
// under CacheDir and the model inside it is used.
type Loader struct {
	CacheDir string
	Client   *http.Client
	Log      *slog.Logger
}

// NewLoader returns a loader caching remote models under cacheDir.
func NewLoader(cacheDir string, log *slog.Logger) *Loader {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{CacheDir: cacheDir, Log: log}
}

// Load starts loading resource in a goroutine. The returned future resolves
// exactly once with a model or a *LoadError. There is no retry and no abort:
// ctx only bounds the network request of a remote resource.
func (l *Loader) Load(ctx context.Context, resource string) *Future {
	f := newFuture()
	go func() {
		mdl, err := l.LoadSync(ctx, resource)
		f.resolve(Outcome{Model: mdl, Err: err})
	}()
	return f
}

// LoadSync is the blocking form of Load.
func (l *Loader) LoadSync(ctx context.Context, resource string) (*model.Model, error) {
	l.Log.Debug("loading model", "resource", resource)
	path := resource
	if download.IsRemote(resource) {
		saved, err := download.Fetch(ctx, l.Client, resource, l.CacheDir)
		if err != nil {
			return nil, &LoadError{Resource: resource, Stage: StageRetrieve, Err: err}
		}
		path = saved
	} else if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Resource: resource, Stage: StageRetrieve, Err: err}
	}

	if archive.IsZip(path) {
		extracted, err := archive.ExtractModel(path, filepath.Join(l.CacheDir, unpackDir))
		if err != nil {
			stage := StageParse
			if errors.Is(err, archive.ErrNoModel) {
				stage = StageValidate
			}
			return nil, &LoadError{Resource: resource, Stage: stage, Err: err}
		}
		l.Log.Debug("model unpacked", "archive", path, "model", extracted)
		path = extracted
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &LoadError{Resource: resource, Stage: StageParse, Err: err}
	}
	meshes, bounds, err := inspect(doc)
	if err != nil {
		return nil, &LoadError{Resource: resource, Stage: StageValidate, Err: err}
	}
	l.Log.Info("model loaded", "resource", resource, "meshes", meshes)
	return &model.Model{
		Source:    model.SourceAsset,
		Resource:  resource,
		LocalPath: path,
		MeshCount: meshes,
		Bounds:    bounds,
		Transform: model.IdentityTransform(),
	}, nil
}

// inspect counts meshes with position data and unions their POSITION accessor
// bounds. Node transforms are ignored, so the box is approximate.
func inspect(doc *gltf.Document) (meshes int, bounds model.Bounds, err error) {
	haveBounds := false
	for _, mesh := range doc.Meshes {
		counted := false
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok || int(idx) >= len(doc.Accessors) {
				continue
			}
			if !counted {
				meshes++
				counted = true
			}
			acc := doc.Accessors[idx]
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			b := model.Bounds{
				Min: [3]float32{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
				Max: [3]float32{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
			}
			if haveBounds {
				bounds = bounds.Union(b)
			} else {
				bounds = b
				haveBounds = true
			}
		}
	}
	if meshes == 0 {
		return 0, model.Bounds{}, fmt.Errorf("%w (%d meshes)", errNoMeshes, len(doc.Meshes))
	}
	return meshes, bounds, nil
}
