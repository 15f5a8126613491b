package viewer

import (
	"context"
	"log/slog"
	"time"

	"camera-viewer/internal/asset"
	"camera-viewer/internal/fallback"
	"camera-viewer/internal/metrics"
	"camera-viewer/internal/model"
	"camera-viewer/internal/presentation"
	"camera-viewer/internal/session"
)

// Loader starts an asynchronous model load.
type Loader interface {
	Load(ctx context.Context, resource string) *asset.Future
}

// Options configures a Viewer.
type Options struct {
	Resource  string
	Inline    presentation.Profile
	Immersive presentation.Profile
	// ImmersiveSupported enables session requests.
	ImmersiveSupported bool
	Fallback           fallback.Options
}

// Viewer ties the loader, the fallback builder, the session and the presentation
// machine together. Start, Step and the session calls must all happen on the
// frame goroutine; the only other goroutine is the loader's, which touches
// nothing but its future.
type Viewer struct {
	opts    Options
	loader  Loader
	log     *slog.Logger
	metrics *metrics.Metrics

	machine *presentation.Machine
	session *session.Manager

	future   *asset.Future
	started  time.Time
	consumed bool
}

// New returns a viewer that has not started loading. met may be nil.
func New(opts Options, loader Loader, log *slog.Logger, met *metrics.Metrics) *Viewer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	v := &Viewer{
		opts:    opts,
		loader:  loader,
		log:     log,
		metrics: met,
		machine: presentation.NewMachine(opts.Inline, opts.Immersive),
		session: session.NewManager(opts.ImmersiveSupported),
	}
	v.machine.OnChange = v.onChange
	v.session.OnStart(func(id session.ID) {
		v.log.Info("immersive session started", "session", id)
		v.machine.OnSessionStart()
		v.countTransition(presentation.Immersive)
	})
	v.session.OnEnd(func(id session.ID) {
		v.log.Info("immersive session ended", "session", id)
		v.machine.OnSessionEnd()
		v.countTransition(presentation.Inline)
	})
	return v
}

// Start dispatches the model load. Later calls do nothing.
func (v *Viewer) Start(ctx context.Context) {
	if v.future != nil {
		return
	}
	v.started = time.Now()
	v.log.Info("loading model", "resource", v.opts.Resource)
	v.future = v.loader.Load(ctx, v.opts.Resource)
}

// Step consumes the load outcome once it is available: the loaded model, or the
// fallback if loading failed. Called once per frame.
func (v *Viewer) Step() {
	if v.future == nil || v.consumed {
		return
	}
	o, ok := v.future.Poll()
	if !ok {
		return
	}
	v.consumed = true
	mdl := o.Model
	if o.Err != nil || mdl == nil {
		v.log.Warn("model load failed, using fallback", "resource", v.opts.Resource, "error", o.Err)
		mdl = fallback.Build(v.opts.Fallback)
	}
	if err := v.machine.Assign(mdl); err != nil {
		v.log.Error("assign model", "error", err)
		return
	}
	if v.metrics != nil {
		v.metrics.ModelLoads.WithLabelValues(mdl.Source.String()).Inc()
		v.metrics.LoadDuration.Observe(time.Since(v.started).Seconds())
	}
}

// Loaded reports whether a model has been assigned.
func (v *Viewer) Loaded() bool {
	return v.machine.Model() != nil
}

// Snapshot is the state the next frame renders.
func (v *Viewer) Snapshot() presentation.Snapshot {
	return v.machine.Snapshot()
}

// Mode returns the current presentation mode.
func (v *Viewer) Mode() presentation.Mode {
	return v.machine.Mode()
}

// Session exposes the immersive session for the entry control.
func (v *Viewer) Session() *session.Manager {
	return v.session
}

// ToggleImmersive enters or leaves the immersive session. Errors are logged
// and returned; none of them changes the presentation state.
func (v *Viewer) ToggleImmersive() error {
	if err := v.session.Toggle(); err != nil {
		v.log.Warn("immersive toggle", "error", err)
		return err
	}
	return nil
}

// Resized records a viewport change. It never touches mode or model.
func (v *Viewer) Resized(width, height int) {
	v.log.Debug("viewport resized", "width", width, "height", height)
}

func (v *Viewer) onChange(s presentation.Snapshot) {
	source := "none"
	var t model.Transform
	if s.Model != nil {
		source = s.Model.Source.String()
		t = s.Model.Transform
	}
	v.log.Debug("presentation changed", "mode", s.Mode, "model", source, "position", t.Position, "scale", t.Scale)
}

func (v *Viewer) countTransition(m presentation.Mode) {
	if v.metrics != nil {
		v.metrics.Transitions.WithLabelValues(m.String()).Inc()
	}
}
