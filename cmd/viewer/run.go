package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"camera-viewer/internal/asset"
	"camera-viewer/internal/debug"
	"camera-viewer/internal/fallback"
	"camera-viewer/internal/frame"
	"camera-viewer/internal/graphics"
	"camera-viewer/internal/metrics"
	"camera-viewer/internal/model"
	"camera-viewer/internal/presentation"
	"camera-viewer/internal/scene"
	"camera-viewer/internal/viewer"
	"camera-viewer/internal/viewerconfig"
	"camera-viewer/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	windowTitle = "Camera Viewer"
	// Log lines shown on screen after a failed load.
	overlayLogLines = 6
)

func runViewer(cmd *cobra.Command, _ []string) error {
	st, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	prefs := st.prefs
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		prefs.Model = m
	}
	if v, _ := cmd.Flags().GetInt("variant"); v != 0 {
		prefs.Variant = viewerconfig.Variant(v)
	}
	if fps, _ := cmd.Flags().GetBool("fps"); fps {
		prefs.ShowFPS = true
	}
	if mem, _ := cmd.Flags().GetBool("mem"); mem {
		prefs.ShowMem = true
	}
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	log := st.log

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	met := metrics.New()
	if metricsAddr != "" {
		g.Go(func() error {
			log.Info("metrics listening", "addr", metricsAddr)
			if err := met.Serve(gctx, metricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
	}

	v := viewer.New(viewer.Options{
		Resource:           prefs.Model,
		Inline:             prefs.Inline,
		Immersive:          prefs.Immersive,
		ImmersiveSupported: prefs.Variant.Immersive(),
		Fallback:           fallback.Options{Buttons: prefs.Variant.Refined()},
	}, asset.NewLoader(prefs.CacheDir, log), log, met)
	log.Info("viewer starting", "variant", int(prefs.Variant), "model", prefs.Model)

	surface := graphics.Open(windowTitle, width, height)
	scn := scene.New(prefs, log)
	surface.Background = scn.Background
	surface.OnResize = v.Resized

	button := &xr.Button{Visible: prefs.Variant.Immersive()}
	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMem)
	dbg.ShowStatus = true
	dbg.Lines = st.lines.Lines
	surface.Overlay = func() {
		snap := v.Snapshot()
		button.Draw(v.Session().Active())
		dbg.Draw(snap)
	}

	step := func() {
		v.Step()
		if snap := v.Snapshot(); snap.Model != nil && snap.Model.Source == model.SourceFallback {
			dbg.LogLines = overlayLogLines
		}
		if button.Clicked() || (button.Visible && rl.IsKeyPressed(rl.KeyV)) {
			_ = v.ToggleImmersive()
		}
		if rl.IsKeyPressed(rl.KeyG) {
			scn.SetGridVisible(!scn.GridVisible)
		}
		if rl.IsKeyPressed(rl.KeyF) {
			dbg.SetShowFPS(!dbg.ShowFPS)
		}
		if rl.IsKeyPressed(rl.KeyM) {
			dbg.SetShowMemAlloc(!dbg.ShowMemAlloc)
		}
		scn.Update(!button.Hovered())
	}
	render := func() {
		scn.Draw(v.Snapshot())
	}

	driver := &frame.Driver{
		Surface: closeOnDone{Surface: surface, ctx: gctx},
		OnFrame: func(m presentation.Mode) {
			met.Frames.WithLabelValues(m.String()).Inc()
		},
	}

	v.Start(gctx)
	driver.Run(v.Mode, step, render)

	if v.Session().Active() {
		_ = v.Session().End()
	}
	scn.Unload()
	surface.Close()
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("viewer stopped")
	return nil
}

// closeOnDone ends the frame loop when ctx is cancelled, e.g. on SIGINT or a
// failed metrics listener.
type closeOnDone struct {
	frame.Surface
	ctx context.Context
}

func (s closeOnDone) ShouldClose() bool {
	return s.ctx.Err() != nil || s.Surface.ShouldClose()
}
