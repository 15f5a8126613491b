package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"camera-viewer/internal/env"
	"camera-viewer/internal/logger"
	"camera-viewer/internal/viewerconfig"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "camera-viewer",
	Short: "Camera model viewer with an inline and an immersive presentation",
	Long: `camera-viewer loads a glTF camera model from a local path or URL and shows it
in an orbitable window. If the model cannot be loaded a procedural camera is
shown instead. Variants 2 and 3 offer a stereo immersive mode.`,
	SilenceUsage: true,
	RunE:         runViewer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", viewerconfig.ConfigPath, "Viewer config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before flags are read")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", logger.LogFilePath, "Log file; empty keeps logs in memory")

	rootCmd.Flags().String("model", "", "Model path or URL (overrides $"+env.ModelVar+" and the config)")
	rootCmd.Flags().Int("variant", 0, "Viewer variant 1-3 (0 uses the config)")
	rootCmd.Flags().String("metrics-addr", "", "Serve /metrics and /healthz on this address, e.g. :9090")
	rootCmd.Flags().Int("width", 1280, "Window width")
	rootCmd.Flags().Int("height", 720, "Window height")
	rootCmd.Flags().Bool("fps", false, "Show the FPS overlay")
	rootCmd.Flags().Bool("mem", false, "Show the heap allocation overlay")
}

// setup holds what every command needs: the preferences and the logger.
type setup struct {
	prefs viewerconfig.ViewerPrefs
	log   *slog.Logger
	lines *logger.Logger
}

// loadSetup reads the env file, the config file and the model override in that
// order. Config problems are logged and the defaults used.
func loadSetup(cmd *cobra.Command) (*setup, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	levelName, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	cfgPath, _ := cmd.Flags().GetString("config")

	level, err := parseLevel(levelName)
	if err != nil {
		return nil, err
	}
	lines := logger.New(logFile, os.Stderr)
	log := lines.Slog(level)

	if set, err := env.Load(envFile); err != nil {
		log.Warn("env file", "path", envFile, "error", err)
	} else if len(set) > 0 {
		log.Debug("env file loaded", "path", envFile, "keys", set)
	}

	prefs, err := viewerconfig.Load(cfgPath)
	if err != nil {
		log.Warn("config invalid, using defaults", "error", err)
	}
	if m := os.Getenv(env.ModelVar); m != "" {
		prefs.Model = m
	}
	return &setup{prefs: prefs, log: log, lines: lines}, nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}
