package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogFilePath is the default viewer log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// maxLines bounds the in-memory history shown by the overlay.
const maxLines = 200

// Logger stores recent lines in memory for the on-screen overlay and appends
// every line to a file on disk. It is an io.Writer so slog can write through it.
type Logger struct {
	mu    sync.Mutex
	path  string
	echo  io.Writer
	lines []string
}

// New returns a Logger appending to path and ensures its directory exists. An
// empty path keeps lines in memory only. echo, if non-nil, gets a copy of each line.
func New(path string, echo io.Writer) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, echo: echo, lines: make([]string, 0)}
}

// Log appends a line prefixed with [timestamp] in local time.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()

	if l.echo != nil {
		_, _ = io.WriteString(l.echo, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Write logs each non-empty line of p.
func (l *Logger) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			l.Log(line)
		}
	}
	return len(p), nil
}

// Lines returns a copy of the stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Slog returns a structured logger writing through l. The time attribute is
// dropped since Log stamps every line, and "error" is shortened to "err".
func (l *Logger) Slog(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}
