package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "viewer.txt")
	var echo bytes.Buffer
	l := New(path, &echo)

	l.Log("hello")
	l.Log("world")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "] hello"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.Contains(t, echo.String(), "] world\n")
}

func TestLinesAreBounded(t *testing.T) {
	l := New("", nil)
	for i := 0; i < maxLines+10; i++ {
		l.Log("x")
	}
	assert.Len(t, l.Lines(), maxLines)
}

func TestLinesReturnsCopy(t *testing.T) {
	l := New("", nil)
	l.Log("a")
	got := l.Lines()
	got[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}

func TestSlog(t *testing.T) {
	l := New("", nil)
	log := l.Slog(slog.LevelInfo)

	log.Debug("hidden")
	log.Warn("load failed", "error", errors.New("boom"))

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "level=WARN")
	assert.Contains(t, lines[0], `msg="load failed"`)
	assert.Contains(t, lines[0], "err=boom")
	assert.NotContains(t, lines[0], "time=")
}
