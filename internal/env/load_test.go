package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nCV_TEST_A=plain\nexport CV_TEST_B=\"quoted value\"\nCV_TEST_C='single'\nnot a pair\n=novalue\nCV_TEST_KEEP=fromfile\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CV_TEST_KEEP", "fromshell")
	for _, k := range []string{"CV_TEST_A", "CV_TEST_B", "CV_TEST_C"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CV_TEST_A", "CV_TEST_B", "CV_TEST_C"}, set)
	assert.Equal(t, "plain", os.Getenv("CV_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("CV_TEST_B"))
	assert.Equal(t, "single", os.Getenv("CV_TEST_C"))
	assert.Equal(t, "fromshell", os.Getenv("CV_TEST_KEEP"))
}

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
	assert.Empty(t, set)
}
