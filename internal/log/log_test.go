package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_Format(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { setDefault(nil) })

	Info(CatRepo, "Created container", "name", "web-1", "status", "stopped")

	line := buf.String()
	require.Contains(t, line, "[INFO] [repo] Created container name=web-1 status=stopped")
	require.Equal(t, byte('\n'), line[len(line)-1])
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { setDefault(nil) })

	Warn(CatDB, "dangling", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { setDefault(nil) })

	ErrorErr(CatSchema, "Migration failed", errors.New("boom"), "version", 2)
	require.Contains(t, buf.String(), "[ERROR] [schema] Migration failed version=2 error=boom")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { setDefault(nil) })

	SetMinLevel(LevelWarn)
	Info(CatCache, "filtered")
	require.Empty(t, buf.String())

	Error(CatCache, "kept")
	require.Contains(t, buf.String(), "kept")

	buf.Reset()
	SetEnabled(false)
	Error(CatCache, "dropped")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	setDefault(nil)
	require.NotPanics(t, func() {
		Info(CatCLI, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyperstore.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Debug(CatConfig, "Loaded config", "path", "config.yaml")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[DEBUG] [config] Loaded config path=config.yaml")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, LevelWarn, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, LevelInfo, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
}

func TestInitWriter_Detach(t *testing.T) {
	var first, second bytes.Buffer
	detachFirst := InitWriter(&first)
	detachSecond := InitWriter(&second)
	t.Cleanup(func() { setDefault(nil) })

	detachFirst()
	Info(CatCLI, "still attached")
	require.Contains(t, second.String(), "still attached", "detaching a replaced writer is a no-op")
	require.Empty(t, first.String())

	detachSecond()
	Info(CatCLI, "after detach")
	require.NotContains(t, second.String(), "after detach")
}
