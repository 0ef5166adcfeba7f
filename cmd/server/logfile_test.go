package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCappedLogKeepsNewestBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "po.log")
	w, file, err := openCappedLog(path, 10, 4)
	require.NoError(t, err)
	defer file.Close()

	_, err = w.Write([]byte("0123456"))
	require.NoError(t, err)
	_, err = w.Write([]byte("789ab"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "89ab", string(data))

	_, err = w.Write([]byte("cd"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "89abcd", string(data))
}

func TestCappedLogTrimsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "po.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 20)+"tail"), 0o644))

	_, file, err := openCappedLog(path, 10, 4)
	require.NoError(t, err)
	defer file.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "tail", string(data))
}

func TestOpenCappedLogRejectsKeepAboveMax(t *testing.T) {
	_, _, err := openCappedLog(filepath.Join(t.TempDir(), "po.log"), 4, 10)
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}
