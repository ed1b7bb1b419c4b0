package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func entries(t *testing.T, raw string) []logEntry {
	t.Helper()
	var out []logEntry
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry logEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestDefaultLevelIsWarn(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.Info("rendered row")
	log.Warn("usage snapshot stale")

	got := entries(t, buf.String())
	require.Len(t, got, 1)
	assert.Equal(t, "usage snapshot stale", got[0]["message"])
	assert.Equal(t, "warn", got[0]["level"])
}

func TestFieldsAreAttached(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"widget": "gitBranch", "row": 0}).Debug("widget absent")
	log.WithField("settings", "/tmp/settings.yaml").Error(errors.New("boom"), "failed to load settings")

	got := entries(t, buf.String())
	require.Len(t, got, 2)
	assert.Equal(t, "gitBranch", got[0]["widget"])
	assert.EqualValues(t, 0, got[0]["row"])
	assert.Equal(t, "/tmp/settings.yaml", got[1]["settings"])
	assert.Equal(t, "boom", got[1]["error"])
}

func TestWarningsNumbersEachProblem(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.Warnings("settings problem", []error{errors.New("unknown widget \"modl\""), errors.New("bad color")})

	got := entries(t, buf.String())
	require.Len(t, got, 2)
	assert.EqualValues(t, 1, got[0]["problem"])
	assert.EqualValues(t, 2, got[1]["of"])
	assert.Equal(t, "bad color", got[1]["error"])
}

func TestDisabledLevelDropsEverything(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "disabled", Writer: buf})
	require.NoError(t, err)

	log.Error(errors.New("boom"), "dropped")
	assert.Empty(t, buf.String())
}

func TestFileSinkAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "statusline.log")
	for _, msg := range []string{"first", "second"} {
		log, err := New(Options{File: path})
		require.NoError(t, err)
		log.Warn(msg)
		require.NoError(t, log.Close())
		require.NoError(t, log.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := entries(t, string(data))
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0]["message"])
	assert.Equal(t, "second", got[1]["message"])
}

func TestWriterWinsOverFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "unused.log")
	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf, File: path})
	require.NoError(t, err)
	log.Warn("to writer")

	assert.Contains(t, buf.String(), "to writer")
	assert.NoFileExists(t, path)
}

func TestHumanReadableOutput(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: true, Writer: buf})
	require.NoError(t, err)
	log.Debug("git lookup skipped")

	assert.Contains(t, buf.String(), "git lookup skipped")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestNewRejectsBadInputs(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"loud"`)

	_, err = New(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
}

func TestNilAndDiscardLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("ignored")
		nilLogger.Warn("ignored")
		nilLogger.Warnings("ignored", []error{errors.New("x")})
		nilLogger.Error(errors.New("x"), "ignored")
		require.Nil(t, nilLogger.WithField("k", "v"))
		require.NoError(t, nilLogger.Close())
	})

	discard := Discard()
	require.NotPanics(t, func() {
		discard.Info("dropped")
		discard.WithField("k", "v").Debug("dropped")
		require.NoError(t, discard.Close())
	})
}
