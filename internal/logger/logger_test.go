package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"brave key", "using key BSAabcdef0123456789", "using key BSA-REDACTED"},
		{"bearer header", "Authorization: Bearer eyJhbGciOi.abc", "Authorization: Bearer REDACTED"},
		{"query param", "GET /search?q=x&api_key=secret", "GET /search?q=x&api_key=REDACTED"},
		{"plain", "nothing to hide", "nothing to hide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.input))
		})
	}
}

func TestAddLog_KeepsRedactedEntries(t *testing.T) {
	var buf bytes.Buffer
	SetConsole(&buf)
	defer SetConsole(os.Stderr)
	ClearLogs()

	AddLog(LevelError, "failed with BSAabcdef0123456789")

	logs := GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, LevelError, logs[0].Level)
	assert.NotContains(t, logs[0].Message, "BSAabcdef0123456789")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestAddLog_RingIsBounded(t *testing.T) {
	SetConsole(nil)
	defer SetConsole(os.Stderr)
	ClearLogs()

	for i := 0; i < maxEntries+25; i++ {
		Infof("entry %d", i)
	}

	logs := GetLogs()
	assert.Len(t, logs, maxEntries)
	assert.Equal(t, "entry 25", logs[0].Message)
}

func TestInit_WritesJSONLines(t *testing.T) {
	SetConsole(nil)
	defer SetConsole(os.Stderr)

	require.NoError(t, Init(t.TempDir()))
	Warnf("plugin %s skipped", "read_url")
	Close()

	f, err := os.Open(GetLogFilePath())
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry LogEntry
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, LevelWarn, entry.Level)
	assert.Equal(t, "plugin read_url skipped", entry.Message)
}
