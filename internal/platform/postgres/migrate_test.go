package postgres

import (
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_create_accounts.sql", "00002_create_tasks.sql"}, names)

	for _, name := range names {
		content, err := fs.ReadFile(Migrations(), name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(content), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(content), "-- +goose Down"), name)
	}
}

func TestSlogGooseLogger(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	gooseLogger := &slogGooseLogger{logger: log}

	assert.NotPanics(t, func() {
		gooseLogger.Printf("applied %s", "00001_create_accounts.sql")
		gooseLogger.Fatalf("failed %s", "00002_create_tasks.sql")
	})

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, slog.LevelInfo.String(), entries[0]["level"])
	assert.Equal(t, "applied 00001_create_accounts.sql", entries[0]["msg"])
	assert.Equal(t, slog.LevelError.String(), entries[1]["level"])
}
