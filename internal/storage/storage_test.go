package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_mirror/internal/storage/jsonfile"
	"content_mirror/internal/storage/memory"
	"content_mirror/internal/storage/sqlstore"
)

func TestOpen_SelectsBackendByScheme(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		dsn  string
		want any
	}{
		{"file scheme", "file://" + dir, &jsonfile.Store{}},
		{"bare path", filepath.Join(dir, "bare"), &jsonfile.Store{}},
		{"memory", "memory://", &memory.Store{}},
		{"sqlite", "sqlite3://" + filepath.Join(dir, "mirror.db"), &sqlstore.Store{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(tt.dsn, nil)
			require.NoError(t, err)
			defer backend.Close()
			assert.IsType(t, tt.want, backend)
		})
	}
}

func TestOpen_UnknownScheme(t *testing.T) {
	_, err := Open("redis://localhost:6379", nil)
	assert.Error(t, err)
}
