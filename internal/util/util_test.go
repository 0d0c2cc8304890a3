package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checksum.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	sum, err := CalculateFileChecksum(path)
	require.NoError(t, err)

	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
}

func TestCalculateFileChecksum_MissingFile(t *testing.T) {
	_, err := CalculateFileChecksum(filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 512, want: "512 B"},
		{bytes: 1024, want: "1.0 KB"},
		{bytes: 1536, want: "1.5 KB"},
		{bytes: 10 * 1024 * 1024, want: "10.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}
