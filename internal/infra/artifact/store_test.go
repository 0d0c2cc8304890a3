package artifact

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *BlobStore {
	return &BlobStore{logger: slog.New(slog.DiscardHandler)}
}

func TestBlobStore_Resolve_LocalPath(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "detect.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("model-bytes"), 0o600))

	resolved, err := newTestStore().Resolve(context.Background(), modelPath)
	require.NoError(t, err)

	assert.Equal(t, modelPath, resolved)
}

func TestBlobStore_Resolve_LocalPathMissing(t *testing.T) {
	_, err := newTestStore().Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.onnx"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestBlobStore_Resolve_EmptySource(t *testing.T) {
	_, err := newTestStore().Resolve(context.Background(), "")

	assert.Error(t, err)
}

func TestBlobStore_Resolve_FileURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detect.onnx"), []byte("model-bytes"), 0o600))

	resolved, err := newTestStore().Resolve(context.Background(), "file://"+dir+"/detect.onnx")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(resolved) })

	// Staged copy carries the artifact contents
	data, err := os.ReadFile(resolved)
	require.NoError(t, err)
	assert.Equal(t, []byte("model-bytes"), data)

	// Staged into a temp file, not the original
	assert.NotEqual(t, filepath.Join(dir, "detect.onnx"), resolved)

	info, err := os.Stat(resolved)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0), info.Mode()&fs.ModeType)
}

func TestBlobStore_Resolve_FileURLMissingKey(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestStore().Resolve(context.Background(), "file://"+dir+"/nope.onnx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSplitSourceURL(t *testing.T) {
	tests := []struct {
		source     string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{source: "file:///opt/models/detect.onnx", wantBucket: "file:///opt/models", wantKey: "detect.onnx"},
		{source: "gs://bucket/models/detect.onnx", wantBucket: "gs://bucket/models", wantKey: "detect.onnx"},
		{source: "s3://bucket/detect.onnx", wantBucket: "s3://bucket", wantKey: "detect.onnx"},
		{source: "file:///detect.onnx", wantBucket: "file://", wantKey: "detect.onnx"},
		{source: "gs://bucket/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			bucketURL, key, err := splitSourceURL(tt.source)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucketURL)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
