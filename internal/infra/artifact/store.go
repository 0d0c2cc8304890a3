// Package artifact stages model artifacts from local paths or blob
// buckets onto the local filesystem for the inference runtime.
package artifact

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dispatch/internal/domain/service"
	"dispatch/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket driver for file:// artifact sources.
	_ "gocloud.dev/blob/fileblob"
)

// BlobStore resolves artifact sources through gocloud blob buckets so the
// same probe/fetch path works for local files, file:// URLs, and cloud
// storage.
type BlobStore struct {
	logger *slog.Logger
}

// BlobStoreParams holds dependencies for the blob artifact store.
type BlobStoreParams struct {
	fx.In

	Logger *slog.Logger
}

// NewBlobStore creates an artifact store backed by gocloud blob buckets.
func NewBlobStore(params BlobStoreParams) service.ArtifactStore {
	return &BlobStore{logger: params.Logger}
}

// Resolve probes the artifact for existence and returns a local path the
// runtime can open. Plain filesystem paths are stat-probed in place;
// bucket URLs are staged into a temporary file.
func (s *BlobStore) Resolve(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", errors.New("model artifact source is empty")
	}

	if !strings.Contains(source, "://") {
		return s.resolveLocal(source)
	}

	bucketURL, key, err := splitSourceURL(source)
	if err != nil {
		return "", err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return "", errors.Wrapf(err, "open artifact bucket %s", bucketURL)
	}
	defer bucket.Close()

	// Lightweight existence probe before any download attempt
	exists, err := bucket.Exists(ctx, key)
	if err != nil {
		return "", errors.Wrapf(err, "probe artifact %s", source)
	}
	if !exists {
		return "", errors.Errorf("model artifact %s not found", source)
	}

	return s.stage(ctx, bucket, key)
}

func (s *BlobStore) resolveLocal(source string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", errors.Wrapf(err, "model artifact %s not found", source)
	}
	if info.IsDir() {
		return "", errors.Errorf("model artifact %s is a directory", source)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Wrap(err, "resolve artifact path")
	}

	s.logger.Info("Model artifact resolved locally",
		slog.String("path", abs),
		slog.String("size", util.FormatBytes(info.Size())),
	)

	return abs, nil
}

func (s *BlobStore) stage(ctx context.Context, bucket *blob.Bucket, key string) (string, error) {
	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return "", errors.Wrapf(err, "read artifact %s", key)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp("", "model-*"+path.Ext(key))
	if err != nil {
		return "", errors.Wrap(err, "create artifact staging file")
	}

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())

		return "", errors.Wrapf(err, "stage artifact %s", key)
	}

	checksum, err := util.CalculateFileChecksum(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())

		return "", err
	}

	s.logger.Info("Model artifact staged",
		slog.String("key", key),
		slog.String("path", tmp.Name()),
		slog.String("size", util.FormatBytes(written)),
		slog.String("sha256", checksum),
	)

	return tmp.Name(), nil
}

// splitSourceURL splits a full artifact URL into the bucket URL and the
// object key. Example: file:///opt/models/detect.onnx ->
// ("file:///opt/models", "detect.onnx").
func splitSourceURL(source string) (bucketURL, key string, err error) {
	schemeEnd := strings.Index(source, "://")
	rest := source[schemeEnd+len("://"):]

	lastSlash := strings.LastIndex(rest, "/")
	if lastSlash < 0 || lastSlash == len(rest)-1 {
		return "", "", errors.Errorf("artifact source %s has no object key", source)
	}

	return source[:schemeEnd+len("://")] + rest[:lastSlash], rest[lastSlash+1:], nil
}
