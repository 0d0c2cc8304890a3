package service

import "context"

// ArtifactStore resolves model artifacts to local files the inference
// runtime can load. Resolution performs a lightweight existence probe
// before any download; a missing artifact is a resolution error, never a
// crash.
type ArtifactStore interface {
	Resolve(ctx context.Context, source string) (string, error)
}
