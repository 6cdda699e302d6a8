package models

import (
	"context"
	"sync"
	"time"
)

// MediaURLSigner interface for generating signed URLs
type MediaURLSigner interface {
	GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error)
}

var (
	mediaSigner MediaURLSigner
	registryMu  sync.RWMutex
)

// RegisterMediaURLSigner sets the URL signer used by Highlight reads
func RegisterMediaURLSigner(signer MediaURLSigner) {
	registryMu.Lock()
	defer registryMu.Unlock()
	mediaSigner = signer
}
