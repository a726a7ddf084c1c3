// Package cache stores rendered artifacts keyed by board content.
//
// Rendering a board is deterministic: the same board bytes and the same
// render options always produce the same document. The cache exploits that
// by keying artifacts on a hash of the board plus the options that affect
// output, so a repeated `pinmap render --cache` skips layout, routing and
// rendering entirely.
//
// # Implementations
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [NullCache]: never stores anything, used when caching is off
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] hashes the key parts; [ScopedKeyer]
// prefixes another keyer's keys so entries from different builds never
// collide.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Entry lifetimes.
const (
	// TTLArtifact bounds rendered documents. Artifacts are pure functions of
	// their key, so this only limits disk growth.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLGraph bounds rendered connectivity graphs.
	TTLGraph = 7 * 24 * time.Hour
)

// ArtifactKeyOpts are the render options that change a pinout document.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	StylesheetHash string  `json:"stylesheet,omitempty"`
	NoHighlight    bool    `json:"no_highlight,omitempty"`
	Scale          float64 `json:"scale,omitempty"`
}

// GraphKeyOpts are the options that change a connectivity graph.
type GraphKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered pinout document.
	ArtifactKey(boardHash string, opts ArtifactKeyOpts) string

	// GraphKey returns the key for a rendered connectivity graph.
	GraphKey(boardHash string, opts GraphKeyOpts) string
}

// DefaultKeyer hashes key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", boardHash, opts)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(boardHash string, opts GraphKeyOpts) string {
	return hashKey("graph", boardHash, opts)
}
