// Package cache stores conversion results keyed by a content hash.
//
// Backends implement [Cache]:
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: shared storage for multi-instance API deployments
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are produced by a [Keyer] so that every caller derives the same key
// for the same model and options:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ConversionKey(cache.Hash(model), cache.ConversionKeyOpts{Strict: true})
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default time-to-live values.
const (
	// TTLConversion applies to encoded LBCode documents. Conversion is
	// deterministic, so entries only expire to bound disk and memory use.
	TTLConversion = 7 * 24 * time.Hour
)

// FormatVersion is mixed into every conversion key. Bump it when the
// encoder output changes for the same input.
const FormatVersion = 1

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ConversionKeyOpts holds the options that change conversion output.
type ConversionKeyOpts struct {
	Strict bool `json:"strict"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ConversionKey returns the key for the LBCode encoding of the model
	// whose SHA-256 is inputHash.
	ConversionKey(inputHash string, opts ConversionKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ConversionKey implements Keyer.
func (DefaultKeyer) ConversionKey(inputHash string, opts ConversionKeyOpts) string {
	return hashKey(fmt.Sprintf("lbcode:v%d", FormatVersion), inputHash, opts)
}
