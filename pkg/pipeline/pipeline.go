// Package pipeline runs LDraw to LBCode conversions for the CLI and the
// API server with shared caching, logging and hooks.
//
// A conversion reads the model, collects parts, sorts and encodes them.
// Results are cached by the SHA-256 of the input so repeated uploads of the
// same model skip the work entirely.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Convert(ctx, pipeline.Options{
//	    Input:    model,
//	    FileName: "castle.ldr",
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("castle.lbcode", result.Data, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lbcode/pkg/cache"
	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/lbcode"
)

// DefaultMaxInputBytes caps the model size accepted by Convert.
const DefaultMaxInputBytes = 32 << 20

// Options configures a single conversion.
type Options struct {
	// Input is the raw LDraw model.
	Input []byte `json:"-"`

	// FileName is the original model name. When set it must be a bare
	// .ldr file name.
	FileName string `json:"file_name,omitempty"`

	// Strict rejects models without any part (EMPTY_MODEL).
	Strict bool `json:"strict,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// MaxInputBytes rejects larger inputs with PAYLOAD_TOO_LARGE.
	// Zero means DefaultMaxInputBytes.
	MaxInputBytes int `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	if o.FileName != "" {
		if err := lberrors.ValidateModelFilename(o.FileName); err != nil {
			return err
		}
	}
	if o.MaxInputBytes == 0 {
		o.MaxInputBytes = DefaultMaxInputBytes
	}
	if len(o.Input) > o.MaxInputBytes {
		return lberrors.New(lberrors.ErrCodePayloadTooLarge,
			"model is %d bytes, limit is %d", len(o.Input), o.MaxInputBytes)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// KeyOpts returns the cache key options for o.
func (o *Options) KeyOpts() cache.ConversionKeyOpts {
	return cache.ConversionKeyOpts{Strict: o.Strict}
}

func (o *Options) converterOptions() []lbcode.Option {
	opts := []lbcode.Option{lbcode.WithLogger(o.Logger)}
	if o.Strict {
		opts = append(opts, lbcode.WithRequireParts())
	}
	return opts
}

// Result is the outcome of a conversion.
type Result struct {
	// ID identifies this conversion in logs and API responses.
	ID string `json:"id"`

	// InputHash is the SHA-256 of the model.
	InputHash string `json:"input_hash"`

	// Data is the LBCode document.
	Data []byte `json:"-"`

	// Layout is Data in decoded form.
	Layout lbcode.Layout `json:"layout"`

	// Warnings lists skipped lines.
	Warnings []lbcode.Warning `json:"warnings,omitempty"`

	Stats    Stats `json:"stats"`
	CacheHit bool  `json:"cache_hit"`
}

// Stats holds size and timing figures of a conversion.
type Stats struct {
	InputBytes  int           `json:"input_bytes"`
	OutputBytes int           `json:"output_bytes"`
	Parts       int           `json:"parts"`
	Lines       int           `json:"lines"`
	Duration    time.Duration `json:"duration"`
}
