package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/lbcode/pkg/cache"
	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/lbcode"
	"github.com/matzehuels/lbcode/pkg/observability"
)

const keyType = "conversion"

// Runner executes conversions with caching. It holds no per-conversion
// state, so one Runner may serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to stored results. Zero means cache.TTLConversion.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// keyer selects the DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLConversion,
	}
}

// cachedConversion is the cache envelope. Data alone would lose the
// warnings and line count of the original run.
type cachedConversion struct {
	Data     []byte           `json:"data"`
	Warnings []lbcode.Warning `json:"warnings,omitempty"`
	Lines    int              `json:"lines"`
}

// Convert turns opts.Input into an LBCode document. Model errors are
// returned unchanged so callers can map their codes; cache failures are
// logged and otherwise ignored.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{
		ID:        uuid.NewString(),
		InputHash: cache.Hash(opts.Input),
	}
	logger := opts.Logger.With("id", res.ID)
	hooks := observability.Conversion()
	hooks.OnConvertStart(ctx, res.ID, len(opts.Input))

	key := r.Keyer.ConversionKey(res.InputHash, opts.KeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, logger); ok {
			res.CacheHit = true
			res.Data = cached.Data
			res.Warnings = cached.Warnings
			res.Stats.Lines = cached.Lines
		}
	}

	if !res.CacheHit {
		copts := opts
		copts.Logger = logger
		if err := r.convert(res, copts); err != nil {
			res.Stats.Duration = time.Since(start)
			hooks.OnConvertComplete(ctx, res.ID, 0, res.Stats.Duration, err)
			logger.Debug("conversion failed", "code", lberrors.GetCode(err), "err", err)
			return nil, err
		}
		r.store(ctx, key, res, logger)
	}

	layout, err := lbcode.Decode(res.Data)
	if err != nil {
		return nil, lberrors.Wrap(lberrors.ErrCodeInternal, err, "decode result")
	}
	res.Layout = layout
	res.Stats.InputBytes = len(opts.Input)
	res.Stats.OutputBytes = len(res.Data)
	res.Stats.Parts = len(layout.Records)
	res.Stats.Duration = time.Since(start)

	hooks.OnConvertComplete(ctx, res.ID, res.Stats.Parts, res.Stats.Duration, nil)
	logger.Info("converted model",
		"parts", res.Stats.Parts,
		"width", layout.Width,
		"height", layout.Height,
		"bytes", res.Stats.OutputBytes,
		"cached", res.CacheHit,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) convert(res *Result, opts Options) error {
	s, err := lbcode.Collect(bytes.NewReader(opts.Input), opts.converterOptions()...)
	if err != nil {
		return err
	}
	data, err := lbcode.Encode(s)
	if err != nil {
		return err
	}
	res.Data = data
	res.Warnings = s.Warnings
	res.Stats.Lines = s.Line
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (cachedConversion, bool) {
	var entry cachedConversion
	raw, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.Debug("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return entry, false
	}
	if _, err := lbcode.Decode(entry.Data); err != nil {
		logger.Warn("discarding invalid cached layout", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return cachedConversion{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return entry, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, logger *log.Logger) {
	raw, err := json.Marshal(cachedConversion{
		Data:     res.Data,
		Warnings: res.Warnings,
		Lines:    res.Stats.Lines,
	})
	if err != nil {
		return
	}
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLConversion
	}
	if err := r.Cache.Set(ctx, key, raw, ttl); err != nil {
		logger.Warn("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(raw))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
