package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/lbcode/pkg/cache"
	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/observability"
)

const singleBrick = "0 Single brick\n1 15 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n"

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code lberrors.Code
	}{
		{"empty input is fine", Options{}, ""},
		{"ldr name", Options{FileName: "castle.LDR"}, ""},
		{"wrong extension", Options{FileName: "castle.mpd"}, lberrors.ErrCodeInvalidInput},
		{"path in name", Options{FileName: "../castle.ldr"}, lberrors.ErrCodeInvalidInput},
		{"too large", Options{Input: make([]byte, 11), MaxInputBytes: 10}, lberrors.ErrCodePayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				if tt.opts.Logger == nil {
					t.Error("Validate() should set a logger")
				}
				return
			}
			if !lberrors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	if opts.MaxInputBytes != DefaultMaxInputBytes {
		t.Errorf("MaxInputBytes = %d, want %d", opts.MaxInputBytes, DefaultMaxInputBytes)
	}
}

func TestRunnerConvert(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, err := r.Convert(context.Background(), Options{Input: []byte(singleBrick)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := hex.EncodeToString(res.Data); got != "040002000000000000ffff" {
		t.Errorf("Data = %s", got)
	}
	if res.ID == "" {
		t.Error("Result.ID should be set")
	}
	if res.InputHash != cache.Hash([]byte(singleBrick)) {
		t.Errorf("InputHash = %s", res.InputHash)
	}
	if res.Layout.Width != 4 || res.Layout.Height != 2 {
		t.Errorf("Layout = %dx%d, want 4x2", res.Layout.Width, res.Layout.Height)
	}
	if res.Stats.Parts != 1 || res.Stats.Lines != 2 || res.Stats.OutputBytes != 11 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheHit {
		t.Error("NullCache should never hit")
	}
}

func TestRunnerConvertUsesCache(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	model := []byte("2 24 0 0 0 1 1 1\n" + singleBrick)
	first, err := r.Convert(ctx, Options{Input: model})
	if err != nil {
		t.Fatalf("first Convert() error = %v", err)
	}
	if first.CacheHit || mc.sets != 1 {
		t.Fatalf("first run: hit %v, sets %d", first.CacheHit, mc.sets)
	}

	second, err := r.Convert(ctx, Options{Input: model})
	if err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("cached data differs")
	}
	if len(second.Warnings) != 1 || second.Warnings[0].Line != 1 {
		t.Errorf("cached warnings = %v", second.Warnings)
	}
	if first.ID == second.ID {
		t.Error("each conversion should get its own ID")
	}

	strict, err := r.Convert(ctx, Options{Input: model, Strict: true})
	if err != nil {
		t.Fatalf("strict Convert() error = %v", err)
	}
	if strict.CacheHit {
		t.Error("strict mode should use a separate cache key")
	}

	refreshed, _ := r.Convert(ctx, Options{Input: model, Refresh: true})
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerConvertCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	key := r.Keyer.ConversionKey(cache.Hash([]byte(singleBrick)), cache.ConversionKeyOpts{})
	mc.data[key] = []byte("garbage")

	res, err := r.Convert(ctx, Options{Input: []byte(singleBrick)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.CacheHit {
		t.Error("corrupt entry should be treated as a miss")
	}
}

func TestRunnerConvertInvalidCachedLayout(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	// Readable envelope whose data is a truncated LBCode header.
	key := r.Keyer.ConversionKey(cache.Hash([]byte(singleBrick)), cache.ConversionKeyOpts{})
	mc.data[key] = []byte(`{"data":"AAA=","lines":2}`)

	res, err := r.Convert(ctx, Options{Input: []byte(singleBrick)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.CacheHit {
		t.Error("entry with an undecodable layout should be treated as a miss")
	}
	if got, want := hex.EncodeToString(res.Data), "040002000000000000ffff"; got != want {
		t.Errorf("Data = %s, want %s", got, want)
	}

	again, err := r.Convert(ctx, Options{Input: []byte(singleBrick)})
	if err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	if !again.CacheHit {
		t.Error("invalid entry should have been replaced by the fresh result")
	}
}

func TestRunnerConvertErrors(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	_, err := r.Convert(ctx, Options{Input: []byte("1 15 0 0 0 1 0 0\n")})
	if !lberrors.Is(err, lberrors.ErrCodeInvalidFormat) {
		t.Errorf("short line error = %v, want INVALID_FORMAT", err)
	}
	if mc.sets != 0 {
		t.Error("failed conversions must not be cached")
	}

	_, err = r.Convert(ctx, Options{Input: []byte("0 nothing\n"), Strict: true})
	if !lberrors.Is(err, lberrors.ErrCodeEmptyModel) {
		t.Errorf("strict empty error = %v, want EMPTY_MODEL", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Convert(cctx, Options{Input: []byte(singleBrick)}); err != context.Canceled {
		t.Errorf("cancelled Convert() error = %v", err)
	}
}

type countingHooks struct {
	observability.NoopConversionHooks
	mu        sync.Mutex
	started   int
	completed int
	failed    int
}

func (h *countingHooks) OnConvertStart(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *countingHooks) OnConvertComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
	if err != nil {
		h.failed++
	}
}

func TestRunnerHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetConversionHooks(h)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, _ = r.Convert(context.Background(), Options{Input: []byte(singleBrick)})
	_, _ = r.Convert(context.Background(), Options{Input: []byte("x\n")})

	if h.started != 2 || h.completed != 2 || h.failed != 1 {
		t.Errorf("hooks: started %d, completed %d, failed %d", h.started, h.completed, h.failed)
	}
}

func TestRunnerConcurrent(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			model := singleBrick + strings.Repeat("0 pad\n", i)
			if _, err := r.Convert(context.Background(), Options{Input: []byte(model)}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
