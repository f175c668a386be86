package preview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/framepeek-cli/framepeek/capture"
	"github.com/framepeek-cli/framepeek/internal/lru"
	"github.com/framepeek-cli/framepeek/log"
	"github.com/framepeek-cli/framepeek/source"
	"github.com/samber/mo"
)

// Options tune an Engine. Zero values fall back to the documented defaults.
type Options struct {
	// Precision is the quantization bucket size in seconds. Default 1.
	Precision float64

	// Debounce is how long a scrub gesture must settle before a capture is
	// attempted. Default 100ms; negative disables debouncing entirely.
	Debounce time.Duration

	// Capacity bounds the number of cached thumbnails. Default 30.
	Capacity int

	// Width, Height and Quality shape the rasterized output.
	// Defaults 160, 90 and 75.
	Width, Height, Quality int

	// OnUpdate, when set, receives every state snapshot the engine publishes.
	OnUpdate func(State)
}

const (
	defaultDebounce = 100 * time.Millisecond
	defaultCapacity = 30
)

// Engine drives thumbnail previews for one media source. It quantizes
// requested times, debounces scrub gestures, serves repeat positions from a
// bounded cache and discards captures that finish after a newer request
// superseded them.
type Engine struct {
	mu        sync.Mutex
	src       source.Source
	pipe      *capture.Pipeline
	cache     *lru.Cache[string, *capture.Handle]
	sched     *Scheduler
	precision float64
	onUpdate  func(State)
	state     State
	gen       uint64
	cancel    context.CancelFunc
}

// NewEngine builds an engine over src. The engine owns the handles it caches
// and releases them on eviction, rebind and Close.
func NewEngine(src source.Source, options Options) (*Engine, error) {
	if options.Precision <= 0 {
		options.Precision = DefaultPrecision
	}

	if options.Debounce == 0 {
		options.Debounce = defaultDebounce
	}

	if options.Capacity == 0 {
		options.Capacity = defaultCapacity
	}

	if options.Width <= 0 {
		options.Width = capture.DefaultWidth
	}

	if options.Height <= 0 {
		options.Height = capture.DefaultHeight
	}

	if options.Quality <= 0 {
		options.Quality = capture.DefaultQuality
	}

	cache, err := lru.New[string, *capture.Handle](options.Capacity, func(_ string, handle *capture.Handle) {
		handle.Release()
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		src:       src,
		pipe:      capture.NewPipeline(src, options.Width, options.Height, options.Quality),
		cache:     cache,
		precision: options.Precision,
		onUpdate:  options.OnUpdate,
	}
	engine.sched = NewScheduler(options.Debounce, engine.fire)

	return engine, nil
}

// Bind points the engine at a new media target. Pending and in-flight work
// for the previous target is abandoned and every cached thumbnail is
// released before the new target is opened.
func (e *Engine) Bind(target string) error {
	e.teardown()

	if err := e.src.Bind(target); err != nil {
		return err
	}

	log.Infof("bound preview engine to %s", target)

	return nil
}

// RequestPreview asks for a thumbnail at the given playback time. The call
// returns immediately; results arrive through OnUpdate once the gesture
// settles and the capture completes.
func (e *Engine) RequestPreview(seconds float64) {
	e.sched.Request(seconds)
}

// State returns the latest published snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Duration reports the bound target's length in seconds.
func (e *Engine) Duration() float64 {
	return e.src.Duration()
}

// ClearCache releases every cached thumbnail.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache.Clear()
}

// Close tears the engine down and closes the underlying source.
func (e *Engine) Close() error {
	e.teardown()

	return e.src.Close()
}

// teardown abandons pending and in-flight captures and drops cached state.
// Bumping the generation marks any capture still running as stale, so its
// late completion is released instead of published.
func (e *Engine) teardown() {
	e.sched.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	e.gen++
	e.cache.Clear()
	e.state = State{}
}

// fire runs once per settled gesture. Every request supersedes whatever is
// still in flight, so an older capture can never overwrite the outcome of a
// newer one. Cache hits then publish synchronously; misses start a
// generation-tagged capture whose completion is discarded when stale.
func (e *Engine) fire(requested float64) {
	quantized := Quantize(requested, e.precision)
	key := Key(e.src.Target(), quantized)

	e.mu.Lock()

	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	e.gen++

	if handle, ok := e.cache.Get(key); ok {
		e.publishLocked(State{Time: quantized, Thumbnail: mo.Some(handle)})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	gen := e.gen

	e.publishLocked(State{Time: quantized, IsLoading: true})

	go e.run(ctx, cancel, gen, key, quantized)
}

// run performs a single capture and publishes its outcome unless a newer
// generation superseded it while it was in flight.
func (e *Engine) run(ctx context.Context, cancel context.CancelFunc, gen uint64, key string, quantized float64) {
	defer cancel()

	handle, err := e.pipe.Capture(ctx, quantized)

	e.mu.Lock()

	if gen != e.gen {
		e.mu.Unlock()

		if handle != nil {
			handle.Release()
		}

		return
	}

	e.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			e.mu.Unlock()
			return
		}

		log.Warnf("capture at %gs failed: %s", quantized, err)
		e.publishLocked(State{Time: quantized, Err: mo.Some(err.Error())})

		return
	}

	e.cache.Set(key, handle)
	e.publishLocked(State{Time: quantized, Thumbnail: mo.Some(handle)})
}

// publishLocked replaces the snapshot and notifies the observer. The caller
// must hold e.mu; the lock is released before the callback runs.
func (e *Engine) publishLocked(state State) {
	e.state = state
	callback := e.onUpdate
	e.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}
