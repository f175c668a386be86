package preview

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/framepeek-cli/framepeek/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

// stubSource is an in-memory frame source with an optional gate that holds
// frame reads open until the test releases them.
type stubSource struct {
	mu      sync.Mutex
	target  string
	seeks   []float64
	reads   int
	seekErr error
	gate    chan struct{}
}

func (s *stubSource) Bind(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.target = target
	return nil
}

func (s *stubSource) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.target
}

func (s *stubSource) Duration() float64 { return 120 }
func (s *stubSource) Close() error      { return nil }

func (s *stubSource) SeekTo(_ context.Context, seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seekErr != nil {
		return s.seekErr
	}

	s.seeks = append(s.seeks, seconds)
	return nil
}

func (s *stubSource) ReadFrame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	s.reads++
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame := image.NewRGBA(image.Rect(0, 0, 640, 360))
	frame.Set(0, 0, color.RGBA{G: 255, A: 255})
	return frame, nil
}

func (s *stubSource) seekCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.seeks)
}

func waitUpdate(updates chan State) (State, bool) {
	select {
	case state := <-updates:
		return state, true
	case <-time.After(2 * time.Second):
		return State{}, false
	}
}

// waitSettled drains updates until one that is no longer loading arrives.
func waitSettled(updates chan State) (State, bool) {
	for {
		state, ok := waitUpdate(updates)
		if !ok || !state.IsLoading {
			return state, ok
		}
	}
}

func newTestEngine(src *stubSource, updates chan State) *Engine {
	engine, err := NewEngine(src, Options{
		Debounce: -1,
		OnUpdate: func(state State) { updates <- state },
	})
	if err != nil {
		panic(err)
	}

	return engine
}

func TestEngine(t *testing.T) {
	Convey("Engine", t, func() {
		updates := make(chan State, 32)
		src := &stubSource{target: "clip.mp4"}

		Convey("A settled request produces a thumbnail at the quantized time", func() {
			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(41.6)

			state, ok := waitSettled(updates)

			So(ok, ShouldBeTrue)
			So(state.Time, ShouldEqual, 42)
			So(state.Thumbnail.IsPresent(), ShouldBeTrue)
			So(state.Err.IsAbsent(), ShouldBeTrue)
			So(src.seeks, ShouldResemble, []float64{42})
		})

		Convey("A repeated position is served from cache without touching the source", func() {
			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(10)

			first, ok := waitSettled(updates)
			So(ok, ShouldBeTrue)
			So(first.Thumbnail.IsPresent(), ShouldBeTrue)
			So(src.seekCount(), ShouldEqual, 1)

			engine.RequestPreview(10.3)

			second, ok := waitUpdate(updates)
			So(ok, ShouldBeTrue)
			So(second.Time, ShouldEqual, 10)
			So(second.Thumbnail.IsPresent(), ShouldBeTrue)
			So(second.IsLoading, ShouldBeFalse)
			So(src.seekCount(), ShouldEqual, 1)
		})

		Convey("A failed capture surfaces an error and leaves the cache untouched", func() {
			src.seekErr = context.DeadlineExceeded
			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(10)

			state, ok := waitSettled(updates)

			So(ok, ShouldBeTrue)
			So(state.Err.IsPresent(), ShouldBeTrue)
			So(state.Thumbnail.IsAbsent(), ShouldBeTrue)
			So(state.IsLoading, ShouldBeFalse)
			So(engine.cache.Len(), ShouldEqual, 0)
		})

		Convey("A superseded capture is discarded, never published", func() {
			gate := make(chan struct{})
			src.gate = gate

			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(10)

			loading, ok := waitUpdate(updates)
			So(ok, ShouldBeTrue)
			So(loading.IsLoading, ShouldBeTrue)

			engine.RequestPreview(20)
			close(gate)

			state, ok := waitSettled(updates)

			So(ok, ShouldBeTrue)
			So(state.Time, ShouldEqual, 20)
			So(state.Thumbnail.IsPresent(), ShouldBeTrue)
			So(engine.State().Time, ShouldEqual, 20)
		})

		Convey("A cache hit supersedes an older in-flight capture", func() {
			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(10)

			primed, ok := waitSettled(updates)
			So(ok, ShouldBeTrue)
			So(primed.Time, ShouldEqual, 10)

			gate := make(chan struct{})
			src.mu.Lock()
			src.gate = gate
			src.mu.Unlock()

			engine.RequestPreview(20)

			loading, ok := waitUpdate(updates)
			So(ok, ShouldBeTrue)
			So(loading.IsLoading, ShouldBeTrue)

			engine.RequestPreview(10)

			hit, ok := waitUpdate(updates)
			So(ok, ShouldBeTrue)
			So(hit.Time, ShouldEqual, 10)
			So(hit.Thumbnail.IsPresent(), ShouldBeTrue)
			So(hit.IsLoading, ShouldBeFalse)

			close(gate)
			time.Sleep(100 * time.Millisecond)

			So(engine.State().Time, ShouldEqual, 10)
			So(src.seekCount(), ShouldEqual, 2)
		})

		Convey("Rebinding clears the cache and releases every handle", func() {
			engine := newTestEngine(src, updates)
			defer engine.Close()

			engine.RequestPreview(10)

			state, ok := waitSettled(updates)
			So(ok, ShouldBeTrue)

			handle, _ := state.Thumbnail.Get()
			path := handle.Path()
			exists, _ := filesystem.API().Exists(path)
			So(exists, ShouldBeTrue)

			So(engine.Bind("other.mp4"), ShouldBeNil)

			So(engine.cache.Len(), ShouldEqual, 0)
			So(engine.State(), ShouldResemble, State{})

			exists, _ = filesystem.API().Exists(path)
			So(exists, ShouldBeFalse)
		})

		Convey("An invalid cache capacity is rejected at construction", func() {
			_, err := NewEngine(src, Options{Capacity: -1})

			So(err, ShouldNotBeNil)
		})
	})
}
