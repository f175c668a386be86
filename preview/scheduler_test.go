package preview

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// firedValues collects scheduler fire callbacks for inspection.
type firedValues struct {
	mu     sync.Mutex
	values []float64
}

func (f *firedValues) record(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = append(f.values, seconds)
}

func (f *firedValues) snapshot() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]float64(nil), f.values...)
}

func TestScheduler(t *testing.T) {
	Convey("Scheduler", t, func() {
		fired := &firedValues{}

		Convey("A burst of requests fires once with the last value", func() {
			scheduler := NewScheduler(30*time.Millisecond, fired.record)

			for _, seconds := range []float64{1, 2, 3, 4, 5} {
				scheduler.Request(seconds)
			}

			time.Sleep(100 * time.Millisecond)

			So(fired.snapshot(), ShouldResemble, []float64{5})
		})

		Convey("Requests spaced beyond the window each fire", func() {
			scheduler := NewScheduler(10*time.Millisecond, fired.record)

			scheduler.Request(1)
			time.Sleep(50 * time.Millisecond)
			scheduler.Request(2)
			time.Sleep(50 * time.Millisecond)

			So(fired.snapshot(), ShouldResemble, []float64{1, 2})
		})

		Convey("Stop discards the pending request", func() {
			scheduler := NewScheduler(30*time.Millisecond, fired.record)

			scheduler.Request(7)
			scheduler.Stop()

			time.Sleep(100 * time.Millisecond)

			So(fired.snapshot(), ShouldBeEmpty)
		})

		Convey("Restarts at the window boundary never double-fire a value", func() {
			scheduler := NewScheduler(5*time.Millisecond, fired.record)

			for i := 0; i < 20; i++ {
				scheduler.Request(float64(i))
				time.Sleep(5 * time.Millisecond)
			}

			time.Sleep(50 * time.Millisecond)

			values := fired.snapshot()
			So(values, ShouldNotBeEmpty)

			for i := 1; i < len(values); i++ {
				So(values[i], ShouldBeGreaterThan, values[i-1])
			}
		})

		Convey("A non-positive delay fires synchronously", func() {
			scheduler := NewScheduler(0, fired.record)

			scheduler.Request(3)
			scheduler.Request(4)

			So(fired.snapshot(), ShouldResemble, []float64{3, 4})
		})
	})
}
