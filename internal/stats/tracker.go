package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// SafeHistogram is a thread-safe wrapper around hdrhistogram.
type SafeHistogram struct {
	hist *hdrhistogram.Histogram
	mu   sync.Mutex
}

func NewSafeHistogram() *SafeHistogram {
	// 1us to 10min, 3 significant figures
	h := hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)
	return &SafeHistogram{hist: h}
}

// RecordValue records a latency in microseconds.
func (h *SafeHistogram) RecordValue(v int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.RecordValue(v)
}

func (h *SafeHistogram) ValueAtQuantile(q float64) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.ValueAtQuantile(q)
}

func (h *SafeHistogram) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.Mean()
}

func (h *SafeHistogram) Max() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hist.Max()
}

// Tracker holds the live counters for one running scenario. It only feeds
// the progress display; authoritative summary statistics are computed from
// the full result set once the scenario has finished.
type Tracker struct {
	Requests uint64
	Success  uint64
	Fail     uint64

	// Success-only latencies in microseconds.
	Latency *SafeHistogram
}

func NewTracker() *Tracker {
	return &Tracker{Latency: NewSafeHistogram()}
}

func (t *Tracker) Add(success bool, latency time.Duration) {
	atomic.AddUint64(&t.Requests, 1)
	if success {
		atomic.AddUint64(&t.Success, 1)
		t.Latency.RecordValue(latency.Microseconds())
	} else {
		atomic.AddUint64(&t.Fail, 1)
	}
}

func (t *Tracker) Snapshot() (requests, success, fail uint64) {
	return atomic.LoadUint64(&t.Requests),
		atomic.LoadUint64(&t.Success),
		atomic.LoadUint64(&t.Fail)
}

// P50Ms returns the running median latency in milliseconds.
func (t *Tracker) P50Ms() float64 {
	return float64(t.Latency.ValueAtQuantile(50)) / 1000.0
}
