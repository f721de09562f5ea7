// Package dummy runs a local stub search server for trying the harness
// without a real cluster. It emulates the _search and _cache/clear
// endpoints with jittered latencies and an optional injected failure rate.
package dummy

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

type ServerConfig struct {
	Port int

	// Latency window per request.
	MinLatency time.Duration
	MaxLatency time.Duration

	// FailRate in [0,1] is the probability of a 500 response.
	FailRate float64
}

func defaulted(cfg ServerConfig) ServerConfig {
	if cfg.MinLatency == 0 {
		cfg.MinLatency = 10 * time.Millisecond
	}
	if cfg.MaxLatency < cfg.MinLatency {
		cfg.MaxLatency = cfg.MinLatency + 40*time.Millisecond
	}
	return cfg
}

// Handler returns the stub's HTTP handler, exposed separately so tests can
// drive it through httptest.
func Handler(cfg ServerConfig) http.Handler {
	cfg = defaulted(cfg)
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			mu.Lock()
			jitter := cfg.MinLatency + time.Duration(rng.Int63n(int64(cfg.MaxLatency-cfg.MinLatency)+1))
			fail := rng.Float64() < cfg.FailRate
			hits := rng.Int63n(100000)
			mu.Unlock()

			time.Sleep(jitter)

			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "injected failure"})
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"took": jitter.Milliseconds(),
				"hits": map[string]interface{}{
					"total": map[string]interface{}{"value": hits, "relation": "eq"},
					"hits":  []interface{}{},
				},
			})

		case strings.HasSuffix(r.URL.Path, "/_cache/clear"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"_shards": {"total": 1, "successful": 1, "failed": 0}}`))

		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"tagline": "searchbench stub server"}`))
		}
	})
	return mux
}

// Start serves the stub on the configured port. Blocks until the server
// exits.
func Start(cfg ServerConfig) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), Handler(cfg))
}
