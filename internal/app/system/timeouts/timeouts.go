// Package timeouts centralizes the context deadlines handlers use for
// database and gateway calls. Tiers, smallest to largest:
//
//	Ping   - connectivity checks (health endpoint)
//	Short  - single-document reads
//	Medium - list queries and ordinary writes
//	Long   - multi-collection writes and gateway round trips
//	Batch  - media uploads
package timeouts

import (
	"os"
	"sync"
	"time"
)

type tier struct {
	env string
	d   time.Duration
}

var (
	mu    sync.RWMutex
	tiers = [...]tier{
		{"TIMEOUT_PING", 2 * time.Second},
		{"TIMEOUT_SHORT", 5 * time.Second},
		{"TIMEOUT_MEDIUM", 10 * time.Second},
		{"TIMEOUT_LONG", 30 * time.Second},
		{"TIMEOUT_BATCH", 60 * time.Second},
	}
)

func get(i int) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return tiers[i].d
}

func Ping() time.Duration   { return get(0) }
func Short() time.Duration  { return get(1) }
func Medium() time.Duration { return get(2) }
func Long() time.Duration   { return get(3) }
func Batch() time.Duration  { return get(4) }

// ConfigureFromEnv overrides any tier whose TIMEOUT_* environment
// variable parses as a positive duration. Called once at startup,
// before handlers are built.
func ConfigureFromEnv() {
	mu.Lock()
	defer mu.Unlock()
	for i := range tiers {
		v := os.Getenv(tiers[i].env)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			tiers[i].d = d
		}
	}
}
