package timeouts

import (
	"testing"
	"time"
)

func restoreTier(t *testing.T, i int) {
	t.Helper()
	mu.RLock()
	prev := tiers[i].d
	mu.RUnlock()
	t.Cleanup(func() {
		mu.Lock()
		tiers[i].d = prev
		mu.Unlock()
	})
}

func TestConfigureFromEnv_OverridesTier(t *testing.T) {
	restoreTier(t, 1)

	t.Setenv("TIMEOUT_SHORT", "7s")
	ConfigureFromEnv()

	if Short() != 7*time.Second {
		t.Errorf("Short: got %v, want 7s", Short())
	}
}

func TestConfigureFromEnv_IgnoresInvalidValues(t *testing.T) {
	restoreTier(t, 3)
	want := Long()

	t.Setenv("TIMEOUT_LONG", "soon")
	ConfigureFromEnv()

	if Long() != want {
		t.Errorf("Long: got %v, want %v unchanged", Long(), want)
	}
}

func TestDefaults_AreOrdered(t *testing.T) {
	if !(Ping() < Short() && Short() < Medium() && Medium() < Long() && Long() < Batch()) {
		t.Errorf("tiers out of order: %v %v %v %v %v", Ping(), Short(), Medium(), Long(), Batch())
	}
}
