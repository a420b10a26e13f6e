package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// TestMetricMapGetReturnsStablePointer verifies cached pointers stay valid
func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	a := m.Get("fight.rounds")
	a.Add(2)
	b := m.Get("fight.rounds")

	if a != b {
		t.Fatal("expected the same pointer for the same key")
	}
	if b.Load() != 2 {
		t.Errorf("expected 2, got %d", b.Load())
	}
	if !m.Has("fight.rounds") || m.Has("fight.crits") {
		t.Error("Has reported wrong membership")
	}
}

// TestMetricMapConcurrentGet verifies concurrent creation yields one metric
func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("effect.sounds").Add(1)
		}()
	}
	wg.Wait()

	if m.Count() != 1 {
		t.Errorf("expected 1 metric, got %d", m.Count())
	}
	if got := m.Get("effect.sounds").Load(); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
}

// TestGaugeZeroValue verifies an unset gauge reads 0
func TestGaugeZeroValue(t *testing.T) {
	var g Gauge
	if g.Get() != 0 {
		t.Errorf("expected 0, got %f", g.Get())
	}
	g.Set(0.75)
	if g.Get() != 0.75 {
		t.Errorf("expected 0.75, got %f", g.Get())
	}
}

// TestLabelTruncates verifies long labels are cut
func TestLabelTruncates(t *testing.T) {
	var l Label
	if l.Load() != "" {
		t.Error("zero value should be empty")
	}
	l.Store(strings.Repeat("x", MaxLabelLen+5))
	if len(l.Load()) != MaxLabelLen {
		t.Errorf("expected %d bytes, got %d", MaxLabelLen, len(l.Load()))
	}
}

// TestRegistrySnapshot verifies every type is rendered
func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("fight.rounds").Store(3)
	r.Bools.Get("audio.enabled").Store(true)
	r.Floats.Get("audio.sfx_volume").Set(0.5)
	r.Strings.Get("fight.phase").Store("AwaitingInput")

	snap := r.Snapshot()
	want := map[string]string{
		"fight.rounds":     "3",
		"audio.enabled":    "true",
		"audio.sfx_volume": "0.50",
		"fight.phase":      "AwaitingInput",
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, snap[k])
		}
	}
	if r.TotalCount() != 4 {
		t.Errorf("expected 4 metrics, got %d", r.TotalCount())
	}
}
