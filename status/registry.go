// Package status is the process-wide metric registry: round counters,
// effect counts and the current fight phase.
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry groups metrics by value type
// Components cache pointers at construction and write the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Gauge]
	Strings *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Gauge](),
		Strings: NewMetricMap[Label](),
	}
}

// TotalCount returns the number of metrics of all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot renders every metric as text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out[k] = strconv.FormatBool(v.Load())
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = strconv.FormatInt(v.Load(), 10)
	})
	r.Floats.Range(func(k string, v *Gauge) {
		out[k] = fmt.Sprintf("%.2f", v.Get())
	})
	r.Strings.Range(func(k string, v *Label) {
		out[k] = v.Load()
	})
	return out
}
