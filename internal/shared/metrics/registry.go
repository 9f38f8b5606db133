package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type collector interface {
	write(b *strings.Builder)
}

// Registry holds metrics in registration order.
type Registry struct {
	mu         sync.Mutex
	collectors []collector
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(c collector) {
	r.mu.Lock()
	r.collectors = append(r.collectors, c)
	r.mu.Unlock()
}

// Render writes every metric in Prometheus text exposition format.
func (r *Registry) Render() string {
	r.mu.Lock()
	collectors := append([]collector(nil), r.collectors...)
	r.mu.Unlock()

	var b strings.Builder
	for _, c := range collectors {
		c.write(&b)
	}
	return b.String()
}

// Value is a single float sample safe for concurrent use.
type Value struct {
	mu sync.Mutex
	v  float64
}

// Add adds delta, which may be negative for gauges.
func (v *Value) Add(delta float64) {
	v.mu.Lock()
	v.v += delta
	v.mu.Unlock()
}

// Get returns the current value.
func (v *Value) Get() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.v
}

// Vec is a family of values keyed by label values.
type Vec struct {
	name, help, kind string
	labels           []string

	mu     sync.Mutex
	values map[string]*Value
	keys   map[string][]string
}

// CounterVec registers a labelled counter.
func (r *Registry) CounterVec(name, help string, labels ...string) *Vec {
	return r.vec(name, help, "counter", labels)
}

// GaugeVec registers a labelled gauge.
func (r *Registry) GaugeVec(name, help string, labels ...string) *Vec {
	return r.vec(name, help, "gauge", labels)
}

func (r *Registry) vec(name, help, kind string, labels []string) *Vec {
	v := &Vec{name: name, help: help, kind: kind, labels: labels,
		values: make(map[string]*Value), keys: make(map[string][]string)}
	r.add(v)
	return v
}

// With returns the value for the given label values, creating it on first use.
// Missing label values are treated as empty strings.
func (v *Vec) With(labelValues ...string) *Value {
	vals := make([]string, len(v.labels))
	copy(vals, labelValues)
	key := strings.Join(vals, "\xff")

	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.values[key]
	if !ok {
		val = &Value{}
		v.values[key] = val
		v.keys[key] = vals
	}
	return val
}

func (v *Vec) write(b *strings.Builder) {
	writeHeader(b, v.name, v.help, v.kind)

	v.mu.Lock()
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s%s %s\n", v.name, labelPairs(v.labels, v.keys[k]), formatFloat(v.values[k].Get()))
	}
	v.mu.Unlock()
}

// HistogramMetric counts observations into fixed upper bounds.
type HistogramMetric struct {
	name, help string
	bounds     []float64

	mu     sync.Mutex
	counts []uint64
	sum    float64
	count  uint64
}

// Histogram registers a histogram with ascending bucket upper bounds.
func (r *Registry) Histogram(name, help string, bounds []float64) *HistogramMetric {
	h := &HistogramMetric{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
	r.add(h)
	return h
}

// Observe records one sample.
func (h *HistogramMetric) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	if i := sort.SearchFloat64s(h.bounds, value); i < len(h.bounds) {
		h.counts[i]++
	}
}

func (h *HistogramMetric) write(b *strings.Builder) {
	writeHeader(b, h.name, h.help, "histogram")

	h.mu.Lock()
	defer h.mu.Unlock()
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += h.counts[i]
		fmt.Fprintf(b, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(b, "%s_bucket{le=\"+Inf\"} %d\n", h.name, h.count)
	fmt.Fprintf(b, "%s_sum %s\n", h.name, formatFloat(h.sum))
	fmt.Fprintf(b, "%s_count %d\n", h.name, h.count)
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func labelPairs(names, values []string) string {
	if len(names) == 0 {
		return ""
	}
	pairs := make([]string, len(names))
	for i, n := range names {
		pairs[i] = n + "=" + strconv.Quote(values[i])
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
