package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	window       int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	recent []time.Duration
	next   int
}

// NewProfiler creates a profiler keeping the last window timings of each
// section for percentiles.
func NewProfiler(window int) *Profiler {
	if window < 1 {
		window = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		window:       window,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record adds one timing. After the first timing of a section it does not
// allocate.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	if !p.enabled.Load() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:   name,
			Min:    elapsed,
			Max:    elapsed,
			recent: make([]time.Duration, 0, p.window),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}

	if len(m.recent) < cap(m.recent) {
		m.recent = append(m.recent, elapsed)
	} else {
		m.recent[m.next] = elapsed
	}
	m.next = (m.next + 1) % cap(m.recent)
}

// Measurement returns a copy of the statistics for a named section.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	return m.clone(), true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report renders every section, sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	copies := make(map[string]Measurement, len(p.measurements))
	for name, m := range p.measurements {
		names = append(names, name)
		copies[name] = m.clone()
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m := copies[name]
		fmt.Fprintf(&sb, "%s: count %d, avg %v, min %v, max %v, p99 %v\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
	}
	return sb.String()
}

func (m *Measurement) clone() Measurement {
	c := *m
	c.recent = append([]time.Duration(nil), m.recent...)
	return c
}

// Average returns the mean time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the recent timings.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.recent) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.recent...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	index := int(float64(len(sorted)-1) * p / 100.0)
	if index < 0 {
		index = 0
	} else if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

// BlockProfiler times audio blocks against the real time they represent.
type BlockProfiler struct {
	*Profiler
	sampleRate float64
}

// NewBlockProfiler creates a profiler for blocks rendered at sampleRate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
	}
}

// Load returns the average share of real time spent in the named section
// for blocks of blockSize samples, as a percentage.
func (b *BlockProfiler) Load(name string, blockSize int) float64 {
	m, exists := b.Measurement(name)
	if !exists || m.Count == 0 || blockSize <= 0 || b.sampleRate <= 0 {
		return 0
	}
	blockDuration := float64(blockSize) / b.sampleRate * float64(time.Second)
	return float64(m.Average()) / blockDuration * 100.0
}
