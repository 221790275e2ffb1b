// Package perf records how long named operations take.
package perf

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
)

// ErrNoTimer is returned by Stop for an operation that was never started
var ErrNoTimer = errors.New("perf: no active timer")

// Metric summarises the recorded durations of one operation
type Metric struct {
	Name  string
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Average returns the mean duration
func (m Metric) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// OpsPerSecond returns how many operations fit in a second at the mean duration
func (m Metric) OpsPerSecond() float64 {
	avg := m.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Monitor times operations against a clock. It is safe for concurrent use.
type Monitor struct {
	clock quartz.Clock

	mu      sync.Mutex
	active  map[string]time.Time
	metrics map[string]*Metric
}

// New returns a monitor that reads time from clock
func New(clock quartz.Clock) *Monitor {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Monitor{
		clock:   clock,
		active:  make(map[string]time.Time),
		metrics: make(map[string]*Metric),
	}
}

// Start begins timing op, restarting it if already running
func (m *Monitor) Start(op string) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[op] = now
}

// Stop ends timing op and records the elapsed time
func (m *Monitor) Stop(op string) (time.Duration, error) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	started, ok := m.active[op]
	if !ok {
		return 0, fmt.Errorf("%w for %q", ErrNoTimer, op)
	}
	delete(m.active, op)

	elapsed := now.Sub(started)
	m.record(op, elapsed)
	return elapsed, nil
}

// Time runs fn and records how long it took under op
func (m *Monitor) Time(op string, fn func()) time.Duration {
	start := m.clock.Now()
	fn()
	elapsed := m.clock.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(op, elapsed)
	return elapsed
}

func (m *Monitor) record(op string, d time.Duration) {
	metric, ok := m.metrics[op]
	if !ok {
		metric = &Metric{Name: op, Min: d, Max: d}
		m.metrics[op] = metric
	}
	metric.Count++
	metric.Total += d
	metric.Min = min(metric.Min, d)
	metric.Max = max(metric.Max, d)
}

// Metric returns the summary for op
func (m *Monitor) Metric(op string) (Metric, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	metric, ok := m.metrics[op]
	if !ok {
		return Metric{}, false
	}
	return *metric, true
}

// Metrics returns every summary sorted by name
func (m *Monitor) Metrics() []Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Metric, 0, len(m.metrics))
	for _, metric := range m.metrics {
		out = append(out, *metric)
	}
	slices.SortFunc(out, func(a, b Metric) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Reset discards all metrics and running timers
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.active)
	clear(m.metrics)
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

// Report writes a table of all metrics to w
func (m *Monitor) Report(w io.Writer) error {
	metrics := m.Metrics()
	if len(metrics) == 0 {
		_, err := fmt.Fprintln(w, "No performance metrics recorded.")
		return err
	}

	fmt.Fprintln(w, titleStyle.Render("Performance Report"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Operation\tCount\tAvg (ms)\tMin (ms)\tMax (ms)\tOps/sec\t")
	for _, metric := range metrics {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.0f\t\n",
			metric.Name,
			metric.Count,
			ms(metric.Average()),
			ms(metric.Min),
			ms(metric.Max),
			metric.OpsPerSecond())
	}
	return tw.Flush()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
