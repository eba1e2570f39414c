package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/commute/output"
)

// slowThreshold marks timings that are highlighted in reports.
const slowThreshold = 100 * time.Millisecond

// TimingCollector records wall clock durations as a tree.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*span
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	children []*span
}

// NewTimingCollector returns an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins a top-level timer.
func (c *TimingCollector) Start(name string) Timer {
	s := &span{name: name, start: time.Now()}

	c.mu.Lock()
	c.roots = append(c.roots, s)
	c.mu.Unlock()

	return &timer{collector: c, span: s}
}

// Report writes each top-level timer followed by its nested timers:
//
//	report invoice.txt: 12ms
//	├─ invoice.scan (412 lines): 3ms
//	└─ trip.filter (61 legs): 0ms
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	styles := output.NewStyles(w)
	for _, root := range c.roots {
		_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), formatDuration(root.duration()))
		writeChildren(w, styles, root, "")
	}
}

func writeChildren(w io.Writer, styles *output.Styles, parent *span, prefix string) {
	for i, child := range parent.children {
		branch, indent := "├─ ", "│  "
		if i == len(parent.children)-1 {
			branch, indent = "└─ ", "   "
		}

		d := child.duration()
		_, _ = fmt.Fprintf(w, "%s%s: %s\n",
			styles.Dim(prefix+branch),
			child.name,
			styles.Timing(formatDuration(d), d >= slowThreshold),
		)
		writeChildren(w, styles, child, prefix+indent)
	}
}

func (s *span) duration() time.Duration {
	if s.end.IsZero() {
		return 0
	}
	return s.end.Sub(s.start)
}

// formatDuration uses milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

type timer struct {
	collector *TimingCollector
	span      *span
}

func (t *timer) End() {
	t.collector.mu.Lock()
	t.span.end = time.Now()
	t.collector.mu.Unlock()
}

func (t *timer) Child(name string) Timer {
	s := &span{name: name, start: time.Now()}

	t.collector.mu.Lock()
	t.span.children = append(t.span.children, s)
	t.collector.mu.Unlock()

	return &timer{collector: t.collector, span: s}
}
