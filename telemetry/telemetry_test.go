package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFromContextWithoutCollector(t *testing.T) {
	collector := FromContext(context.Background())
	if collector == nil {
		t.Fatal("FromContext should never return nil")
	}

	timer := collector.Start("ignored")
	timer.Child("also ignored").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	if buf.Len() != 0 {
		t.Errorf("discarding collector should not write, got: %s", buf.String())
	}
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	got, ok := FromContext(ctx).(*TimingCollector)
	if !ok || got != collector {
		t.Error("FromContext should return the collector stored in the context")
	}
}

func TestStartTimerNestsUnderRoot(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	root := collector.Start("report invoice.txt")
	ctx = WithRootTimer(ctx, root)

	scan := StartTimer(ctx, "invoice.scan")
	time.Sleep(2 * time.Millisecond)
	scan.End()

	filter := StartTimer(ctx, "trip.filter")
	filter.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "report invoice.txt: ") {
		t.Errorf("root should come first, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], "├─ invoice.scan: ") {
		t.Errorf("scan should be a middle branch, got: %s", lines[1])
	}
	if !strings.Contains(lines[2], "└─ trip.filter: ") {
		t.Errorf("filter should be the last branch, got: %s", lines[2])
	}
}

func TestStartTimerWithoutRoot(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	StartTimer(ctx, "first").End()
	StartTimer(ctx, "second").End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	if !strings.Contains(out, "first: ") || !strings.Contains(out, "second: ") {
		t.Errorf("both top-level timers should be reported, got: %s", out)
	}
	if strings.Contains(out, "─") {
		t.Errorf("top-level timers should not be drawn as branches, got: %s", out)
	}
}

func TestTimingCollectorDeepNesting(t *testing.T) {
	collector := NewTimingCollector()

	t1 := collector.Start("Level 1")
	t2 := t1.Child("Level 2")
	t3 := t2.Child("Level 3")
	t3.End()
	t2.End()
	t1.End()

	var buf bytes.Buffer
	collector.Report(&buf)

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Level 3") && !strings.HasPrefix(line, "   └─ ") {
			t.Errorf("Level 3 should be indented below Level 2, got: %q", line)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0ms"},
		{1 * time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.duration)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf)

	if buf.Len() != 0 {
		t.Errorf("empty collector should produce no output, got: %s", buf.String())
	}
}
