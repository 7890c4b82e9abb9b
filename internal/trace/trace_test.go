package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	root := Begin(ring, ScopeDriver, "compile", 0)
	pass := Begin(ring, ScopePass, "lower", root.ID())
	fn := Begin(ring, ScopeFunction, "fn:identity", pass.ID())
	fn.End("")
	pass.End("")
	root.End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events at phase level, got %d", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Fatalf("pass span must be parented at the driver span")
	}
	if events[3].Detail != "ok" {
		t.Fatalf("expected detail on the driver end event, got %q", events[3].Detail)
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected ring contents: %+v", events)
	}
}

func TestWithRunStampsEvents(t *testing.T) {
	var buf bytes.Buffer
	tr := WithRun(NewStreamTracer(&buf, LevelPhase, FormatNDJSON), "run-1")
	Begin(tr, ScopePass, "bind", 0).WithExtra("errors", "0").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 ndjson lines, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["run"] != "run-1" || ev["kind"] != "end" || ev["name"] != "bind" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestDisabledTracerIsSilent(t *testing.T) {
	if WithRun(Nop, "x") != Nop {
		t.Fatalf("disabled tracer must stay Nop")
	}
	s := Begin(nil, ScopePass, "x", 0)
	if d := s.End(""); d != 0 {
		t.Fatalf("nop span must report zero duration")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewBuildsEachMode(t *testing.T) {
	var buf bytes.Buffer
	for _, tc := range []struct {
		mode      string
		snapshots bool
		streams   bool
	}{
		{"stream", false, true},
		{"ring", true, false},
		{"both", true, true},
	} {
		buf.Reset()
		mode, err := ParseMode(tc.mode)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", tc.mode, err)
		}
		tr, err := New(Config{Level: LevelPhase, Mode: mode, Format: FormatText, Output: &buf})
		if err != nil {
			t.Fatalf("New(%s): %v", tc.mode, err)
		}
		Begin(tr, ScopePass, "bind", 0).End("")

		s, ok := tr.(Snapshotter)
		if ok != tc.snapshots {
			t.Fatalf("%s: Snapshotter = %v, want %v", tc.mode, ok, tc.snapshots)
		}
		if ok && len(s.Snapshot()) != 2 {
			t.Fatalf("%s: expected 2 events in memory, got %d", tc.mode, len(s.Snapshot()))
		}
		if got := buf.Len() > 0; got != tc.streams {
			t.Fatalf("%s: streamed = %v, want %v", tc.mode, got, tc.streams)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected an error for unknown mode")
	}
}

func TestMultiTracerCopiesEvents(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	Point(m, ScopePass, "lower", "", 0)

	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatalf("every member must receive the event")
	}
	if a.Snapshot()[0].Seq == b.Snapshot()[0].Seq {
		t.Fatalf("members must stamp their own copies")
	}
	if len(m.Snapshot()) != 1 {
		t.Fatalf("multi snapshot must come from the first ring")
	}
}

func TestRunEventsFiltersByRun(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	Point(WithRun(ring, "a"), ScopePass, "bind", "", 0)
	Point(WithRun(ring, "b"), ScopePass, "bind", "", 0)
	Point(WithRun(ring, "a"), ScopePass, "lower", "", 0)

	events := RunEvents(ring, "a")
	if len(events) != 2 || events[1].Name != "lower" {
		t.Fatalf("unexpected events for run a: %+v", events)
	}
	if RunEvents(Nop, "a") != nil {
		t.Fatalf("nop keeps no events")
	}
}

func TestTracerInContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer was not carried by the context")
	}
	if FromContext(WithTracer(ctx, nil)) != Nop {
		t.Fatalf("nil tracer must be stored as Nop")
	}
}
