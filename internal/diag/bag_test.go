package diag

import (
	"testing"

	"ramen/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(ResUnboundReference, span(uint32(i), uint32(i)+1), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("add #%d: got %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, ResUnknownAttribute, span(4, 5), "warn"))
	b.Add(NewError(ResDuplicateDefinition, span(4, 5), "dup"))
	b.Add(NewError(ResDuplicateDefinition, span(0, 1), "dup"))
	b.Add(NewError(ResDuplicateDefinition, span(0, 1), "dup"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Primary.Start != 0 {
		t.Fatalf("expected first item at offset 0, got %d", items[0].Primary.Start)
	}
	if items[1].Severity != SevError || items[2].Severity != SevWarning {
		t.Fatalf("errors must sort before warnings at the same offset: %+v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() || b.ErrorCount() != 2 {
		t.Fatalf("unexpected counters: errors=%d", b.ErrorCount())
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	for range 3 {
		ReportError(r, LowMissingReturn, span(1, 2), "missing return").
			WithLabel(span(0, 1), "function starts here", 1).
			Emit()
	}
	if b.Len() != 1 {
		t.Fatalf("expected a single report, got %d", b.Len())
	}
	if got := b.Items()[0].Labels; len(got) != 1 || got[0].Msg != "function starts here" {
		t.Fatalf("labels were not forwarded: %+v", got)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		SynUnexpectedToken:     "S01",
		ResUnboundReference:    "R01",
		ResDuplicateDefinition: "R02",
		LowNotValueType:        "L01",
		LowBadIntWidth:         "L04",
		UnknownCode:            "E00",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d: got %s, want %s", code, got, want)
		}
	}
}

func TestReportIsDiagnostic(t *testing.T) {
	var d Diagnostic = NewError(LowBackend, span(3, 4), "boom")
	if !d.IsFatal() {
		t.Fatalf("error report must be fatal")
	}
	if d.Location() != span(3, 4) {
		t.Fatalf("unexpected location %v", d.Location())
	}
	if w := New(SevWarning, ResUnknownAttribute, span(0, 1), "w"); w.IsFatal() {
		t.Fatalf("warning must not be fatal")
	}
}
