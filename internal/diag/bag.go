package diag

import (
	"slices"
	"sort"
)

// Bag collects reports for one compilation unit. A zero max means no limit.
type Bag struct {
	items []Report
	max   uint16
}

func NewBag(maxItems int) *Bag {
	if maxItems < 0 || maxItems > 0xFFFF {
		maxItems = 0
	}
	return &Bag{
		items: make([]Report, 0, 8),
		max:   uint16(maxItems), //nolint:gosec // bounds checked above
	}
}

// Add returns false when the bag is already full.
func (b *Bag) Add(r Report) bool {
	if b.max != 0 && len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, r)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) Cap() int { return int(b.max) }

func (b *Bag) HasErrors() bool {
	for _, r := range b.items {
		if r.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for _, r := range b.items {
		if r.Severity == SevWarning {
			return true
		}
	}
	return false
}

// ErrorCount counts reports of error severity.
func (b *Bag) ErrorCount() int {
	n := 0
	for _, r := range b.items {
		if r.Severity >= SevError {
			n++
		}
	}
	return n
}

// Items returns a read-only view of the reports.
func (b *Bag) Items() []Report {
	return b.items
}

func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, r := range other.items {
		if !b.Add(r) {
			return
		}
	}
}

// Sort orders reports by file, start offset, severity (errors first), code
// and message. The sort is stable so reports of one pass keep their order
// when everything else is equal.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		if a.Code != c.Code {
			return a.Code < c.Code
		}
		return a.Message < c.Message
	})
}

// Dedup drops reports with the same code, primary span and message.
func (b *Bag) Dedup() {
	if len(b.items) <= 1 {
		return
	}
	type key struct {
		code Code
		span [3]uint32
		msg  string
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(r Report) bool {
		k := key{r.Code, [3]uint32{uint32(r.Primary.File), r.Primary.Start, r.Primary.End}, r.Message}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}

// Filter keeps only reports matching the predicate.
func (b *Bag) Filter(keep func(Report) bool) {
	b.items = slices.DeleteFunc(b.items, func(r Report) bool { return !keep(r) })
}
