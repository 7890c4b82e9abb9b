package testkit

import (
	"fmt"
	"strings"
)

// MatchLines checks that every non-blank line of want occurs in got, in
// order, after trimming surrounding whitespace. Lines of got in between are
// ignored, so an expectation may list only the interesting part of the IR.
func MatchLines(got, want string) error {
	gotLines := strings.Split(got, "\n")
	i := 0
	for _, w := range strings.Split(want, "\n") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		for i < len(gotLines) && strings.TrimSpace(gotLines[i]) != w {
			i++
		}
		if i == len(gotLines) {
			return fmt.Errorf("line %q not found (in order) in:\n%s", w, got)
		}
		i++
	}
	return nil
}

// MatchExact compares texts ignoring trailing whitespace of the whole text.
func MatchExact(got, want string) error {
	got = strings.TrimRight(got, " \n")
	want = strings.TrimRight(want, " \n")
	if got != want {
		return fmt.Errorf("mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
	return nil
}
