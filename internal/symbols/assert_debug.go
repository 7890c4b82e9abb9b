//go:build !ramen_release

package symbols

import "fmt"

// DebugAssertions reports whether internal invariant checks panic.
const DebugAssertions = true

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
