//go:build ramen_release

package symbols

const DebugAssertions = false

func assertf(bool, string, ...any) {}
