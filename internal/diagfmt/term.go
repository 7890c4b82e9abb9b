package diagfmt

import (
	"math"
	"os"

	"fortio.org/safecast"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ColorMode is the user-facing tri-state for colored output.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// UseColor resolves mode against f. In auto mode color is enabled only for
// terminals and only when NO_COLOR is unset.
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the width of the terminal behind f, or 0 when f is
// not a terminal. Widths beyond uint16 are clamped.
func TerminalWidth(f *os.File) uint16 {
	if f == nil {
		return 0
	}
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil || !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return clampWidth(w)
}

func clampWidth(w int) uint16 {
	if w <= 0 {
		return 0
	}
	width, err := safecast.Conv[uint16](w)
	if err != nil {
		return math.MaxUint16
	}
	return width
}
