package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or basename automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute prints paths as stored in the FileSet.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of reports.
type PrettyOpts struct {
	Color      bool
	Context    int8 // строки контекста вокруг primary
	PathMode   PathMode
	BaseDir    string // для PathModeRelative
	Width      uint16 // максимальная ширина строки, 0 - не ограничено
	ShowLabels bool
}
