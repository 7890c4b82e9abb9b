package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ramen/internal/diag"
	"ramen/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, label, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		label:  color.New(color.FgBlue),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.label, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует отчёты в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого отчёта печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем метки по приоритету.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	PrettyReports(w, bag.Items(), fs, opts)
}

// PrettyReports is Pretty over a plain slice.
func PrettyReports(w io.Writer, reports []diag.Report, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &reports[i], fs, opts, p)
	}
}

func prettyOne(w io.Writer, r *diag.Report, fs *source.FileSet, opts PrettyOpts, p palette) {
	file := fs.Get(r.Primary.File)
	start, _ := fs.Resolve(r.Primary)
	path := "<unknown>"
	if file != nil {
		path = formatPath(file.Path, opts)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		p.severity(r.Severity).Sprint(r.Severity.String()),
		r.Code.ID(),
		r.Message,
	)
	if file != nil {
		writeContext(w, file, r.Primary, start, opts, p)
	}

	if !opts.ShowLabels || len(r.Labels) == 0 {
		return
	}
	labels := make([]diag.Label, len(r.Labels))
	copy(labels, r.Labels)
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Priority > labels[j].Priority
	})
	for _, l := range labels {
		lf := fs.Get(l.Span.File)
		if lf == nil {
			continue
		}
		ls, _ := fs.Resolve(l.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			p.label.Sprint("label:"), formatPath(lf.Path, opts), ls.Line, ls.Col, l.Msg)
		writeContext(w, lf, l.Span, ls, PrettyOpts{Width: opts.Width}, p)
	}
}

func writeContext(w io.Writer, f *source.File, sp source.Span, start source.LineCol, opts PrettyOpts, p palette) {
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if text == "" && ln != start.Line {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), clip(expandTabs(text), opts.Width))
		if ln != start.Line {
			continue
		}
		pad, width := underline(text, start.Col, sp)
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			p.caret.Sprint("^"+strings.Repeat("~", width-1)),
		)
	}
}

// underline returns the display offset of the caret and the display width of
// the span on its first line (at least 1).
func underline(line string, col uint32, sp source.Span) (pad, width int) {
	startByte := min(int(col-1), len(line))
	pad = runewidth.StringWidth(expandTabs(line[:startByte]))
	endByte := min(startByte+int(sp.Len()), len(line))
	width = max(runewidth.StringWidth(expandTabs(line[startByte:endByte])), 1)
	return pad, width
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint16) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}

func formatPath(path string, opts PrettyOpts) string {
	switch opts.PathMode {
	case PathModeAbsolute:
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if opts.BaseDir == "" {
			return path
		}
		if rel, err := filepath.Rel(opts.BaseDir, path); err == nil {
			return filepath.ToSlash(rel)
		}
		return path
	}
	// auto: короткие пути как есть, длинные абсолютные сокращаем до имени файла
	if filepath.IsAbs(path) && strings.Count(filepath.ToSlash(path), "/") > 3 {
		return filepath.Base(path)
	}
	return path
}
