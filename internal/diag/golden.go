package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ramen/internal/source"
)

type goldenReport struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGolden renders reports into a stable, single-line-per-entry form
// suitable for golden files:
//
//	error R02 main.rm:3:6 duplicate definition of `f`
//
// Entries are sorted by position; the result is empty when there is nothing
// to show. With includeLabels every label becomes its own "label" line.
func FormatGolden(reports []Report, fs *source.FileSet, includeLabels bool) string {
	if fs == nil || len(reports) == 0 {
		return ""
	}

	rendered := make([]goldenReport, 0, len(reports))
	for i := range reports {
		rendered = appendReport(rendered, &reports[i], fs, includeLabels)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendReport(out []goldenReport, r *Report, fs *source.FileSet, includeLabels bool) []goldenReport {
	if loc, ok := resolveSpan(fs, r.Primary); ok {
		out = append(out, goldenReport{
			Severity: severityLabel(r.Severity),
			Code:     r.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(r.Message),
		})
	}
	if !includeLabels {
		return out
	}
	for _, l := range r.Labels {
		lloc, ok := resolveSpan(fs, l.Span)
		if !ok {
			continue
		}
		out = append(out, goldenReport{
			Severity: "label",
			Code:     r.Code.ID(),
			Path:     lloc.Path,
			Line:     lloc.Line,
			Column:   lloc.Column,
			Message:  sanitizeMessage(l.Msg),
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.Path),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
