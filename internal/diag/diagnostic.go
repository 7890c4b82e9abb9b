package diag

import (
	"ramen/internal/source"
)

// Label points at a span with a message. When labels overlap, the one with
// the higher Priority is drawn first.
type Label struct {
	Span     source.Span
	Msg      string
	Priority int
}

// Report is the renderable form of a problem.
type Report struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Labels   []Label
}

// ReportContext gives BuildReport access to compilation-unit state. The
// session implements it.
type ReportContext interface {
	Files() *source.FileSet
}

// Diagnostic is implemented by every error type a phase can surface:
// syntax errors, resolution errors, lowering errors.
type Diagnostic interface {
	IsFatal() bool
	Location() source.Span
	BuildReport(ctx ReportContext) Report
}

func New(sev Severity, code Code, primary source.Span, msg string) Report {
	return Report{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Report {
	return New(SevError, code, primary, msg)
}

// WithLabel returns a copy of r with one more label.
func (r Report) WithLabel(sp source.Span, msg string, priority int) Report {
	labels := make([]Label, len(r.Labels), len(r.Labels)+1)
	copy(labels, r.Labels)
	r.Labels = append(labels, Label{Span: sp, Msg: msg, Priority: priority})
	return r
}

// A Report is itself a Diagnostic, so phases that already hold a Report
// (the parser) can feed it to the session directly.

func (r Report) IsFatal() bool { return r.Severity.IsFatal() }
func (r Report) Location() source.Span { return r.Primary }
func (r Report) BuildReport(ReportContext) Report { return r }
func (r Report) Error() string { return r.Code.ID() + ": " + r.Message }
