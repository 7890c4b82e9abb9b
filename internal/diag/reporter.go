package diag

import "ramen/internal/source"

// Reporter - минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter (фильтр дублей).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, labels []Label)
}

// ReportBuilder accumulates labels before emitting to a Reporter.
type ReportBuilder struct {
	reporter Reporter
	report   Report
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		report:   New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError reports.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning reports.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithLabel(sp source.Span, msg string, priority int) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.report = b.report.WithLabel(sp, msg, priority)
	return b
}

// Emit sends the report to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		r := b.report
		b.reporter.Report(r.Code, r.Severity, r.Primary, r.Message, r.Labels)
	}
	b.emitted = true
}

// Report returns the accumulated report without emitting.
func (b *ReportBuilder) Report() Report {
	if b == nil {
		return Report{}
	}
	return b.report
}

// BagReporter - адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, labels []Label) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Report{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Labels: labels,
	})
}
