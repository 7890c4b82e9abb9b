// Package diag defines the diagnostic model shared by the parser and the
// semantic passes.
//
// Report is the central record: severity, a numeric Code with a stable short
// id ("R02", "L04"), a message, the primary span and optional labels. Phases
// with richer error values implement the Diagnostic interface and turn
// themselves into a Report only when asked, so the span information stays
// structured until rendering.
//
// Package diag does not format or print anything; rendering lives in
// internal/diagfmt. Bag collects reports for one compilation unit and
// supports sorting and deduplication. Reporter decouples producers from
// storage: the parser emits through a ReportBuilder, the session stores
// everything in its own Bag.
package diag
