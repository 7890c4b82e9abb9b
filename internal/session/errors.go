package session

import (
	"fmt"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/source"
)

// ResolutionError is produced by the binding and type resolution passes.
// Only SevError instances count towards ExitIfErrors.
type ResolutionError struct {
	Code     diag.Code
	Severity diag.Severity
	Node     ast.NodeID
	Span     source.Span
	Msg      string
	Labels   []diag.Label
}

func (e *ResolutionError) Error() string {
	if e.Node.IsValid() {
		return fmt.Sprintf("%s: %s (node %s)", e.Code.ID(), e.Msg, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *ResolutionError) IsFatal() bool { return e.Severity.IsFatal() }

func (e *ResolutionError) Location() source.Span { return e.Span }

func (e *ResolutionError) BuildReport(diag.ReportContext) diag.Report {
	return diag.Report{
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Msg,
		Primary:  e.Span,
		Labels:   e.Labels,
	}
}

// At attaches a source location. Errors raised from side tables only know
// the node id; the caller holding the syntax node fills in the span.
func (e *ResolutionError) At(sp source.Span) *ResolutionError {
	e.Span = sp
	return e
}

func UnboundReference(node ast.NodeID) *ResolutionError {
	return &ResolutionError{
		Code:     diag.ResUnboundReference,
		Severity: diag.SevError,
		Node:     node,
		Msg:      fmt.Sprintf("node %s is not bound to a definition", node),
	}
}

// DuplicateDefinition points at the new definition and labels the previous one.
func DuplicateDefinition(name string, at, previous source.Span) *ResolutionError {
	return &ResolutionError{
		Code:     diag.ResDuplicateDefinition,
		Severity: diag.SevError,
		Span:     at,
		Msg:      fmt.Sprintf("duplicate definition of `%s`", name),
		Labels: []diag.Label{
			{Span: at, Msg: "redefined here", Priority: 1},
			{Span: previous, Msg: "previous definition here", Priority: 0},
		},
	}
}

// MissingType reports a node whose type an earlier step should have
// produced. It is a precondition violation, not a user error.
func MissingType(node ast.NodeID, what string) *ResolutionError {
	return &ResolutionError{
		Code:     diag.ResMissingType,
		Severity: diag.SevError,
		Node:     node,
		Msg:      fmt.Sprintf("type of %s %s is not resolved", what, node),
	}
}

func UnknownAttribute(name string, at source.Span) *ResolutionError {
	return &ResolutionError{
		Code:     diag.ResUnknownAttribute,
		Severity: diag.SevWarning,
		Span:     at,
		Msg:      fmt.Sprintf("unknown attribute `@%s` is ignored", name),
	}
}

func UndefinedName(name string, at source.Span) *ResolutionError {
	return &ResolutionError{
		Code:     diag.ResUndefinedName,
		Severity: diag.SevError,
		Span:     at,
		Msg:      fmt.Sprintf("cannot find `%s` in this scope", name),
	}
}

// AbortError is returned by ExitIfErrors when the pass left fatal
// diagnostics behind. The driver stops the pipeline on it.
type AbortError struct {
	Errors int
}

func (e *AbortError) Error() string {
	if e.Errors == 1 {
		return "aborting due to previous error"
	}
	return fmt.Sprintf("aborting due to %d previous errors", e.Errors)
}
