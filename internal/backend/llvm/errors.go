package llvm

import (
	"fmt"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/source"
)

// LowerError is a lowering failure. Lowering stops at the first one.
type LowerError struct {
	Code diag.Code
	Node ast.NodeID
	Span source.Span
	Msg  string
	Note *diag.Label
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *LowerError) IsFatal() bool { return true }

func (e *LowerError) Location() source.Span { return e.Span }

func (e *LowerError) BuildReport(diag.ReportContext) diag.Report {
	r := diag.NewError(e.Code, e.Span, e.Msg)
	if e.Note != nil {
		r = r.WithLabel(e.Note.Span, e.Note.Msg, e.Note.Priority)
	}
	return r
}

func errNotValueType(node ast.NodeID, at source.Span, what string) *LowerError {
	return &LowerError{
		Code: diag.LowNotValueType,
		Node: node,
		Span: at,
		Msg:  fmt.Sprintf("%s cannot be used as a value type", what),
	}
}

func errNotCoercible(node ast.NodeID, at source.Span, msg string) *LowerError {
	return &LowerError{Code: diag.LowNotCoercible, Node: node, Span: at, Msg: msg}
}

func errMissingReturn(node ast.NodeID, at source.Span, name string) *LowerError {
	return &LowerError{
		Code: diag.LowMissingReturn,
		Node: node,
		Span: at,
		Msg:  fmt.Sprintf("function `%s` does not return a value on every path", name),
	}
}

func errBadIntWidth(node ast.NodeID, at source.Span, width uint32) *LowerError {
	return &LowerError{
		Code: diag.LowBadIntWidth,
		Node: node,
		Span: at,
		Msg:  fmt.Sprintf("integer width %d is outside the supported range 1..8388607", width),
	}
}

func errBackend(node ast.NodeID, at source.Span, msg string) *LowerError {
	return &LowerError{Code: diag.LowBackend, Node: node, Span: at, Msg: msg}
}

func errDuplicateLinkage(node ast.NodeID, at source.Span, name string, prev source.Span) *LowerError {
	return &LowerError{
		Code: diag.LowBackend,
		Node: node,
		Span: at,
		Msg:  fmt.Sprintf("linkage name `%s` is already defined", name),
		Note: &diag.Label{Span: prev, Msg: "first defined here"},
	}
}
