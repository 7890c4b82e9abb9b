package visit

import (
	"errors"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
	"ramen/internal/trace"
)

// Run seeds the scope stack with root, visits m and finally checks the
// session for fatal diagnostics. A Diagnostic error returned by a hook is
// printed through the session before Run returns it.
func Run[T any](name string, v Visitor[T], root *symbols.Scope, m *ast.Module) (T, error) {
	sess := v.Session()
	span := trace.Begin(sess.Tracer(), trace.ScopePass, name, sess.TraceParent())
	v.Stack().Reset(root)

	res, err := v.VisitModule(m)
	if err != nil {
		var d diag.Diagnostic
		if errors.As(err, &d) {
			sess.PrintDiagnostic(d)
		}
		span.End("failed")
		return res, err
	}
	if err := sess.ExitIfErrors(); err != nil {
		span.End("errors")
		return res, err
	}
	span.End("")
	return res, nil
}

func withSpan(err error, at source.Span) error {
	var rerr *session.ResolutionError
	if errors.As(err, &rerr) && rerr.Span == (source.Span{}) {
		rerr.At(at)
	}
	return err
}
