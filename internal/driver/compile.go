package driver

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/llir/llvm/ir"

	"ramen/internal/ast"
	llvmbackend "ramen/internal/backend/llvm"
	"ramen/internal/diag"
	"ramen/internal/lexer"
	"ramen/internal/observ"
	"ramen/internal/parser"
	"ramen/internal/project"
	"ramen/internal/sema"
	"ramen/internal/session"
	"ramen/internal/source"
	"ramen/internal/symbols"
	"ramen/internal/trace"
	"ramen/internal/version"
)

// Phase names, in pipeline order.
const (
	PhaseParse   = "parse"
	PhaseBind    = "bind"
	PhaseResolve = "resolve"
	PhaseLower   = "lower"
)

// Options configures one compilation.
type Options struct {
	Config project.Config
	// Output receives rendered diagnostics; nil keeps them in Result only.
	Output io.Writer
	// Tracer overrides the tracer built from Config.Trace.
	Tracer   trace.Tracer
	Observer PhaseObserver
}

// Result is everything one compilation unit produced. Module and IR are
// set only when every phase succeeded.
type Result struct {
	Name     string
	Compiler string
	Files    *source.FileSet
	Unit     *ast.Module
	Session  *session.Session
	Module   *ir.Module
	IR       string
	Reports  []diag.Report
	Timings  observ.Report
	// Trace holds this unit's events when the tracer keeps them in memory
	// (trace mode ring or both).
	Trace []trace.Event
}

// Failed reports whether the unit produced fatal diagnostics.
func (r *Result) Failed() bool {
	return r.Session != nil && r.Session.ErrorCount() > 0
}

// CompileFile loads path from disk and compiles it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileUnit(ctx, fs, id, opts)
}

// Compile compiles in-memory source; name is used as the file path in
// diagnostics.
func Compile(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compileUnit(ctx, fs, id, opts)
}

// compileUnit runs parse → bind → resolve → lower. A phase that printed
// fatal diagnostics stops the pipeline with *session.AbortError; the
// Result is returned alongside so callers can inspect the reports.
func compileUnit(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Options.Tracer, потом трасса из ctx, потом из конфига
	tracer := opts.Tracer
	if tracer == nil {
		if t := trace.FromContext(ctx); t.Enabled() {
			tracer = t
		}
	}
	if tracer == nil {
		t, closeTracer, err := OpenTracer(cfg.Trace)
		if err != nil {
			return nil, err
		}
		defer func() { _ = closeTracer() }()
		tracer = t
	}

	out := opts.Output
	file := fs.Get(id)
	sess := session.New(fs, session.Options{
		Output:         out,
		Pretty:         prettyOpts(cfg.Diagnostics, out),
		MaxDiagnostics: cfg.Diagnostics.Max,
		Tracer:         tracer,
	})
	res := &Result{Name: file.Path, Compiler: version.Producer(), Files: fs, Session: sess}

	unitSpan := trace.Begin(sess.Tracer(), trace.ScopeDriver, "compile", 0).
		WithExtra("file", file.Path).
		WithExtra("compiler", res.Compiler)
	sess.SetTraceParent(unitSpan.ID())

	timer := observ.NewTimer()
	run := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Unit: file.Path, Name: name, Status: PhaseStart})
		}
		err := timer.Measure(name, fn)
		if opts.Observer != nil {
			d, _ := timer.Duration(name)
			opts.Observer(PhaseEvent{Unit: file.Path, Name: name, Status: PhaseEnd, Elapsed: d, Failed: err != nil})
		}
		return err
	}

	root := symbols.NewScope(nil, "")
	err := run(PhaseParse, func() error {
		// остальные проходы открывают свой span в visit.Run
		span := trace.Begin(sess.Tracer(), trace.ScopePass, PhaseParse, sess.TraceParent())
		res.Unit = parseUnit(sess, file, cfg)
		if perr := sess.ExitIfErrors(); perr != nil {
			span.End("errors")
			return perr
		}
		span.End("")
		return nil
	})
	if err == nil {
		err = run(PhaseBind, func() error {
			return sema.Bind(sess, root, res.Unit, sema.BindOptions{SymbolSeparator: cfg.Compile.SymbolSeparator})
		})
	}
	if err == nil {
		err = run(PhaseResolve, func() error {
			return sema.Resolve(sess, root, res.Unit, sema.ResolveOptions{LiteralWidth: cfg.Compile.LiteralWidth})
		})
	}
	if err == nil {
		err = run(PhaseLower, func() error {
			mod, lerr := llvmbackend.Lower(sess, root, res.Unit, llvmbackend.Options{LinkageSeparator: cfg.Compile.LinkageSeparator})
			if lerr != nil {
				return lerr
			}
			res.Module = mod
			res.IR = mod.String()
			return nil
		})
	}

	res.Timings = timer.Report()
	res.Reports = sess.Reports()
	detail := ""
	if err != nil {
		detail = "failed"
	}
	unitSpan.End(detail)
	res.Trace = trace.RunEvents(tracer, sess.RunID.String())
	return res, err
}

func parseUnit(sess *session.Session, file *source.File, cfg project.Config) *ast.Module {
	rep := sessionReporter{sess: sess}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	maxErrors := uint(0)
	if cfg.Diagnostics.Max > 0 {
		maxErrors = uint(cfg.Diagnostics.Max)
	}
	res := parser.ParseFile(file, lx, cfg.Compile.ModuleName, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	return res.Module
}

// IsAbort reports whether err only means "diagnostics were printed".
func IsAbort(err error) bool {
	var abort *session.AbortError
	return errors.As(err, &abort)
}

// WriteIR writes the textual IR of a successful result to path, or to
// stdout when path is "-".
func WriteIR(res *Result, path string) error {
	if res == nil || res.Module == nil {
		return errors.New("no module to write")
	}
	if path == "-" {
		_, err := io.WriteString(os.Stdout, res.IR)
		return err
	}
	return os.WriteFile(path, []byte(res.IR), 0o644) //nolint:gosec // IR is not secret
}
