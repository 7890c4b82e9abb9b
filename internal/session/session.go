package session

import (
	"io"

	"github.com/google/uuid"

	"ramen/internal/ast"
	"ramen/internal/diag"
	"ramen/internal/diagfmt"
	"ramen/internal/source"
	"ramen/internal/symbols"
	"ramen/internal/trace"
	"ramen/internal/types"
)

// DefKind tags a definition.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefModule
	DefFunction
	DefVariable
)

func (k DefKind) String() string {
	switch k {
	case DefModule:
		return "module"
	case DefFunction:
		return "function"
	case DefVariable:
		return "variable"
	default:
		return "invalid"
	}
}

// Options configures a Session.
type Options struct {
	// Output receives every diagnostic rendered with Pretty. Nil disables
	// rendering; reports are still collected.
	Output         io.Writer
	Pretty         diagfmt.PrettyOpts
	MaxDiagnostics int
	Tracer         trace.Tracer
}

// Session holds everything the passes of one compilation unit share: the
// side tables keyed by NodeID, the scope registry, the type interner and
// the diagnostics. Passes write facts here; later passes read them.
//
// A Session is not safe for concurrent use. Independent compilation units
// each get their own.
type Session struct {
	RunID  uuid.UUID
	Types  *types.Interner
	Scopes *symbols.Registry

	files   *source.FileSet
	refs    map[ast.NodeID]ast.NodeID
	defs    map[ast.NodeID]DefKind
	types   map[ast.NodeID]types.TypeID
	symbols map[ast.NodeID]string

	errors int
	bag    *diag.Bag
	out    io.Writer
	pretty diagfmt.PrettyOpts
	tracer trace.Tracer
	parent uint64 // span of the driver, parent of pass spans
}

func New(fs *source.FileSet, opts Options) *Session {
	if fs == nil {
		fs = source.NewFileSet()
	}
	run := uuid.New()
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Session{
		RunID:   run,
		Types:   types.NewInterner(),
		Scopes:  symbols.NewRegistry(),
		files:   fs,
		refs:    make(map[ast.NodeID]ast.NodeID),
		defs:    make(map[ast.NodeID]DefKind),
		types:   make(map[ast.NodeID]types.TypeID),
		symbols: make(map[ast.NodeID]string),
		bag:     diag.NewBag(opts.MaxDiagnostics),
		out:     opts.Output,
		pretty:  opts.Pretty,
		tracer:  trace.WithRun(tracer, run.String()),
	}
}

// Files implements diag.ReportContext.
func (s *Session) Files() *source.FileSet { return s.files }

func (s *Session) Tracer() trace.Tracer { return s.tracer }

// TraceParent is the span id pass spans are nested under.
func (s *Session) TraceParent() uint64 { return s.parent }

func (s *Session) SetTraceParent(id uint64) { s.parent = id }

// AllocDef mints a definition id for the syntax node use and records the
// reference use -> def.
func (s *Session) AllocDef(use ast.NodeID) ast.NodeID {
	def := ast.NextNodeID()
	s.refs[use] = def
	return def
}

// Bind records that use refers to def.
func (s *Session) Bind(use, def ast.NodeID) {
	s.refs[use] = def
}

// RefTarget returns the definition use refers to.
func (s *Session) RefTarget(use ast.NodeID) (ast.NodeID, error) {
	def, ok := s.refs[use]
	if !ok {
		return ast.NoNodeID, UnboundReference(use)
	}
	return def, nil
}

// SetDef tags def with kind. Tagging a definition twice is a compiler bug.
func (s *Session) SetDef(def ast.NodeID, kind DefKind) {
	if prev, ok := s.defs[def]; ok {
		assertf(false, "session: definition %s already tagged %s, new kind %s", def, prev, kind)
	}
	s.defs[def] = kind
}

func (s *Session) Def(def ast.NodeID) (DefKind, bool) {
	k, ok := s.defs[def]
	return k, ok
}

// SetType records the resolved type of id; the last write wins.
func (s *Session) SetType(id ast.NodeID, t types.TypeID) {
	s.types[id] = t
}

func (s *Session) Type(id ast.NodeID) (types.TypeID, bool) {
	t, ok := s.types[id]
	return t, ok
}

// TryBindType copies the type of src onto target. It reports false, and
// leaves target untouched, when src has no type yet.
func (s *Session) TryBindType(target, src ast.NodeID) bool {
	t, ok := s.types[src]
	if !ok {
		return false
	}
	s.types[target] = t
	return true
}

// SetSymbol records the qualified name of def.
func (s *Session) SetSymbol(def ast.NodeID, qualified string) {
	s.symbols[def] = qualified
}

func (s *Session) Symbol(def ast.NodeID) (string, bool) {
	name, ok := s.symbols[def]
	return name, ok
}

// PrintDiagnostic builds the report of d, stores it and renders it to the
// configured output. Fatal diagnostics bump the error counter.
func (s *Session) PrintDiagnostic(d diag.Diagnostic) {
	if d.IsFatal() {
		s.errors++
	}
	r := d.BuildReport(s)
	if !s.bag.Add(r) {
		return
	}
	if s.out != nil {
		diagfmt.PrettyReports(s.out, []diag.Report{r}, s.files, s.pretty)
	}
}

// ErrorCount returns the number of fatal diagnostics printed so far.
func (s *Session) ErrorCount() int { return s.errors }

// Reports returns all stored reports in emission order.
func (s *Session) Reports() []diag.Report { return s.bag.Items() }

// Bag exposes the diagnostic bag for sorting and deduplication.
func (s *Session) Bag() *diag.Bag { return s.bag }

// ExitIfErrors returns *AbortError when any fatal diagnostic was printed.
func (s *Session) ExitIfErrors() error {
	if s.errors > 0 {
		return &AbortError{Errors: s.errors}
	}
	return nil
}
