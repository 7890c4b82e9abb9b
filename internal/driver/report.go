package driver

import (
	"io"
	"os"

	"ramen/internal/diag"
	"ramen/internal/diagfmt"
	"ramen/internal/project"
	"ramen/internal/session"
	"ramen/internal/source"
)

// sessionReporter адаптирует Session к diag.Reporter для лексера и парсера,
// чтобы синтаксические ошибки считались и печатались как остальные.
type sessionReporter struct {
	sess *session.Session
}

func (r sessionReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, labels []diag.Label) {
	rep := diag.New(sev, code, primary, msg)
	rep.Labels = labels
	r.sess.PrintDiagnostic(rep)
}

// prettyOpts resolves the diagnostics section against the output stream.
func prettyOpts(cfg project.Diagnostics, out io.Writer) diagfmt.PrettyOpts {
	f, _ := out.(*os.File)
	return diagfmt.PrettyOpts{
		Color:      diagfmt.UseColor(diagfmt.ColorMode(cfg.Color), f),
		Context:    cfg.Context,
		PathMode:   diagfmt.PathModeAuto,
		Width:      diagfmt.TerminalWidth(f),
		ShowLabels: true,
	}
}
