package driver

import (
	"io"
	"os"

	"ramen/internal/project"
	"ramen/internal/trace"
)

// OpenTracer builds the tracer described by cfg. The returned closer
// flushes it and closes the output file, never stdout or stderr. Ring and
// both modes keep events in memory; they end up in Result.Trace.
func OpenTracer(cfg project.Trace) (trace.Tracer, func() error, error) {
	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	mode := trace.ModeStream
	if cfg.Mode != "" {
		if mode, err = trace.ParseMode(cfg.Mode); err != nil {
			return nil, nil, err
		}
	}
	tcfg := trace.Config{Level: level, Mode: mode, Format: format}
	var w io.Writer
	switch cfg.Output {
	case "", "-", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		tcfg.OutputPath = cfg.Output
	}
	tcfg.Output = w
	t, err := trace.New(tcfg)
	if err != nil {
		return nil, nil, err
	}
	if w != nil {
		return t, t.Flush, nil
	}
	return t, t.Close, nil
}
