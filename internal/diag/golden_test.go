package diag

import (
	"testing"

	"ramen/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/sample.rm", []byte("a\nb\n"), 0)

	reports := []Report{
		{
			Severity: SevWarning,
			Code:     ResUnknownAttribute,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     ResDuplicateDefinition,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Labels: []Label{
				{Span: source.Span{File: 99, Start: 0, End: 0}, Msg: "unknown file"},
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "label line"},
			},
		},
	}

	expected := "error R02 testdata/sample.rm:1:1 first line second\n" +
		"label R02 testdata/sample.rm:2:1 label line\n" +
		"warning R04 testdata/sample.rm:2:1 another"

	if got := FormatGolden(reports, fs, true); got != expected {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := "error R02 testdata/sample.rm:1:1 first line second\n" +
		"warning R04 testdata/sample.rm:2:1 another"
	if got := FormatGolden(reports, fs, false); got != short {
		t.Fatalf("unexpected output without labels:\nwant:\n%s\n\ngot:\n%s", short, got)
	}
}

func TestFormatGoldenEmpty(t *testing.T) {
	if got := FormatGolden(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
