package testkit

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages understood in golden case files.
const (
	FenceSource      = "ramen"
	FenceLLVM        = "llvm"
	FenceDiagnostics = "diagnostics"
)

// Expectation is one expectation fence of a case.
type Expectation struct {
	Kind    string
	Content string
	Line    int
}

// Case is a golden test extracted from Markdown: a "Test: name" heading,
// exactly one ramen source fence and at least one expectation fence.
type Case struct {
	Name         string
	Source       string
	Line         int
	Expectations []Expectation
}

// Expect returns the expectation of the given kind.
func (c Case) Expect(kind string) (Expectation, bool) {
	for _, e := range c.Expectations {
		if e.Kind == kind {
			return e, true
		}
	}
	return Expectation{}, false
}

// LoadCases reads and parses a Markdown case file.
func LoadCases(path string) ([]Case, error) {
	// #nosec G304 -- test data path
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ParseCases(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// ParseCases extracts every case from a Markdown document.
func ParseCases(src []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var cases []Case
	var cur *Case
	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.Source == "" {
			return fmt.Errorf("line %d: test %q has no %s fence", cur.Line, cur.Name, FenceSource)
		}
		if len(cur.Expectations) == 0 {
			return fmt.Errorf("line %d: test %q has no expectation fences", cur.Line, cur.Name)
		}
		cases = append(cases, *cur)
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			title, ok := strings.CutPrefix(nodeText(n, src), "Test: ")
			if !ok {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			cur = &Case{Name: strings.TrimSpace(title), Line: lineOf(n, src)}
		case *mdast.FencedCodeBlock:
			lang := string(n.Language(src))
			line := lineOf(n, src)
			if !isKnownFence(lang) {
				if lang == "" {
					return mdast.WalkContinue, nil
				}
				return mdast.WalkStop, fmt.Errorf("line %d: unknown fence language %q", line, lang)
			}
			if cur == nil {
				return mdast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
			}
			content := strings.TrimRight(fenceContent(n, src), "\n")
			if lang == FenceSource {
				if cur.Source != "" {
					return mdast.WalkStop, fmt.Errorf("line %d: test %q has several %s fences", line, cur.Name, FenceSource)
				}
				cur.Source = content
				return mdast.WalkContinue, nil
			}
			cur.Expectations = append(cur.Expectations, Expectation{Kind: lang, Content: content, Line: line})
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func isKnownFence(lang string) bool {
	switch lang {
	case FenceSource, FenceLLVM, FenceDiagnostics:
		return true
	}
	return false
}

func nodeText(node mdast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(n *mdast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func lineOf(node mdast.Node, src []byte) int {
	var pos int
	switch {
	case node.Lines().Len() > 0:
		pos = node.Lines().At(0).Start
	default:
		return 1
	}
	return bytes.Count(src[:min(pos, len(src))], []byte("\n")) + 1
}
