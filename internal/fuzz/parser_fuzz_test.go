package fuzztests

import (
	"context"
	"testing"
	"time"

	"ramen/internal/diag"
	"ramen/internal/driver"
	"ramen/internal/lexer"
	"ramen/internal/parser"
	"ramen/internal/project"
	"ramen/internal/source"
	"ramen/internal/testkit"
)

// parseTimeout is the maximum time allowed for a single input.
// Longer means error recovery went into a loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rmn", input))

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		res := parser.ParseFile(file, lx, "main", parser.Options{Reporter: reporter, MaxErrors: 128})
		if res.Module == nil {
			t.Fatal("nil module")
		}
		if bag.HasErrors() || len(res.Module.Items) == 0 {
			return
		}
		// дерево без ошибок обязано быть корректно вложенным
		if err := testkit.CheckSpanInvariants(res.Module); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, input)
		}
	})
}

// FuzzCompileNoHang прогоняет весь конвейер и следит, чтобы он завершался.
func FuzzCompileNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("func f() { { "))
	f.Add([]byte("module { module { module {"))
	f.Add([]byte("func f(a: int32 = func"))
	f.Add([]byte("@@@@ func"))
	f.Add([]byte("func f(): int8388608 => 1"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			opts := driver.Options{Config: project.DefaultConfig()}
			res, err := driver.Compile(ctx, "fuzz.rmn", input, opts)
			if err != nil {
				return
			}
			if !res.Failed() && res.IR == "" {
				t.Errorf("clean compile produced no IR for %q", input)
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("compile hung on input %q", input)
		}
	})
}
