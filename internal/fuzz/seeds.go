package fuzztests

import (
	"path/filepath"
	"testing"

	"ramen/internal/testkit"
)

const maxSeedBytes = 64 << 10 // 64 KiB

const maxFuzzInput = 1 << 16 // 64 KiB

var languageSeeds = []string{
	"func identity(a: int32): int32 => 15",
	"func unit() => 0",
	"module util { func helper(): int8 => 255 }\nfunc api(): int64 => 1",
	"func outer(x: int16): int16 {\n  func inner() => 0\n  return 9\n}",
	"@fast func f(): int32 => 1",
	"func f(a: int32 = 7,) {}",
	"func f(): int8 => 300",
	"func f(): int0 => 1",
	"module m { module n { func g(): ( ) => 0 } }",
	"func f() { return; return 1 }",
	"func 0x_ff() => 0b102",
}

func addCorpusSeeds(f *testing.F) {
	addGoldenSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

// addGoldenSeeds добавляет исходники из golden-кейсов драйвера.
func addGoldenSeeds(f *testing.F) {
	cases, err := testkit.LoadCases(filepath.Join("..", "driver", "testdata", "compile.md"))
	if err != nil {
		return
	}
	for _, c := range cases {
		if c.Source == "" {
			continue
		}
		f.Add(clampSeed([]byte(c.Source)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
