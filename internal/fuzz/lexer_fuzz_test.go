package fuzztests

import (
	"testing"

	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/source"
	"lintel/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", clampInput(input)))

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenInvariants(tokens, string(file.Content)); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(file.Content, 200))
		}
	})
}
