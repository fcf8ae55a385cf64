package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// languageSeeds cover every statement and expression form the parser knows,
// plus the recovery paths.
var languageSeeds = []string{
	"",
	"var a = 1, b; let c = a + b * 2; const d = c ?? null;\n",
	"function f(x, y) { if (!x) { return y } else { return x } }",
	"for (let i = 0; i < 10; i++) { continue } while (a) break; do { a-- } while (a > 0)",
	"try { throw new Error('x') } catch (e) { debugger } finally { done() }",
	"o.a.b[c](d).e = [1,,2, ] ; ({a: 1, b, 'c': 3, if: 4})",
	"x = y += z >>>= 1; a === b !== c == d != e",
	"switch (k) { case 1: f(); break; default: g() }",
	"label: for (;;) { break label }",
	"// lintel-ignore lint/style/noVar: legacy\nvar legacy = 1;",
	"/* block */ a\n\tb\r\nc",
	"if (",
	"var = 1;",
	"} ) ]",
	"'unterminated\nx",
	"x # y ¤",
	"({a: })",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.js file under testdata/seeds.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from the package testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
