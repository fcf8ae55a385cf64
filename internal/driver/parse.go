package driver

import (
	"fortio.org/safecast"

	"lintel/internal/diag"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Root    syntax.SyntaxNode
	Bag     *diag.Bag
	// Green allocation counts for the parse; Hits were served by interning.
	Nodes, Tokens, Hits int64
}

// Parse loads one file and builds its lossless tree.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	counter := new(syntax.Counter)
	result := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
		Cache:     syntax.NewNodeCache(counter),
	})
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Root:    result.Root,
		Bag:     bag,
		Nodes:   counter.Nodes(),
		Tokens:  counter.Tokens(),
		Hits:    counter.Hits(),
	}, nil
}
