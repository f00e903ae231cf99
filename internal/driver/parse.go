package driver

import (
	"fortio.org/safecast"

	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/parser"
	"cascade/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, maxDiagnostics)
}

// ParseVirtual разбирает код из памяти (тесты, stdin).
func ParseVirtual(name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(fs, fileID, maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}

	result := parser.ParseFile(fs, lx, builder, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
