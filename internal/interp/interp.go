// Package interp implements the tree-walking evaluator for CascadeLang.
//
// The evaluator consumes the heap exclusively through its narrow binding
// surface: DefineType, CreateObject, CreateArray, GetField, GetObject,
// SetField, ArrayPush/ArraySet, IsFieldMandatory. Every composite write
// goes through the heap, which keeps the reverse index consistent and
// fires cascade deletion when a mandatoriness invariant is violated.
package interp

import (
	"io"
	"os"

	"cascade/internal/ast"
	"cascade/internal/heap"
	"cascade/internal/source"
)

// function is a user-declared function. Callables live only in
// interpreter environments, never in the heap.
type function struct {
	name    source.StringID
	params  []source.StringID
	body    ast.StmtID
	closure *Env
}

// Interp evaluates a parsed file against a heap.
type Interp struct {
	fs      *source.FileSet
	arenas  *ast.Builder
	heap    *heap.Heap
	globals *Env
	funcs   []*function // FuncID(n) -> funcs[n-1]
	out     io.Writer

	assertID source.StringID
	pushID   source.StringID
}

// Options configures an interpreter run.
type Options struct {
	Out io.Writer // print destination; defaults to os.Stdout
}

// New creates an interpreter over the given arenas and heap.
func New(fs *source.FileSet, arenas *ast.Builder, h *heap.Heap, opts Options) *Interp {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Interp{
		fs:       fs,
		arenas:   arenas,
		heap:     h,
		globals:  NewEnv(nil),
		out:      out,
		assertID: arenas.StringsInterner.Intern("assert"),
		pushID:   arenas.StringsInterner.Intern("push"),
	}
}

// Heap returns the heap the interpreter mutates.
func (in *Interp) Heap() *heap.Heap {
	return in.heap
}

// Run evaluates the file: declarations are registered in a first pass so
// calls may appear before the declaration, then top-level statements
// execute in order.
func (in *Interp) Run(fileID ast.FileID) error {
	file := in.arenas.Files.Get(fileID)
	if file == nil {
		return nil
	}

	// Первый проход: struct и fn декларации.
	for _, itemID := range file.Items {
		item := in.arenas.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemStruct:
			data, _ := in.arenas.Items.Struct(itemID)
			in.defineStruct(data)
		case ast.ItemFn:
			data, _ := in.arenas.Items.Fn(itemID)
			in.defineFn(data)
		}
	}

	// Второй проход: top-level statements.
	for _, itemID := range file.Items {
		item := in.arenas.Items.Get(itemID)
		if item.Kind != ast.ItemStmt {
			continue
		}
		data, _ := in.arenas.Items.StmtItem(itemID)
		if err := in.execStmt(data.Stmt, in.globals); err != nil {
			if _, isReturn := err.(*returnSignal); isReturn {
				return referenceError(item.Span, "return outside of function")
			}
			return err
		}
	}
	return nil
}

func (in *Interp) defineStruct(data *ast.StructItem) {
	name := in.arenas.StringsInterner.MustLookup(data.Name)
	fields := make([]heap.FieldSchema, 0, len(data.Fields))
	for _, f := range data.Fields {
		fields = append(fields, heap.FieldSchema{
			Name:     in.arenas.StringsInterner.MustLookup(f.Name),
			Optional: f.Optional,
		})
	}
	in.heap.Types().DefineType(name, fields)
}

func (in *Interp) defineFn(data *ast.FnItem) {
	params := make([]source.StringID, 0, len(data.Params))
	for _, p := range data.Params {
		params = append(params, p.Name)
	}
	fn := &function{
		name:    data.Name,
		params:  params,
		body:    data.Body,
		closure: in.globals,
	}
	in.funcs = append(in.funcs, fn)
	id := heap.FuncID(len(in.funcs))
	in.globals.Define(data.Name, heap.MakeFunc(id))
}

func (in *Interp) lookupFunc(id heap.FuncID) *function {
	if id == 0 || int(id) > len(in.funcs) {
		return nil
	}
	return in.funcs[id-1]
}
