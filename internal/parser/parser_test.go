package parser_test

import (
	"testing"

	"cascade/internal/ast"
	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/parser"
	"cascade/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.casc", []byte(src))
	bag := diag.NewBag(50)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: 50,
	})
	return builder, result.File, bag
}

func parseOK(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	builder, fileID, bag := parse(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	return builder, fileID
}

func items(b *ast.Builder, fileID ast.FileID) []ast.ItemID {
	return b.Files.Get(fileID).Items
}

func TestParseStructDecl(t *testing.T) {
	b, fileID := parseOK(t, `struct N { mandatory id, optional next, tag, }`)

	its := items(b, fileID)
	if len(its) != 1 {
		t.Fatalf("items = %d, want 1", len(its))
	}
	data, ok := b.Items.Struct(its[0])
	if !ok {
		t.Fatal("item is not a struct")
	}
	if got := b.StringsInterner.MustLookup(data.Name); got != "N" {
		t.Errorf("name = %q", got)
	}
	if len(data.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(data.Fields))
	}
	wantOptional := []bool{false, true, false} // без префикса — mandatory
	for i, f := range data.Fields {
		if f.Optional != wantOptional[i] {
			name := b.StringsInterner.MustLookup(f.Name)
			t.Errorf("field %q optional = %v, want %v", name, f.Optional, wantOptional[i])
		}
	}
}

func TestParseStructDuplicateField(t *testing.T) {
	_, _, bag := parse(t, `struct N { id, id, }`)
	if !bag.HasErrors() {
		t.Fatal("expected duplicate-field error")
	}
	if bag.Items()[0].Code != diag.SynDuplicateField {
		t.Errorf("code = %v, want SynDuplicateField", bag.Items()[0].Code)
	}
}

func TestParseFnDecl(t *testing.T) {
	b, fileID := parseOK(t, `fn add(a, b) { return a + b }`)

	its := items(b, fileID)
	data, ok := b.Items.Fn(its[0])
	if !ok {
		t.Fatal("item is not a fn")
	}
	if got := b.StringsInterner.MustLookup(data.Name); got != "add" {
		t.Errorf("name = %q", got)
	}
	if len(data.Params) != 2 {
		t.Errorf("params = %d, want 2", len(data.Params))
	}
	block, ok := b.Stmts.Block(data.Body)
	if !ok || len(block.Stmts) != 1 {
		t.Fatal("fn body must be a block with one statement")
	}
	if _, ok := b.Stmts.Return(block.Stmts[0]); !ok {
		t.Error("body statement must be a return")
	}
}

func TestParseLetAndAssignment(t *testing.T) {
	b, fileID := parseOK(t, `
let a = new N { id: 1 }
a.next = b
a[0] = 2
a = null
`)
	its := items(b, fileID)
	if len(its) != 4 {
		t.Fatalf("items = %d, want 4", len(its))
	}

	stmtOf := func(i int) ast.StmtID {
		data, ok := b.Items.StmtItem(its[i])
		if !ok {
			t.Fatalf("item %d is not a statement", i)
		}
		return data.Stmt
	}

	if letData, ok := b.Stmts.Let(stmtOf(0)); !ok {
		t.Error("item 0 must be let")
	} else if _, ok := b.Exprs.New(letData.Value); !ok {
		t.Error("let value must be a new-expression")
	}

	for i, wantTarget := range []ast.ExprKind{ast.ExprMember, ast.ExprIndex, ast.ExprIdent} {
		assign, ok := b.Stmts.Assign(stmtOf(i + 1))
		if !ok {
			t.Fatalf("item %d must be assignment", i+1)
		}
		if got := b.Exprs.Get(assign.Target).Kind; got != wantTarget {
			t.Errorf("assignment %d target = %v, want %v", i+1, got, wantTarget)
		}
	}
}

func TestParseInvalidAssignTarget(t *testing.T) {
	_, _, bag := parse(t, `1 + 2 = 3`)
	if !bag.HasErrors() {
		t.Fatal("expected invalid assignment target error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadAssignTarget {
			found = true
		}
	}
	if !found {
		t.Errorf("no SynBadAssignTarget in %+v", bag.Items())
	}
}

func TestParsePrecedence(t *testing.T) {
	b, fileID := parseOK(t, `let x = 1 + 2 * 3 == 7 && true`)
	letData, _ := b.Stmts.Let(mustStmt(t, b, fileID, 0))

	// верхний уровень — &&
	root, ok := b.Exprs.Binary(letData.Value)
	if !ok || root.Op != ast.ExprBinaryLogicalAnd {
		t.Fatalf("root op = %+v, want &&", root)
	}
	eq, ok := b.Exprs.Binary(root.Left)
	if !ok || eq.Op != ast.ExprBinaryEq {
		t.Fatalf("left of && must be ==")
	}
	add, ok := b.Exprs.Binary(eq.Left)
	if !ok || add.Op != ast.ExprBinaryAdd {
		t.Fatalf("left of == must be +")
	}
	mul, ok := b.Exprs.Binary(add.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("right of + must be *")
	}
}

func TestParsePostfixChain(t *testing.T) {
	b, fileID := parseOK(t, `print a.b[0].c(1, 2)`)
	printData, _ := b.Stmts.Print(mustStmt(t, b, fileID, 0))

	call, ok := b.Exprs.Call(printData.Value)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("print operand must be a call with two args")
	}
	member, ok := b.Exprs.Member(call.Target)
	if !ok {
		t.Fatal("call target must be member access")
	}
	index, ok := b.Exprs.Index(member.Target)
	if !ok {
		t.Fatal("member target must be index")
	}
	if _, ok := b.Exprs.Member(index.Target); !ok {
		t.Fatal("index target must be member access")
	}
}

func TestParseIfElseChain(t *testing.T) {
	b, fileID := parseOK(t, `
if a < 1 {
	print 1
} else if a < 2 {
	print 2
} else {
	print 3
}
`)
	ifData, ok := b.Stmts.If(mustStmt(t, b, fileID, 0))
	if !ok {
		t.Fatal("item must be if")
	}
	elseIf, ok := b.Stmts.If(ifData.Else)
	if !ok {
		t.Fatal("else branch must be another if")
	}
	if !elseIf.Else.IsValid() {
		t.Fatal("inner if must carry the final else block")
	}
}

func TestParseObjectAndArrayLiterals(t *testing.T) {
	b, fileID := parseOK(t, `let o = { x: 1, y: [1, 2, 3], }`)
	letData, _ := b.Stmts.Let(mustStmt(t, b, fileID, 0))

	lit, ok := b.Exprs.ObjectLit(letData.Value)
	if !ok || len(lit.Fields) != 2 {
		t.Fatalf("object literal fields = %+v", lit)
	}
	arr, ok := b.Exprs.ArrayLit(lit.Fields[1].Value)
	if !ok || len(arr.Elements) != 3 {
		t.Fatal("y must be a 3-element array literal")
	}
}

func TestParseEmptyNewAndLiteral(t *testing.T) {
	b, fileID := parseOK(t, `
let a = new N { }
let b = [ ]
`)
	letA, _ := b.Stmts.Let(mustStmt(t, b, fileID, 0))
	newData, ok := b.Exprs.New(letA.Value)
	if !ok || len(newData.Fields) != 0 {
		t.Fatal("new N { } must have no field inits")
	}
	letB, _ := b.Stmts.Let(mustStmt(t, b, fileID, 1))
	arrData, ok := b.Exprs.ArrayLit(letB.Value)
	if !ok || len(arrData.Elements) != 0 {
		t.Fatal("[ ] must be an empty array literal")
	}
}

func TestParseErrorRecovery(t *testing.T) {
	b, fileID, bag := parse(t, `
let = 5
let ok = 1
`)
	if !bag.HasErrors() {
		t.Fatal("expected an error for the malformed let")
	}
	// после resync второй let разобран
	found := false
	for _, itemID := range items(b, fileID) {
		if data, ok := b.Items.StmtItem(itemID); ok {
			if letData, ok := b.Stmts.Let(data.Stmt); ok {
				if b.StringsInterner.MustLookup(letData.Name) == "ok" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("parser did not recover to parse the second let")
	}
}

func TestParseOptionalSemicolons(t *testing.T) {
	_, fileID := parseOK(t, `let a = 1; let b = 2
let c = 3;;`)
	_ = fileID
}

func mustStmt(t *testing.T, b *ast.Builder, fileID ast.FileID, i int) ast.StmtID {
	t.Helper()
	its := items(b, fileID)
	if i >= len(its) {
		t.Fatalf("want item %d, have %d items", i, len(its))
	}
	data, ok := b.Items.StmtItem(its[i])
	if !ok {
		t.Fatalf("item %d is not a statement", i)
	}
	return data.Stmt
}
