package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"cascade/internal/ast"
	"cascade/internal/source"
)

// FormatAST выводит дерево распарсенного файла в человекочитаемом виде.
func FormatAST(w io.Writer, b *ast.Builder, fileID ast.FileID) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("no such file in AST: %d", fileID)
	}
	p := astPrinter{w: w, b: b}
	for _, itemID := range file.Items {
		p.item(itemID, 0)
	}
	return nil
}

type astPrinter struct {
	w io.Writer
	b *ast.Builder
}

func (p *astPrinter) printf(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) name(id uint32) string {
	s, _ := p.b.StringsInterner.Lookup(source.StringID(id))
	return s
}

func (p *astPrinter) item(id ast.ItemID, depth int) {
	item := p.b.Items.Get(id)
	switch item.Kind {
	case ast.ItemStruct:
		data, _ := p.b.Items.Struct(id)
		p.printf(depth, "Struct %s", p.name(uint32(data.Name)))
		for _, f := range data.Fields {
			kind := "mandatory"
			if f.Optional {
				kind = "optional"
			}
			p.printf(depth+1, "Field %s %s", kind, p.name(uint32(f.Name)))
		}
	case ast.ItemFn:
		data, _ := p.b.Items.Fn(id)
		params := make([]string, 0, len(data.Params))
		for _, param := range data.Params {
			params = append(params, p.name(uint32(param.Name)))
		}
		p.printf(depth, "Fn %s(%s)", p.name(uint32(data.Name)), strings.Join(params, ", "))
		p.stmt(data.Body, depth+1)
	case ast.ItemStmt:
		data, _ := p.b.Items.StmtItem(id)
		p.stmt(data.Stmt, depth)
	}
}

func (p *astPrinter) stmt(id ast.StmtID, depth int) {
	stmt := p.b.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := p.b.Stmts.Block(id)
		p.printf(depth, "Block")
		for _, s := range data.Stmts {
			p.stmt(s, depth+1)
		}
	case ast.StmtLet:
		data, _ := p.b.Stmts.Let(id)
		p.printf(depth, "Let %s", p.name(uint32(data.Name)))
		p.expr(data.Value, depth+1)
	case ast.StmtAssign:
		data, _ := p.b.Stmts.Assign(id)
		p.printf(depth, "Assign")
		p.expr(data.Target, depth+1)
		p.expr(data.Value, depth+1)
	case ast.StmtExpr:
		data, _ := p.b.Stmts.ExprStmt(id)
		p.printf(depth, "ExprStmt")
		p.expr(data.Expr, depth+1)
	case ast.StmtIf:
		data, _ := p.b.Stmts.If(id)
		p.printf(depth, "If")
		p.expr(data.Cond, depth+1)
		p.stmt(data.Then, depth+1)
		if data.Else.IsValid() {
			p.printf(depth, "Else")
			p.stmt(data.Else, depth+1)
		}
	case ast.StmtWhile:
		data, _ := p.b.Stmts.While(id)
		p.printf(depth, "While")
		p.expr(data.Cond, depth+1)
		p.stmt(data.Body, depth+1)
	case ast.StmtReturn:
		data, _ := p.b.Stmts.Return(id)
		p.printf(depth, "Return")
		if data.Value.IsValid() {
			p.expr(data.Value, depth+1)
		}
	case ast.StmtPrint:
		data, _ := p.b.Stmts.Print(id)
		p.printf(depth, "Print")
		p.expr(data.Value, depth+1)
	}
}

func (p *astPrinter) expr(id ast.ExprID, depth int) {
	expr := p.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := p.b.Exprs.Ident(id)
		p.printf(depth, "Ident %s", p.name(uint32(data.Name)))
	case ast.ExprLit:
		data, _ := p.b.Exprs.Literal(id)
		switch data.Kind {
		case ast.LitNull:
			p.printf(depth, "Lit null")
		default:
			p.printf(depth, "Lit %s", p.name(uint32(data.Value)))
		}
	case ast.ExprBinary:
		data, _ := p.b.Exprs.Binary(id)
		p.printf(depth, "Binary op=%d", data.Op)
		p.expr(data.Left, depth+1)
		p.expr(data.Right, depth+1)
	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		p.printf(depth, "Unary op=%d", data.Op)
		p.expr(data.Operand, depth+1)
	case ast.ExprGroup:
		data, _ := p.b.Exprs.Group(id)
		p.printf(depth, "Group")
		p.expr(data.Inner, depth+1)
	case ast.ExprCall:
		data, _ := p.b.Exprs.Call(id)
		p.printf(depth, "Call")
		p.expr(data.Target, depth+1)
		for _, arg := range data.Args {
			p.expr(arg, depth+1)
		}
	case ast.ExprMember:
		data, _ := p.b.Exprs.Member(id)
		p.printf(depth, "Member .%s", p.name(uint32(data.Field)))
		p.expr(data.Target, depth+1)
	case ast.ExprIndex:
		data, _ := p.b.Exprs.Index(id)
		p.printf(depth, "Index")
		p.expr(data.Target, depth+1)
		p.expr(data.Index, depth+1)
	case ast.ExprNew:
		data, _ := p.b.Exprs.New(id)
		p.printf(depth, "New %s", p.name(uint32(data.Type)))
		p.fieldInits(data.Fields, depth+1)
	case ast.ExprObjectLit:
		data, _ := p.b.Exprs.ObjectLit(id)
		p.printf(depth, "ObjectLit")
		p.fieldInits(data.Fields, depth+1)
	case ast.ExprArrayLit:
		data, _ := p.b.Exprs.ArrayLit(id)
		p.printf(depth, "ArrayLit")
		for _, elem := range data.Elements {
			p.expr(elem, depth+1)
		}
	}
}

func (p *astPrinter) fieldInits(fields []ast.FieldInit, depth int) {
	for _, f := range fields {
		p.printf(depth, "FieldInit %s", p.name(uint32(f.Name)))
		p.expr(f.Value, depth+1)
	}
}
