package interp

import (
	"fmt"

	"cascade/internal/ast"
	"cascade/internal/heap"
)

func (in *Interp) execStmt(id ast.StmtID, env *Env) error {
	stmt := in.arenas.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := in.arenas.Stmts.Block(id)
		blockEnv := NewEnv(env)
		for _, s := range data.Stmts {
			if err := in.execStmt(s, blockEnv); err != nil {
				return err
			}
		}
		return nil

	case ast.StmtLet:
		data, _ := in.arenas.Stmts.Let(id)
		value, err := in.evalExpr(data.Value, env)
		if err != nil {
			return err
		}
		env.Define(data.Name, value)
		return nil

	case ast.StmtAssign:
		data, _ := in.arenas.Stmts.Assign(id)
		return in.execAssign(data.Target, data.Value, env)

	case ast.StmtExpr:
		data, _ := in.arenas.Stmts.ExprStmt(id)
		_, err := in.evalExpr(data.Expr, env)
		return err

	case ast.StmtIf:
		data, _ := in.arenas.Stmts.If(id)
		cond, err := in.evalExpr(data.Cond, env)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return in.execStmt(data.Then, env)
		}
		if data.Else.IsValid() {
			return in.execStmt(data.Else, env)
		}
		return nil

	case ast.StmtWhile:
		data, _ := in.arenas.Stmts.While(id)
		for {
			cond, err := in.evalExpr(data.Cond, env)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := in.execStmt(data.Body, env); err != nil {
				return err
			}
		}

	case ast.StmtReturn:
		data, _ := in.arenas.Stmts.Return(id)
		value := heap.Null
		if data.Value.IsValid() {
			v, err := in.evalExpr(data.Value, env)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case ast.StmtPrint:
		data, _ := in.arenas.Stmts.Print(id)
		value, err := in.evalExpr(data.Value, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, value.String())
		return nil

	default:
		return typeError(stmt.Span, "unsupported statement")
	}
}

// execAssign lowers assignment per the target shape:
//   - Ident: rebind the innermost visible binding (local variables are
//     not tracked in the reverse index);
//   - member access: resolve mandatoriness via the holder's type schema,
//     then heap.SetField — the cascade trigger point;
//   - index: array element write, extending length when needed.
func (in *Interp) execAssign(target, valueExpr ast.ExprID, env *Env) error {
	targetNode := in.arenas.Exprs.Get(target)

	value, err := in.evalExpr(valueExpr, env)
	if err != nil {
		return err
	}

	switch targetNode.Kind {
	case ast.ExprIdent:
		data, _ := in.arenas.Exprs.Ident(target)
		if !env.Assign(data.Name, value) {
			name := in.arenas.StringsInterner.MustLookup(data.Name)
			return referenceError(targetNode.Span, "undefined variable %q", name)
		}
		return nil

	case ast.ExprMember:
		data, _ := in.arenas.Exprs.Member(target)
		parent, err := in.evalExpr(data.Target, env)
		if err != nil {
			return err
		}
		if parent.Kind != heap.VKObject {
			return typeError(targetNode.Span, "field access on non-object (%s)", parent.Kind)
		}
		if value.Kind == heap.VKFunc {
			return typeError(targetNode.Span, "object fields cannot hold functions")
		}
		field := in.arenas.StringsInterner.MustLookup(data.Field)
		mandatory := in.heap.IsFieldMandatory(parent.Obj, field)
		in.heap.SetField(parent.Obj, field, value, mandatory)
		return nil

	case ast.ExprIndex:
		data, _ := in.arenas.Exprs.Index(target)
		parent, err := in.evalExpr(data.Target, env)
		if err != nil {
			return err
		}
		idx, err := in.evalArrayIndex(parent, data.Index, targetNode.Span, env)
		if err != nil {
			return err
		}
		if value.Kind == heap.VKFunc {
			return typeError(targetNode.Span, "object fields cannot hold functions")
		}
		in.heap.ArraySet(parent.Obj, idx, value)
		return nil

	default:
		return typeError(targetNode.Span, "invalid assignment target")
	}
}
