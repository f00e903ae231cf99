package interp

import (
	"cascade/internal/ast"
	"cascade/internal/heap"
)

// evalCall dispatches builtin callables (assert, push) and user functions.
// Builtin names resolve only when no user binding shadows them.
func (in *Interp) evalCall(id ast.ExprID, env *Env) (heap.Value, error) {
	expr := in.arenas.Exprs.Get(id)
	data, _ := in.arenas.Exprs.Call(id)

	if ident, ok := in.arenas.Exprs.Ident(data.Target); ok {
		if _, bound := env.Lookup(ident.Name); !bound {
			switch ident.Name {
			case in.assertID:
				return in.builtinAssert(id, env)
			case in.pushID:
				return in.builtinPush(id, env)
			}
		}
	}

	target, err := in.evalExpr(data.Target, env)
	if err != nil {
		return heap.Null, err
	}
	if target.Kind != heap.VKFunc {
		return heap.Null, typeError(expr.Span, "call of non-callable (%s)", target.Kind)
	}
	fn := in.lookupFunc(target.Fn)
	if fn == nil {
		return heap.Null, typeError(expr.Span, "call of non-callable (invalid function)")
	}
	if len(data.Args) != len(fn.params) {
		name := in.arenas.StringsInterner.MustLookup(fn.name)
		return heap.Null, typeError(expr.Span, "function %q expects %d argument(s), got %d",
			name, len(fn.params), len(data.Args))
	}

	callEnv := NewEnv(fn.closure)
	for i, argID := range data.Args {
		arg, err := in.evalExpr(argID, env)
		if err != nil {
			return heap.Null, err
		}
		callEnv.Define(fn.params[i], arg)
	}

	if err := in.execStmt(fn.body, callEnv); err != nil {
		if ret, isReturn := err.(*returnSignal); isReturn {
			return ret.value, nil
		}
		return heap.Null, err
	}
	return heap.Null, nil
}

// assert(cond) / assert(cond, message): аварийно завершает прогон, если
// условие ложно.
func (in *Interp) builtinAssert(id ast.ExprID, env *Env) (heap.Value, error) {
	expr := in.arenas.Exprs.Get(id)
	data, _ := in.arenas.Exprs.Call(id)
	if len(data.Args) < 1 || len(data.Args) > 2 {
		return heap.Null, typeError(expr.Span, "assert expects 1 or 2 arguments, got %d", len(data.Args))
	}
	cond, err := in.evalExpr(data.Args[0], env)
	if err != nil {
		return heap.Null, err
	}
	if cond.Truthy() {
		return heap.Null, nil
	}
	msg := "assertion failed"
	if len(data.Args) == 2 {
		detail, err := in.evalExpr(data.Args[1], env)
		if err != nil {
			return heap.Null, err
		}
		msg = "assertion failed: " + stringify(detail)
	}
	return heap.Null, assertionError(expr.Span, "%s", msg)
}

// push(arr, value): append через heap.ArrayPush.
func (in *Interp) builtinPush(id ast.ExprID, env *Env) (heap.Value, error) {
	expr := in.arenas.Exprs.Get(id)
	data, _ := in.arenas.Exprs.Call(id)
	if len(data.Args) != 2 {
		return heap.Null, typeError(expr.Span, "push expects 2 arguments, got %d", len(data.Args))
	}
	target, err := in.evalExpr(data.Args[0], env)
	if err != nil {
		return heap.Null, err
	}
	if target.Kind != heap.VKObject {
		return heap.Null, typeError(expr.Span, "push target must be an array, got %s", target.Kind)
	}
	obj := in.heap.GetObject(target.Obj)
	if obj != nil && !obj.IsArray() {
		return heap.Null, typeError(expr.Span, "push target must be an array, got %s", describeObject(obj))
	}
	value, err := in.evalExpr(data.Args[1], env)
	if err != nil {
		return heap.Null, err
	}
	if value.Kind == heap.VKFunc {
		return heap.Null, typeError(expr.Span, "object fields cannot hold functions")
	}
	in.heap.ArrayPush(target.Obj, value)
	return target, nil
}
