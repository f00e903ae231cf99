package interp

import (
	"math"
	"strconv"
	"strings"

	"cascade/internal/ast"
	"cascade/internal/heap"
	"cascade/internal/source"
)

func (in *Interp) evalExpr(id ast.ExprID, env *Env) (heap.Value, error) {
	expr := in.arenas.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := in.arenas.Exprs.Ident(id)
		if v, ok := env.Lookup(data.Name); ok {
			return v, nil
		}
		name := in.arenas.StringsInterner.MustLookup(data.Name)
		return heap.Null, referenceError(expr.Span, "undefined variable %q", name)

	case ast.ExprLit:
		data, _ := in.arenas.Exprs.Literal(id)
		return in.evalLiteral(data, expr.Span)

	case ast.ExprBinary:
		return in.evalBinary(id, env)

	case ast.ExprUnary:
		data, _ := in.arenas.Exprs.Unary(id)
		operand, err := in.evalExpr(data.Operand, env)
		if err != nil {
			return heap.Null, err
		}
		switch data.Op {
		case ast.ExprUnaryMinus:
			if operand.Kind != heap.VKNumber {
				return heap.Null, typeError(expr.Span, "unary '-' requires a number, got %s", operand.Kind)
			}
			return heap.MakeNumber(-operand.Num), nil
		case ast.ExprUnaryNot:
			return heap.MakeBool(!operand.Truthy()), nil
		default:
			return heap.Null, typeError(expr.Span, "unsupported unary operator")
		}

	case ast.ExprGroup:
		data, _ := in.arenas.Exprs.Group(id)
		return in.evalExpr(data.Inner, env)

	case ast.ExprCall:
		return in.evalCall(id, env)

	case ast.ExprMember:
		data, _ := in.arenas.Exprs.Member(id)
		target, err := in.evalExpr(data.Target, env)
		if err != nil {
			return heap.Null, err
		}
		if target.Kind != heap.VKObject {
			return heap.Null, typeError(expr.Span, "field access on non-object (%s)", target.Kind)
		}
		field := in.arenas.StringsInterner.MustLookup(data.Field)
		return in.heap.GetField(target.Obj, field), nil

	case ast.ExprIndex:
		data, _ := in.arenas.Exprs.Index(id)
		target, err := in.evalExpr(data.Target, env)
		if err != nil {
			return heap.Null, err
		}
		idx, err := in.evalArrayIndex(target, data.Index, expr.Span, env)
		if err != nil {
			return heap.Null, err
		}
		return in.heap.ArrayGet(target.Obj, idx), nil

	case ast.ExprNew:
		data, _ := in.arenas.Exprs.New(id)
		typeName := in.arenas.StringsInterner.MustLookup(data.Type)
		inits, err := in.evalFieldInits(data.Fields, expr.Span, env)
		if err != nil {
			return heap.Null, err
		}
		return heap.MakeObject(in.heap.CreateObject(typeName, inits)), nil

	case ast.ExprObjectLit:
		data, _ := in.arenas.Exprs.ObjectLit(id)
		inits, err := in.evalFieldInits(data.Fields, expr.Span, env)
		if err != nil {
			return heap.Null, err
		}
		return heap.MakeObject(in.heap.CreateObject("", inits)), nil

	case ast.ExprArrayLit:
		data, _ := in.arenas.Exprs.ArrayLit(id)
		elements := make([]heap.Value, 0, len(data.Elements))
		for _, elemID := range data.Elements {
			elem, err := in.evalExpr(elemID, env)
			if err != nil {
				return heap.Null, err
			}
			if elem.Kind == heap.VKFunc {
				elemSpan := in.arenas.Exprs.Get(elemID).Span
				return heap.Null, typeError(elemSpan, "object fields cannot hold functions")
			}
			elements = append(elements, elem)
		}
		return heap.MakeObject(in.heap.CreateArray(elements)), nil

	default:
		return heap.Null, typeError(expr.Span, "unsupported expression")
	}
}

func (in *Interp) evalLiteral(data *ast.ExprLiteralData, sp source.Span) (heap.Value, error) {
	switch data.Kind {
	case ast.LitNull:
		return heap.Null, nil
	case ast.LitBool:
		text := in.arenas.StringsInterner.MustLookup(data.Value)
		return heap.MakeBool(text == "true"), nil
	case ast.LitNumber:
		text := in.arenas.StringsInterner.MustLookup(data.Value)
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return heap.Null, typeError(sp, "invalid number literal %q", text)
		}
		return heap.MakeNumber(n), nil
	case ast.LitString:
		text := in.arenas.StringsInterner.MustLookup(data.Value)
		return heap.MakeString(unquoteString(text)), nil
	default:
		return heap.Null, typeError(sp, "unsupported literal")
	}
}

// unquoteString снимает кавычки и разворачивает \" \\ \n \t \r.
// Лексер уже отрепортил неизвестные escape; здесь они проходят как есть.
func unquoteString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

func (in *Interp) evalBinary(id ast.ExprID, env *Env) (heap.Value, error) {
	expr := in.arenas.Exprs.Get(id)
	data, _ := in.arenas.Exprs.Binary(id)

	// Логические операторы вычисляются лениво.
	switch data.Op {
	case ast.ExprBinaryLogicalAnd:
		left, err := in.evalExpr(data.Left, env)
		if err != nil {
			return heap.Null, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return in.evalExpr(data.Right, env)
	case ast.ExprBinaryLogicalOr:
		left, err := in.evalExpr(data.Left, env)
		if err != nil {
			return heap.Null, err
		}
		if left.Truthy() {
			return left, nil
		}
		return in.evalExpr(data.Right, env)
	}

	left, err := in.evalExpr(data.Left, env)
	if err != nil {
		return heap.Null, err
	}
	right, err := in.evalExpr(data.Right, env)
	if err != nil {
		return heap.Null, err
	}

	switch data.Op {
	case ast.ExprBinaryEq:
		return heap.MakeBool(left.Equal(right)), nil
	case ast.ExprBinaryNotEq:
		return heap.MakeBool(!left.Equal(right)), nil

	case ast.ExprBinaryAdd:
		if left.Kind == heap.VKString || right.Kind == heap.VKString {
			return heap.MakeString(stringify(left) + stringify(right)), nil
		}
		if left.Kind == heap.VKNumber && right.Kind == heap.VKNumber {
			return heap.MakeNumber(left.Num + right.Num), nil
		}
		return heap.Null, typeError(expr.Span, "'+' requires numbers or strings, got %s and %s", left.Kind, right.Kind)

	case ast.ExprBinarySub, ast.ExprBinaryMul, ast.ExprBinaryDiv:
		if left.Kind != heap.VKNumber || right.Kind != heap.VKNumber {
			return heap.Null, typeError(expr.Span, "arithmetic requires numbers, got %s and %s", left.Kind, right.Kind)
		}
		switch data.Op {
		case ast.ExprBinarySub:
			return heap.MakeNumber(left.Num - right.Num), nil
		case ast.ExprBinaryMul:
			return heap.MakeNumber(left.Num * right.Num), nil
		default:
			// деление на ноль следует IEEE 754 (Inf/NaN), как в хосте
			return heap.MakeNumber(left.Num / right.Num), nil
		}

	case ast.ExprBinaryLess, ast.ExprBinaryLessEq, ast.ExprBinaryGreater, ast.ExprBinaryGreaterEq:
		if left.Kind == heap.VKNumber && right.Kind == heap.VKNumber {
			return heap.MakeBool(compareNumbers(data.Op, left.Num, right.Num)), nil
		}
		if left.Kind == heap.VKString && right.Kind == heap.VKString {
			return heap.MakeBool(compareStrings(data.Op, left.Str, right.Str)), nil
		}
		return heap.Null, typeError(expr.Span, "comparison requires two numbers or two strings, got %s and %s", left.Kind, right.Kind)

	default:
		return heap.Null, typeError(expr.Span, "unsupported binary operator")
	}
}

func compareNumbers(op ast.ExprBinaryOp, a, b float64) bool {
	switch op {
	case ast.ExprBinaryLess:
		return a < b
	case ast.ExprBinaryLessEq:
		return a <= b
	case ast.ExprBinaryGreater:
		return a > b
	default:
		return a >= b
	}
}

func compareStrings(op ast.ExprBinaryOp, a, b string) bool {
	switch op {
	case ast.ExprBinaryLess:
		return a < b
	case ast.ExprBinaryLessEq:
		return a <= b
	case ast.ExprBinaryGreater:
		return a > b
	default:
		return a >= b
	}
}

// stringify — конкатенационная форма значения: строки без кавычек,
// остальное как при печати.
func stringify(v heap.Value) string {
	if v.Kind == heap.VKString {
		return v.Str
	}
	return v.String()
}

func (in *Interp) evalFieldInits(fields []ast.FieldInit, sp source.Span, env *Env) ([]heap.InitField, error) {
	inits := make([]heap.InitField, 0, len(fields))
	for _, f := range fields {
		v, err := in.evalExpr(f.Value, env)
		if err != nil {
			return nil, err
		}
		if v.Kind == heap.VKFunc {
			return nil, typeError(f.Span, "object fields cannot hold functions")
		}
		inits = append(inits, heap.InitField{
			Name:  in.arenas.StringsInterner.MustLookup(f.Name),
			Value: v,
		})
	}
	return inits, nil
}

// evalArrayIndex вычисляет индекс для чтения/записи элемента массива.
// Цель обязана быть объектом-массивом (мёртвый id допустим: чтение даёт null,
// запись — no-op), индекс — неотрицательным целым числом.
func (in *Interp) evalArrayIndex(target heap.Value, indexExpr ast.ExprID, sp source.Span, env *Env) (int, error) {
	if target.Kind != heap.VKObject {
		return 0, typeError(sp, "indexing of non-array (%s)", target.Kind)
	}
	obj := in.heap.GetObject(target.Obj)
	if obj != nil && !obj.IsArray() {
		return 0, typeError(sp, "indexing of non-array (%s)", describeObject(obj))
	}

	index, err := in.evalExpr(indexExpr, env)
	if err != nil {
		return 0, err
	}
	if index.Kind != heap.VKNumber {
		return 0, typeError(sp, "array index must be a number, got %s", index.Kind)
	}
	if index.Num < 0 || index.Num != math.Trunc(index.Num) {
		return 0, typeError(sp, "array index must be a non-negative integer, got %s", index.String())
	}
	return int(index.Num), nil
}

func describeObject(obj *heap.Object) string {
	if obj.Type == "" {
		return "object"
	}
	return obj.Type
}
