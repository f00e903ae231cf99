package ast

import (
	"cascade/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprGroup
	ExprCall
	ExprMember
	ExprIndex
	ExprNew
	ExprObjectLit
	ExprArrayLit
)

type ExprLitKind uint8

const (
	LitNumber ExprLitKind = iota
	LitString
	LitBool
	LitNull
)

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota
	ExprUnaryNot
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData: Value — сырой текст токена (без кавычек для строк разбирает evaluator).
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  source.StringID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// FieldInit — инициализатор поля в new-выражении или объектном литерале.
type FieldInit struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

// ExprNewData represents: new TypeName { field: expr, ... }
type ExprNewData struct {
	Type   source.StringID
	Fields []FieldInit
}

// ExprObjectLitData represents an untyped literal: { field: expr, ... }
type ExprObjectLitData struct {
	Fields []FieldInit
}

type ExprArrayLitData struct {
	Elements []ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Idents     *Arena[ExprIdentData]
	Literals   *Arena[ExprLiteralData]
	Binaries   *Arena[ExprBinaryData]
	Unaries    *Arena[ExprUnaryData]
	Groups     *Arena[ExprGroupData]
	Calls      *Arena[ExprCallData]
	Members    *Arena[ExprMemberData]
	Indices    *Arena[ExprIndexData]
	News       *Arena[ExprNewData]
	ObjectLits *Arena[ExprObjectLitData]
	ArrayLits  *Arena[ExprArrayLitData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Idents:     NewArena[ExprIdentData](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Binaries:   NewArena[ExprBinaryData](capHint),
		Unaries:    NewArena[ExprUnaryData](capHint),
		Groups:     NewArena[ExprGroupData](capHint),
		Calls:      NewArena[ExprCallData](capHint),
		Members:    NewArena[ExprMemberData](capHint),
		Indices:    NewArena[ExprIndexData](capHint),
		News:       NewArena[ExprNewData](capHint),
		ObjectLits: NewArena[ExprObjectLitData](capHint),
		ArrayLits:  NewArena[ExprArrayLitData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewGroup creates a new parenthesized group expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

// Group returns the group data for the given expression ID.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target: target,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewMember creates a new member access expression.
func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Field: field})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewIndex creates a new index expression.
func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewNew creates a new constructor expression.
func (e *Exprs) NewNew(span source.Span, typ source.StringID, fields []FieldInit) ExprID {
	payload := e.News.Allocate(ExprNewData{
		Type:   typ,
		Fields: append([]FieldInit(nil), fields...),
	})
	return e.new(ExprNew, span, PayloadID(payload))
}

// New returns the constructor data for the given expression ID.
func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(uint32(expr.Payload)), true
}

// NewObjectLit creates a new untyped object literal expression.
func (e *Exprs) NewObjectLit(span source.Span, fields []FieldInit) ExprID {
	payload := e.ObjectLits.Allocate(ExprObjectLitData{
		Fields: append([]FieldInit(nil), fields...),
	})
	return e.new(ExprObjectLit, span, PayloadID(payload))
}

// ObjectLit returns the object literal data for the given expression ID.
func (e *Exprs) ObjectLit(id ExprID) (*ExprObjectLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObjectLit {
		return nil, false
	}
	return e.ObjectLits.Get(uint32(expr.Payload)), true
}

// NewArrayLit creates a new array literal expression.
func (e *Exprs) NewArrayLit(span source.Span, elements []ExprID) ExprID {
	payload := e.ArrayLits.Allocate(ExprArrayLitData{
		Elements: append([]ExprID(nil), elements...),
	})
	return e.new(ExprArrayLit, span, PayloadID(payload))
}

// ArrayLit returns the array literal data for the given expression ID.
func (e *Exprs) ArrayLit(id ExprID) (*ExprArrayLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrayLit {
		return nil, false
	}
	return e.ArrayLits.Get(uint32(expr.Payload)), true
}
