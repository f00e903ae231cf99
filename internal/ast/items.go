package ast

import (
	"cascade/internal/source"
)

type ItemKind uint8

const (
	ItemStruct ItemKind = iota
	ItemFn
	ItemStmt
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// StructField describes one declared field of a struct.
type StructField struct {
	Name     source.StringID
	Optional bool
	Span     source.Span
}

// StructItem represents: struct Name { [optional|mandatory] field, ... }
type StructItem struct {
	Name   source.StringID
	Fields []StructField
}

// FnParam describes one declared parameter.
type FnParam struct {
	Name source.StringID
	Span source.Span
}

// FnItem represents: fn name(params) { body }
type FnItem struct {
	Name   source.StringID
	Params []FnParam
	Body   StmtID // StmtBlock
}

// StmtItem wraps a top-level statement as an item.
type StmtItem struct {
	Stmt StmtID
}

// Items manages allocation of top-level declarations.
type Items struct {
	Arena     *Arena[Item]
	Structs   *Arena[StructItem]
	Fns       *Arena[FnItem]
	StmtItems *Arena[StmtItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Structs:   NewArena[StructItem](capHint),
		Fns:       NewArena[FnItem](capHint),
		StmtItems: NewArena[StmtItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the item with the given ID.
func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NewStruct creates a new struct declaration item.
func (i *Items) NewStruct(span source.Span, name source.StringID, fields []StructField) ItemID {
	payload := i.Structs.Allocate(StructItem{
		Name:   name,
		Fields: append([]StructField(nil), fields...),
	})
	return i.new(ItemStruct, span, PayloadID(payload))
}

// Struct returns the struct data for the given item ID.
func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

// NewFn creates a new function declaration item.
func (i *Items) NewFn(span source.Span, name source.StringID, params []FnParam, body StmtID) ItemID {
	payload := i.Fns.Allocate(FnItem{
		Name:   name,
		Params: append([]FnParam(nil), params...),
		Body:   body,
	})
	return i.new(ItemFn, span, PayloadID(payload))
}

// Fn returns the function data for the given item ID.
func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

// NewStmtItem wraps a statement as a top-level item.
func (i *Items) NewStmtItem(span source.Span, stmt StmtID) ItemID {
	payload := i.StmtItems.Allocate(StmtItem{Stmt: stmt})
	return i.new(ItemStmt, span, PayloadID(payload))
}

// StmtItem returns the wrapped statement for the given item ID.
func (i *Items) StmtItem(id ItemID) (*StmtItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStmt {
		return nil, false
	}
	return i.StmtItems.Get(uint32(item.Payload)), true
}
