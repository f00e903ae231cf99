package testkit

import (
	"fmt"

	"cascade/internal/heap"
)

// CheckHeapInvariants runs the full invariant suite on a heap:
// 1) forward/reverse symmetry: every object-valued field has exactly one
// matching back-edge, and every back-edge has a matching forward field
// 2) no live object has a mandatory field holding null
// 3) no live object's field references a dead identifier
func CheckHeapInvariants(h *heap.Heap) error {
	if err := CheckSymmetry(h); err != nil {
		return err
	}
	if err := CheckMandatoryNotNull(h); err != nil {
		return err
	}
	return CheckNoDangling(h)
}

// CheckSymmetry validates forward/reverse symmetry in both directions.
func CheckSymmetry(h *heap.Heap) error {
	// forward -> reverse
	for _, id := range h.LiveObjects() {
		obj := h.GetObject(id)
		for _, name := range obj.FieldNames() {
			v, _ := obj.Field(name)
			if !v.IsObject() {
				continue
			}
			count := 0
			for _, edge := range h.BackEdges(v.Obj) {
				if edge.Parent == id && edge.Field == name {
					count++
				}
			}
			if count != 1 {
				return fmt.Errorf("object %d field %q -> %d: expected exactly one back-edge, found %d",
					id, name, v.Obj, count)
			}
		}
	}

	// reverse -> forward
	for _, id := range h.LiveObjects() {
		for _, edge := range h.BackEdges(id) {
			parent := h.GetObject(edge.Parent)
			if parent == nil {
				return fmt.Errorf("object %d has back-edge from dead parent %d", id, edge.Parent)
			}
			v, ok := parent.Field(edge.Field)
			if !ok || !v.IsObject() || v.Obj != id {
				return fmt.Errorf("object %d back-edge (%d, %q) has no matching forward field",
					id, edge.Parent, edge.Field)
			}
		}
	}
	return nil
}

// CheckMandatoryNotNull validates that no live object holds null in a
// field its schema marks mandatory.
func CheckMandatoryNotNull(h *heap.Heap) error {
	for _, id := range h.LiveObjects() {
		obj := h.GetObject(id)
		if obj.Type == "" {
			continue
		}
		schema, ok := h.Types().Schema(obj.Type)
		if !ok {
			continue
		}
		for _, f := range schema.Fields {
			if f.Optional {
				continue
			}
			if v, has := obj.Field(f.Name); has && v.IsNull() {
				return fmt.Errorf("object %d (%s) holds null in mandatory field %q", id, obj.Type, f.Name)
			}
		}
	}
	return nil
}

// CheckNoDangling validates that no live object's field references a dead
// identifier.
func CheckNoDangling(h *heap.Heap) error {
	for _, id := range h.LiveObjects() {
		obj := h.GetObject(id)
		for _, name := range obj.FieldNames() {
			v, _ := obj.Field(name)
			if v.IsObject() && !h.Live(v.Obj) {
				return fmt.Errorf("object %d field %q references dead identifier %d", id, name, v.Obj)
			}
		}
	}
	return nil
}
