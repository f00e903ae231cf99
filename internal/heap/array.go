package heap

import (
	"fmt"

	"fortio.org/safecast"
)

// indexField converts a numeric index into its field name.
func indexField(i int) string {
	return fmt.Sprintf("%d", i)
}

// IndexField returns the field name for a non-negative array index.
func IndexField(i int) string {
	return indexField(i)
}

// ArrayLen returns the current length of the array, or 0 if the object is
// dead or has no length field.
func (h *Heap) ArrayLen(id ObjectID) int {
	v := h.GetField(id, LengthField)
	if v.Kind != VKNumber || v.Num < 0 {
		return 0
	}
	n, err := safecast.Conv[int](int64(v.Num))
	if err != nil {
		return 0
	}
	return n
}

// ArrayPush appends a value at index == length and increments length.
// Back-edges are tracked like any other field write. No-op on dead ids.
func (h *Heap) ArrayPush(id ObjectID, value Value) {
	obj := h.GetObject(id)
	if obj == nil {
		return
	}
	idx := h.ArrayLen(id)
	h.SetField(id, indexField(idx), value, false)
	h.SetField(id, LengthField, MakeNumber(float64(idx+1)), false)
}

// ArraySet writes an element slot. Writing at or past the current length
// extends length to index+1; intermediate slots stay absent and read as
// null.
func (h *Heap) ArraySet(id ObjectID, idx int, value Value) {
	obj := h.GetObject(id)
	if obj == nil || idx < 0 {
		return
	}
	h.SetField(id, indexField(idx), value, false)
	if idx >= h.ArrayLen(id) {
		h.SetField(id, LengthField, MakeNumber(float64(idx+1)), false)
	}
}

// ArrayGet reads an element slot; out-of-range reads yield null.
func (h *Heap) ArrayGet(id ObjectID, idx int) Value {
	if idx < 0 {
		return Null
	}
	return h.GetField(id, indexField(idx))
}
