package heap_test

import (
	"testing"

	"cascade/internal/heap"
	"cascade/internal/testkit"
)

func newNodeHeap(t *testing.T, fields ...heap.FieldSchema) *heap.Heap {
	t.Helper()
	h := heap.New(nil)
	h.Types().DefineType("N", fields)
	return h
}

func TestCreateObjectInstallsFieldsAndBackEdges(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"}, heap.FieldSchema{Name: "next", Optional: true})

	a := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(1)}})
	b := h.CreateObject("N", []heap.InitField{
		{Name: "id", Value: heap.MakeNumber(2)},
		{Name: "next", Value: heap.MakeObject(a)},
	})

	if got := h.GetField(b, "id"); got.Num != 2 {
		t.Errorf("b.id = %v, want 2", got)
	}
	if got := h.GetField(b, "next"); !got.IsObject() || got.Obj != a {
		t.Errorf("b.next = %v, want object %d", got, a)
	}

	edges := h.BackEdges(a)
	if len(edges) != 1 || edges[0] != (heap.BackEdge{Parent: b, Field: "next"}) {
		t.Errorf("back-edges of a = %v, want [(b, next)]", edges)
	}

	if err := testkit.CheckHeapInvariants(h); err != nil {
		t.Fatal(err)
	}
}

func TestIdentifiersAreDenseAndNeverReused(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"})

	a := h.CreateObject("N", nil)
	b := h.CreateObject("N", nil)
	if b != a+1 {
		t.Fatalf("ids not dense: %d then %d", a, b)
	}

	h.SetField(b, "id", heap.Null, true) // delete b
	c := h.CreateObject("N", nil)
	if c == b {
		t.Fatalf("id %d was reused after deletion", b)
	}
	if c != b+1 {
		t.Fatalf("allocation not monotonic: %d after %d", c, b)
	}
}

func TestGetFieldOnDeadOrAbsent(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"})
	a := h.CreateObject("N", nil)

	if got := h.GetField(a, "missing"); !got.IsNull() {
		t.Errorf("absent field = %v, want null", got)
	}

	h.DeleteCascade(a)
	if got := h.GetField(a, "id"); !got.IsNull() {
		t.Errorf("field of dead object = %v, want null", got)
	}
	if h.GetObject(a) != nil {
		t.Error("GetObject on dead id should return nil")
	}
}

func TestSetFieldOnDeadIsNoOp(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"})
	a := h.CreateObject("N", nil)
	b := h.CreateObject("N", nil)
	h.DeleteCascade(a)

	// запись в мёртвый объект молча игнорируется и не трогает reverse index
	h.SetField(a, "id", heap.MakeObject(b), false)
	if len(h.BackEdges(b)) != 0 {
		t.Errorf("dead write created back-edges: %v", h.BackEdges(b))
	}
	if err := testkit.CheckHeapInvariants(h); err != nil {
		t.Fatal(err)
	}
}

func TestSetFieldReplacesBackEdge(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "next", Optional: true})
	a := h.CreateObject("N", nil)
	b := h.CreateObject("N", nil)
	c := h.CreateObject("N", nil)

	h.SetField(a, "next", heap.MakeObject(b), false)
	h.SetField(a, "next", heap.MakeObject(c), false)

	if len(h.BackEdges(b)) != 0 {
		t.Errorf("stale back-edge on b: %v", h.BackEdges(b))
	}
	if edges := h.BackEdges(c); len(edges) != 1 || edges[0].Parent != a {
		t.Errorf("back-edges of c = %v, want [(a, next)]", edges)
	}
	if err := testkit.CheckHeapInvariants(h); err != nil {
		t.Fatal(err)
	}
}

func TestNullOnOptionalFieldIsPlainWrite(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"}, heap.FieldSchema{Name: "next", Optional: true})
	a := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(1)}})
	b := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(2)}})
	h.SetField(a, "next", heap.MakeObject(b), false)

	h.SetField(a, "next", heap.Null, false)

	if !h.Live(a) || !h.Live(b) {
		t.Fatal("nulling an optional field must not delete anything")
	}
	if got := h.GetField(a, "next"); !got.IsNull() {
		t.Errorf("a.next = %v, want null", got)
	}
	if got := h.GetField(a, "id"); got.Num != 1 {
		t.Errorf("a.id = %v, want untouched 1", got)
	}
	if len(h.BackEdges(b)) != 0 {
		t.Errorf("back-edges of b = %v, want empty", h.BackEdges(b))
	}
	if err := testkit.CheckHeapInvariants(h); err != nil {
		t.Fatal(err)
	}
}

func TestMandatoryNullIsNeverStored(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"})
	a := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(1)}})

	h.SetField(a, "id", heap.Null, true)

	if h.Live(a) {
		t.Fatal("object must die when its mandatory field is nulled")
	}
}

func TestDanglingIdentifierIsNeverInstalled(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"}, heap.FieldSchema{Name: "next", Optional: true})
	a := h.CreateObject("N", nil)
	b := h.CreateObject("N", nil)
	h.DeleteCascade(b)

	h.SetField(a, "next", heap.MakeObject(b), false)
	if got := h.GetField(a, "next"); !got.IsNull() {
		t.Errorf("write of dead id stored %v, want null", got)
	}

	c := h.CreateObject("N", []heap.InitField{{Name: "next", Value: heap.MakeObject(b)}})
	if got := h.GetField(c, "next"); !got.IsNull() {
		t.Errorf("construction with dead id stored %v, want null", got)
	}
	if err := testkit.CheckHeapInvariants(h); err != nil {
		t.Fatal(err)
	}
}

func TestConstructionDoesNotValidateMandatoriness(t *testing.T) {
	h := newNodeHeap(t, heap.FieldSchema{Name: "id"})

	// new N { } без mandatory поля — легально, каскад не срабатывает
	a := h.CreateObject("N", nil)
	if !h.Live(a) {
		t.Fatal("incomplete construction must be accepted")
	}
}
