package heap_test

import (
	"fmt"
	"math/rand"
	"testing"

	"cascade/internal/heap"
	"cascade/internal/testkit"
)

// Случайная последовательность операций с фиксированным seed: после каждой
// операции симметрия ссылок, mandatory-поля и отсутствие висячих id обязаны
// держаться.
func TestRandomOperationSequenceKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	h := heap.New(nil)
	h.Types().DefineType("Strict", []heap.FieldSchema{
		{Name: "a"},
		{Name: "b", Optional: true},
	})
	h.Types().DefineType("Loose", []heap.FieldSchema{
		{Name: "a", Optional: true},
		{Name: "b", Optional: true},
	})

	var ids []heap.ObjectID
	fields := []string{"a", "b", "extra"}

	randomValue := func() heap.Value {
		switch rng.Intn(4) {
		case 0:
			return heap.Null
		case 1:
			return heap.MakeNumber(float64(rng.Intn(100)))
		case 2:
			return heap.MakeString("s")
		default:
			if len(ids) == 0 {
				return heap.Null
			}
			return heap.MakeObject(ids[rng.Intn(len(ids))])
		}
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 3: // create
			typeName := ""
			if rng.Intn(2) == 0 {
				typeName = []string{"Strict", "Loose"}[rng.Intn(2)]
			}
			var inits []heap.InitField
			for _, f := range fields[:rng.Intn(3)] {
				inits = append(inits, heap.InitField{Name: f, Value: randomValue()})
			}
			ids = append(ids, h.CreateObject(typeName, inits))

		case op == 3: // create array
			var elems []heap.Value
			for i := 0; i < rng.Intn(4); i++ {
				elems = append(elems, randomValue())
			}
			ids = append(ids, h.CreateArray(elems))

		case op < 8: // set field
			if len(ids) == 0 {
				continue
			}
			id := ids[rng.Intn(len(ids))]
			field := fields[rng.Intn(len(fields))]
			value := randomValue()
			h.SetField(id, field, value, h.IsFieldMandatory(id, field))

		case op == 8: // array push / set
			if len(ids) == 0 {
				continue
			}
			id := ids[rng.Intn(len(ids))]
			obj := h.GetObject(id)
			if obj == nil || !obj.IsArray() {
				continue
			}
			if rng.Intn(2) == 0 {
				h.ArrayPush(id, randomValue())
			} else {
				h.ArraySet(id, rng.Intn(6), randomValue())
			}

		default: // explicit cascade
			if len(ids) == 0 {
				continue
			}
			h.DeleteCascade(ids[rng.Intn(len(ids))])
		}

		if err := testkit.CheckHeapInvariants(h); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	build := func() *heap.Heap {
		h := heap.New(nil)
		h.Types().DefineType("N", []heap.FieldSchema{{Name: "id"}, {Name: "next", Optional: true}})
		a := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(1)}})
		b := h.CreateObject("N", []heap.InitField{{Name: "id", Value: heap.MakeNumber(2)}})
		h.SetField(a, "next", heap.MakeObject(b), false)
		h.CreateArray([]heap.Value{heap.MakeObject(a), heap.MakeString("x")})
		return h
	}

	s1 := build().BuildSnapshot()
	s2 := build().BuildSnapshot()

	if fmt.Sprintf("%+v", s1) != fmt.Sprintf("%+v", s2) {
		t.Fatal("snapshots of identical histories differ")
	}
	if len(s1.Objects) != 3 {
		t.Fatalf("snapshot has %d objects, want 3", len(s1.Objects))
	}
	if s1.Objects[2].Type != heap.ArrayTypeName {
		t.Errorf("third object type = %q, want %q", s1.Objects[2].Type, heap.ArrayTypeName)
	}
}
