package heap

import (
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot schema version - increment when the dump format changes.
const snapshotSchemaVersion uint16 = 1

// SnapshotValue is the wire form of a Value.
type SnapshotValue struct {
	Kind uint8   `msgpack:"kind"`
	Num  float64 `msgpack:"num,omitempty"`
	Bool bool    `msgpack:"bool,omitempty"`
	Str  string  `msgpack:"str,omitempty"`
	Obj  uint32  `msgpack:"obj,omitempty"`
}

// SnapshotField is one field of a dumped object.
type SnapshotField struct {
	Name  string        `msgpack:"name"`
	Value SnapshotValue `msgpack:"value"`
}

// SnapshotEdge is one reverse-index back-edge of a dumped object.
type SnapshotEdge struct {
	Parent uint32 `msgpack:"parent"`
	Field  string `msgpack:"field"`
}

// SnapshotObject is the wire form of a live object.
type SnapshotObject struct {
	ID     uint32          `msgpack:"id"`
	Alloc  uint64          `msgpack:"alloc"`
	Type   string          `msgpack:"type,omitempty"`
	Fields []SnapshotField `msgpack:"fields"`
	Edges  []SnapshotEdge  `msgpack:"edges,omitempty"`
}

// Snapshot is a write-only debugging dump of the surviving heap.
// It is never read back by the interpreter.
type Snapshot struct {
	Schema  uint16           `msgpack:"schema"`
	NextID  uint32           `msgpack:"next_id"`
	Objects []SnapshotObject `msgpack:"objects"`
}

// BuildSnapshot collects the live heap into a deterministic snapshot:
// objects ordered by id, fields in insertion order, back-edges sorted by
// (parent id, field name).
func (h *Heap) BuildSnapshot() Snapshot {
	snap := Snapshot{
		Schema: snapshotSchemaVersion,
		NextID: uint32(h.next),
	}
	for id := ObjectID(1); id < h.next; id++ {
		obj, ok := h.objs[id]
		if !ok || !obj.Alive {
			continue
		}
		so := SnapshotObject{
			ID:    uint32(id),
			Alloc: obj.AllocID,
			Type:  obj.Type,
		}
		for _, name := range obj.FieldNames() {
			v, _ := obj.Field(name)
			so.Fields = append(so.Fields, SnapshotField{
				Name:  name,
				Value: snapshotValue(v),
			})
		}
		edges := append([]BackEdge(nil), h.rev[id]...)
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Parent != edges[j].Parent {
				return edges[i].Parent < edges[j].Parent
			}
			return edges[i].Field < edges[j].Field
		})
		for _, e := range edges {
			so.Edges = append(so.Edges, SnapshotEdge{Parent: uint32(e.Parent), Field: e.Field})
		}
		snap.Objects = append(snap.Objects, so)
	}
	return snap
}

// WriteSnapshot encodes the snapshot as msgpack to w.
func (h *Heap) WriteSnapshot(w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(h.BuildSnapshot())
}

func snapshotValue(v Value) SnapshotValue {
	sv := SnapshotValue{Kind: uint8(v.Kind)}
	switch v.Kind {
	case VKNumber:
		sv.Num = v.Num
	case VKBool:
		sv.Bool = v.Bool
	case VKString:
		sv.Str = v.Str
	case VKObject:
		sv.Obj = uint32(v.Obj)
	}
	return sv
}
