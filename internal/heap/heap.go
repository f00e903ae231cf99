package heap

// BackEdge records that some object holds a field pointing at the indexed
// object: the pair (parent id, field name).
type BackEdge struct {
	Parent ObjectID
	Field  string
}

// InitField is an initial field value for CreateObject.
type InitField struct {
	Name  string
	Value Value
}

// Heap stores all owned runtime objects and the reverse-reference index.
// Object ids are monotonically increasing and never reused within a run.
type Heap struct {
	next        ObjectID
	nextAllocID uint64
	objs        map[ObjectID]*Object
	rev         map[ObjectID][]BackEdge // back-edges in insertion order
	types       *Registry
}

// New creates an empty heap backed by the given registry.
// A nil registry is replaced with a fresh empty one.
func New(types *Registry) *Heap {
	if types == nil {
		types = NewRegistry()
	}
	return &Heap{
		next:        1,
		nextAllocID: 1,
		objs:        make(map[ObjectID]*Object, 128),
		rev:         make(map[ObjectID][]BackEdge),
		types:       types,
	}
}

// Types returns the registry consulted for mandatoriness checks.
func (h *Heap) Types() *Registry {
	return h.types
}

func (h *Heap) alloc(typeName string) (ObjectID, *Object) {
	id := h.next
	h.next++
	allocID := h.nextAllocID
	h.nextAllocID++
	obj := &Object{
		ID:      id,
		Type:    typeName,
		Alive:   true,
		AllocID: allocID,
		fields:  make(map[string]Value),
	}
	h.objs[id] = obj
	return id, obj
}

// CreateObject allocates a new object with an optional type name and
// initial fields, patching the reverse index for object-valued initials.
// Mandatoriness is NOT validated on construction: new objects are allowed
// to be incomplete, the cascade only fires on a later explicit null write.
// Null initials are treated as absent — the field is simply not installed,
// which reads back as null and keeps mandatory fields free of stored nulls.
func (h *Heap) CreateObject(typeName string, inits []InitField) ObjectID {
	id, obj := h.alloc(typeName)
	for _, init := range inits {
		v := h.sanitize(init.Value)
		if v.IsNull() {
			continue
		}
		// повторная инициализация того же имени заменяет значение и ребро
		if prev, ok := obj.Field(init.Name); ok && prev.IsObject() {
			h.removeBackEdge(prev.Obj, BackEdge{Parent: id, Field: init.Name})
		}
		obj.setField(init.Name, v)
		if v.IsObject() {
			h.addBackEdge(v.Obj, BackEdge{Parent: id, Field: init.Name})
		}
	}
	return id
}

// CreateArray allocates an array object holding the given elements.
func (h *Heap) CreateArray(elements []Value) ObjectID {
	id, obj := h.alloc(ArrayTypeName)
	for i, elem := range elements {
		name := indexField(i)
		obj.setField(name, h.sanitize(elem))
		if v, ok := obj.Field(name); ok && v.IsObject() {
			h.addBackEdge(v.Obj, BackEdge{Parent: id, Field: name})
		}
	}
	obj.setField(LengthField, MakeNumber(float64(len(elements))))
	return id
}

// sanitize replaces identifiers of dead objects with null so no dangling
// identifier is ever installed.
func (h *Heap) sanitize(v Value) Value {
	if v.IsObject() && !h.Live(v.Obj) {
		return Null
	}
	return v
}

// Live reports whether the id names a live object.
func (h *Heap) Live(id ObjectID) bool {
	obj, ok := h.objs[id]
	return ok && obj.Alive
}

// GetObject returns the object record, or nil if the id is dead or unknown.
func (h *Heap) GetObject(id ObjectID) *Object {
	obj, ok := h.objs[id]
	if !ok || !obj.Alive {
		return nil
	}
	return obj
}

// GetField returns the field value, or null if the field is absent or the
// object is dead.
func (h *Heap) GetField(id ObjectID, name string) Value {
	obj := h.GetObject(id)
	if obj == nil {
		return Null
	}
	v, ok := obj.Field(name)
	if !ok {
		return Null
	}
	return v
}

// SetField is the single mutating entry point for field writes.
//
//  1. If the parent is dead, the call is a no-op.
//  2. The previous value's back-edge (if any) is removed.
//  3. Writing null into a mandatory field does NOT install the write:
//     the holder is cascade-deleted instead. The null is never stored.
//     Identifiers of dead objects sanitize to null first, so a dead-id
//     write to a mandatory field cascades too.
//  4. Otherwise the write is installed and the reverse index patched.
func (h *Heap) SetField(parentID ObjectID, name string, value Value, isMandatory bool) {
	parent := h.GetObject(parentID)
	if parent == nil {
		return
	}

	if prev, ok := parent.Field(name); ok && prev.IsObject() {
		h.removeBackEdge(prev.Obj, BackEdge{Parent: parentID, Field: name})
	}

	value = h.sanitize(value)

	if value.IsNull() && isMandatory {
		h.DeleteCascade(parentID)
		return
	}

	parent.setField(name, value)
	if value.IsObject() {
		h.addBackEdge(value.Obj, BackEdge{Parent: parentID, Field: name})
	}
}

// IsFieldMandatory resolves mandatoriness of a field write against the
// holder's type schema. Dead or untyped holders have no mandatory fields.
func (h *Heap) IsFieldMandatory(id ObjectID, field string) bool {
	obj := h.GetObject(id)
	if obj == nil {
		return false
	}
	return h.types.IsFieldMandatory(obj.Type, field)
}

// BackEdges returns a copy of the reverse index entry for the object,
// in back-edge insertion order.
func (h *Heap) BackEdges(id ObjectID) []BackEdge {
	edges := h.rev[id]
	return append([]BackEdge(nil), edges...)
}

// NumObjects returns the number of live objects.
func (h *Heap) NumObjects() int {
	n := 0
	for _, obj := range h.objs {
		if obj.Alive {
			n++
		}
	}
	return n
}

// LiveObjects returns the ids of all live objects in allocation order.
func (h *Heap) LiveObjects() []ObjectID {
	ids := make([]ObjectID, 0, len(h.objs))
	for id := ObjectID(1); id < h.next; id++ {
		if h.Live(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// NextID returns the next id to be allocated. Useful for tests and dumps.
func (h *Heap) NextID() ObjectID {
	return h.next
}

func (h *Heap) addBackEdge(target ObjectID, edge BackEdge) {
	if !h.Live(target) {
		return
	}
	h.rev[target] = append(h.rev[target], edge)
}

func (h *Heap) removeBackEdge(target ObjectID, edge BackEdge) {
	edges := h.rev[target]
	for i, e := range edges {
		if e == edge {
			h.rev[target] = append(edges[:i], edges[i+1:]...)
			if len(h.rev[target]) == 0 {
				delete(h.rev, target)
			}
			return
		}
	}
}
