package heap

import "sort"

// DeleteCascade destroys the object named by rootID and propagates the
// destruction through mandatory back-edges.
//
// The algorithm runs on an explicit work stack with a visited set, so
// cycles of mandatory references terminate: a cycle in which all edges
// are mandatory is destroyed in its entirety if any node on it dies.
// Forward links of parents are nulled by writing the field map directly,
// bypassing SetField, so the cascade never re-enters itself through the
// normal write path.
func (h *Heap) DeleteCascade(rootID ObjectID) {
	stack := []ObjectID{rootID}
	visited := make(map[ObjectID]struct{})

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}

		obj, ok := h.objs[cur]
		if !ok || !obj.Alive {
			continue
		}

		// 1. Распространение на родителей через reverse index.
		// Порядок детерминированный: (parent id, field name).
		edges := append([]BackEdge(nil), h.rev[cur]...)
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Parent != edges[j].Parent {
				return edges[i].Parent < edges[j].Parent
			}
			return edges[i].Field < edges[j].Field
		})
		for _, edge := range edges {
			parent, okParent := h.objs[edge.Parent]
			if okParent && parent.Alive {
				if v, has := parent.Field(edge.Field); has && v.IsObject() && v.Obj == cur {
					// прямое обнуление forward-связи, мимо SetField
					parent.fields[edge.Field] = Null
				}
				if h.types.IsFieldMandatory(parent.Type, edge.Field) {
					stack = append(stack, edge.Parent)
				}
			}
			h.removeBackEdge(cur, edge)
		}

		// 2. Обрываем исходящие ссылки (в порядке записи полей).
		for _, name := range obj.FieldNames() {
			if v, has := obj.Field(name); has && v.IsObject() {
				h.removeBackEdge(v.Obj, BackEdge{Parent: cur, Field: name})
			}
		}

		// 3. Уничтожаем cur. ID навсегда выбывает из оборота.
		obj.Alive = false
		obj.fields = nil
		obj.order = nil
		delete(h.rev, cur)
	}
}
