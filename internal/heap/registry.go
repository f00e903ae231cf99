package heap

// FieldSchema describes one declared field of a registered type.
type FieldSchema struct {
	Name     string
	Optional bool
}

// TypeSchema is an immutable snapshot of a type declaration.
type TypeSchema struct {
	Name   string
	Fields []FieldSchema
}

// Registry stores type schemas consulted for field mandatoriness.
// Redefinition replaces the prior schema; existing objects are unaffected,
// mandatoriness checks on subsequent writes use the latest schema.
type Registry struct {
	schemas   map[string]TypeSchema
	mandatory map[string]map[string]bool // type -> field -> mandatory?
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   make(map[string]TypeSchema),
		mandatory: make(map[string]map[string]bool),
	}
}

// DefineType registers (or replaces) a schema.
func (r *Registry) DefineType(name string, fields []FieldSchema) {
	schema := TypeSchema{
		Name:   name,
		Fields: append([]FieldSchema(nil), fields...),
	}
	byField := make(map[string]bool, len(fields))
	for _, f := range fields {
		byField[f.Name] = !f.Optional
	}
	r.schemas[name] = schema
	r.mandatory[name] = byField
}

// IsFieldMandatory reports whether the field is mandatory on the type:
// true iff the type is registered, the field exists in its schema, and the
// field is not optional. An untyped object (empty type name) has no
// mandatory fields.
func (r *Registry) IsFieldMandatory(typeName, field string) bool {
	if typeName == "" {
		return false
	}
	byField, ok := r.mandatory[typeName]
	if !ok {
		return false
	}
	return byField[field]
}

// Schema returns the registered schema for the type, if any.
func (r *Registry) Schema(name string) (TypeSchema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// HasType reports whether the type name is registered.
func (r *Registry) HasType(name string) bool {
	_, ok := r.schemas[name]
	return ok
}
