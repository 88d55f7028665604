package query

import "strings"

// Accessor reads one field of T.
type Accessor[T any] func(item T) Value

type shapeField[T any] struct {
	name     string
	accessor Accessor[T]
}

// Shape is the static field table of a projectable type. Build it once at
// package init and share it; it is read-only after construction.
type Shape[T any] struct {
	name   string
	fields []shapeField[T]
	index  map[string]int // lower-cased name -> position in fields
}

// NewShape starts an empty field table. name is used in error messages.
func NewShape[T any](name string) *Shape[T] {
	return &Shape[T]{name: name, index: make(map[string]int)}
}

// Field declares a field. Declaration order is the default output order.
func (s *Shape[T]) Field(name string, accessor Accessor[T]) *Shape[T] {
	key := strings.ToLower(name)
	if i, ok := s.index[key]; ok {
		s.fields[i] = shapeField[T]{name: name, accessor: accessor}
		return s
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, shapeField[T]{name: name, accessor: accessor})
	return s
}

// Name returns the shape name.
func (s *Shape[T]) Name() string {
	return s.name
}

// FieldNames returns the declared field names in declaration order.
func (s *Shape[T]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// HasFields reports whether every name in a comma-separated list resolves.
func (s *Shape[T]) HasFields(fields string) bool {
	_, err := s.Resolve(fields)
	return err == nil
}

// Resolve turns a comma-separated field list into a Projector. A blank list
// selects every declared field. Names match case-insensitively and come out under
// their declared spelling; a repeated name is kept once, at its first position.
func (s *Shape[T]) Resolve(fields string) (Projector[T], error) {
	if strings.TrimSpace(fields) == "" {
		return Projector[T]{fields: s.fields}, nil
	}

	parts := strings.Split(fields, ",")
	selected := make([]shapeField[T], 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		i, ok := s.index[strings.ToLower(name)]
		if !ok {
			return Projector[T]{}, &FieldNotFoundError{Field: name, Shape: s.name}
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		selected = append(selected, s.fields[i])
	}
	return Projector[T]{fields: selected}, nil
}

// Project shapes a single item.
func (s *Shape[T]) Project(item T, fields string) (Record, error) {
	p, err := s.Resolve(fields)
	if err != nil {
		return Record{}, err
	}
	return p.Apply(item), nil
}

// ProjectAll shapes a batch, resolving the field list once.
func (s *Shape[T]) ProjectAll(items []T, fields string) ([]Record, error) {
	p, err := s.Resolve(fields)
	if err != nil {
		return nil, err
	}
	return p.ApplyAll(items), nil
}

// Projector is a resolved field list ready to apply to any number of items.
type Projector[T any] struct {
	fields []shapeField[T]
}

// Fields returns the canonical names this projector emits, in order.
func (p Projector[T]) Fields() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.name
	}
	return names
}

// Includes reports whether the canonical field name is selected.
func (p Projector[T]) Includes(name string) bool {
	for _, f := range p.fields {
		if f.name == name {
			return true
		}
	}
	return false
}

// Apply projects a single item.
func (p Projector[T]) Apply(item T) Record {
	rec := Record{fields: make([]Field, 0, len(p.fields)+1)}
	for _, f := range p.fields {
		rec.fields = append(rec.fields, Field{Name: f.name, Value: f.accessor(item)})
	}
	return rec
}

// ApplyAll projects every item in order.
func (p Projector[T]) ApplyAll(items []T) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = p.Apply(item)
	}
	return out
}
