package mapping

import (
	"github.com/cayleygraph/quad"
)

// Value is a raw column value read from a typed row: absent, a single
// scalar, or a list of elements.
type Value struct {
	items   []any
	list    bool
	present bool
}

// Absent returns the value of a missing column.
func Absent() Value {
	return Value{}
}

// Opt reads an optional scalar column. A nil pointer is absent.
func Opt[T any](p *T) Value {
	if p == nil {
		return Value{}
	}
	return Value{items: []any{*p}, present: true}
}

// List reads a list-valued column. A nil slice is absent; an empty slice is
// present but yields nothing.
func List[T any](xs []T) Value {
	if xs == nil {
		return Value{}
	}
	items := make([]any, len(xs))
	for i, x := range xs {
		items[i] = x
	}
	return Value{items: items, list: true, present: true}
}

// Present reports whether the column had a value.
func (v Value) Present() bool {
	return v.present
}

// Items returns the raw elements: one for a scalar, one per element for a list.
func (v Value) Items() []any {
	return v.items
}

// Column binds a recognized column name to the property and datatype it
// is projected onto.
type Column struct {
	Name      string
	Predicate quad.IRI
	Datatype  quad.IRI
}

// Assertion is a property/object pair emitted for some subject.
type Assertion struct {
	Predicate quad.IRI
	Object    quad.Value
}

// Project emits zero, one, or many assertions for a column value. Absent
// values emit nothing. List elements are emitted one each, verbatim. A
// scalar is converted to text first. Project never fails.
func Project(c Column, v Value) []Assertion {
	if !v.present {
		return nil
	}
	out := make([]Assertion, 0, len(v.items))
	for _, item := range v.items {
		if !v.list {
			item = Text(item)
		}
		out = append(out, Assertion{Predicate: c.Predicate, Object: Literal(item, c.Datatype)})
	}
	return out
}

// field pairs a column with an accessor over a typed row.
type field[R any] struct {
	Column
	get func(R) Value
}

func projectRow[R any](b *batch, subject quad.IRI, row R, fields []field[R]) {
	for _, f := range fields {
		b.assert(subject, Project(f.Column, f.get(row)))
	}
}
