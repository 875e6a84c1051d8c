package metadata

import "iter"

// Metadata is the set of metadata values of one feature, at most one per field.
//
// The zero value is empty and ready to use. Metadata is a plain value: copying it
// copies every field.
type Metadata struct {
	values [FieldCount]string
	set    uint64
}

// Entry is one (field, value) pair.
type Entry struct {
	Field Field
	Value string
}

// Set assigns value to f. An empty value removes f. Unknown fields are ignored.
func (m *Metadata) Set(f Field, value string) {
	if !f.Known() {
		return
	}
	if value == "" {
		m.values[f] = ""
		m.set &^= 1 << f

		return
	}
	m.values[f] = value
	m.set |= 1 << f
}

// Get returns the value of f, or "" if it is not set.
func (m *Metadata) Get(f Field) string {
	if !f.Known() {
		return ""
	}

	return m.values[f]
}

// Has reports whether f is set.
func (m *Metadata) Has(f Field) bool {
	return f.Known() && m.set&(1<<f) != 0
}

// Len returns the number of set fields.
func (m *Metadata) Len() int {
	n := 0
	for s := m.set; s != 0; s &= s - 1 {
		n++
	}

	return n
}

// Empty reports whether no field is set.
func (m *Metadata) Empty() bool {
	return m.set == 0
}

// Reset clears all fields.
func (m *Metadata) Reset() {
	*m = Metadata{}
}

// Fields iterates over set fields in tag order.
func (m *Metadata) Fields() iter.Seq2[Field, string] {
	return func(yield func(Field, string) bool) {
		for f := FieldCuisine; f < FieldCount; f++ {
			if m.set&(1<<f) == 0 {
				continue
			}
			if !yield(f, m.values[f]) {
				return
			}
		}
	}
}

// Entries returns the set fields in tag order.
func (m *Metadata) Entries() []Entry {
	entries := make([]Entry, 0, m.Len())
	for f, v := range m.Fields() {
		entries = append(entries, Entry{Field: f, Value: v})
	}

	return entries
}
