package record

import (
	"sort"
	"strings"
)

// TypeSeparator joins the sub-type names of a complex entity into its
// canonical composite type name.
const TypeSeparator = ", "

// Record is one entity instance of the exchange file.
type Record struct {
	ID    ID
	Types []string
	Args  []Param
}

// Type returns the canonical type name. Complex entities yield their
// sub-type names joined by TypeSeparator in order of appearance.
func (r *Record) Type() string {
	return strings.Join(r.Types, TypeSeparator)
}

// IsComplex reports whether the record was written as an anonymous,
// multi-type entity.
func (r *Record) IsComplex() bool {
	return len(r.Types) > 1
}

// Refs returns every id referenced by the record's arguments in source order.
func (r *Record) Refs() []ID {
	var out []ID
	for _, a := range r.Args {
		a.collectRefs(&out)
	}
	return out
}

// WithExtraArg returns a copy of r with p appended to its arguments. The
// receiver is left untouched.
func (r *Record) WithExtraArg(p Param) *Record {
	args := make([]Param, len(r.Args), len(r.Args)+1)
	copy(args, r.Args)
	return &Record{
		ID:    r.ID,
		Types: append([]string(nil), r.Types...),
		Args:  append(args, p),
	}
}

// Table owns the records of one import run, keyed by id.
type Table struct {
	records map[ID]*Record
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{records: make(map[ID]*Record)}
}

// Add inserts r. It reports false, leaving the table unchanged, when a record
// with the same id already exists.
func (t *Table) Add(r *Record) bool {
	if _, exists := t.records[r.ID]; exists {
		return false
	}
	t.records[r.ID] = r
	return true
}

// Get returns the record with the given id.
func (t *Table) Get(id ID) (*Record, bool) {
	r, ok := t.records[id]
	return r, ok
}

// Has reports whether id is defined.
func (t *Table) Has(id ID) bool {
	_, ok := t.records[id]
	return ok
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// IDs returns all ids in ascending order.
func (t *Table) IDs() []ID {
	ids := make([]ID, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Records returns all records in ascending id order.
func (t *Table) Records() []*Record {
	ids := t.IDs()
	out := make([]*Record, len(ids))
	for i, id := range ids {
		out[i] = t.records[id]
	}
	return out
}

// Replace returns a new table sharing every record of t except those in
// replacements, which take the place of the record with the same id.
func (t *Table) Replace(replacements map[ID]*Record) *Table {
	out := &Table{records: make(map[ID]*Record, len(t.records))}
	for id, r := range t.records {
		if repl, ok := replacements[id]; ok {
			out.records[id] = repl
			continue
		}
		out.records[id] = r
	}
	return out
}

// FirstOfType returns the lowest-id record whose canonical type equals typeName.
func (t *Table) FirstOfType(typeName string) (*Record, bool) {
	for _, r := range t.Records() {
		if r.Type() == typeName {
			return r, true
		}
	}
	return nil, false
}
