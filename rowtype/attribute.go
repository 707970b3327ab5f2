package rowtype

// Attribute is one column of a TupleDescriptor: a name, a logical Kind, an
// optional TypeMod, and — for structural kinds — the recursive shape of its
// children.
type Attribute struct {
	Name string
	Kind Kind

	TypeMod TypeMod

	// Nullable is always true at the logical level (spec §3); retained as a
	// field rather than hardcoded so a future non-nullable dialect has
	// somewhere to put it.
	Nullable bool

	// Generated columns are included in COPY TO output (Postgres dumps
	// their computed values same as any other column) and excluded from
	// COPY FROM input (Postgres computes them itself). See
	// ExportAttributes/ImportAttributes.
	Generated bool

	// Composite holds the nested descriptor when Kind == KindComposite.
	Composite *TupleDescriptor

	// Element holds the single child attribute when Kind == KindArray.
	Element *Attribute

	// Key/Value hold the map entry children when Kind == KindMap. Key is
	// always non-nullable; Value is always nullable (spec §3 invariant).
	Key   *Attribute
	Value *Attribute
}

// TupleDescriptor is an ordered, name-unique (within its level) sequence of
// attributes — the Go name for the spec's "Type Descriptor".
type TupleDescriptor struct {
	Attributes []Attribute
}

// ByName returns the attribute with the given name and whether it was
// found. Lookup is case-sensitive and O(n); descriptors are small and built
// once per COPY invocation, so no index is maintained.
func (d *TupleDescriptor) ByName(name string) (Attribute, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// ExportAttributes returns the attributes COPY TO should emit. Generated
// columns are included, per spec §3's "generated-column flag" rule: COPY
// TO exports their computed values same as Postgres's own dump behavior.
func (d *TupleDescriptor) ExportAttributes() []Attribute {
	out := make([]Attribute, len(d.Attributes))
	copy(out, d.Attributes)
	return out
}

// ImportAttributes returns the attributes COPY FROM should populate from
// the Parquet file: generated columns are excluded, since Postgres
// computes their values itself and rejects explicit input for them.
func (d *TupleDescriptor) ImportAttributes() []Attribute {
	out := make([]Attribute, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		if a.Generated {
			continue
		}
		out = append(out, a)
	}
	return out
}
