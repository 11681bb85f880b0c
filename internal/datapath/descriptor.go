package datapath

import (
	"fmt"
	"strings"
)

// descSegment is one segment of a descriptor pattern: a constant like
// "web", or a named typed field like "domain=string".
type descSegment struct {
	constant string
	field    string
	typ      FieldType
}

func (s descSegment) isField() bool { return s.field != "" }

// Descriptor is a parsed datapath pattern like
// "web/domain=string/ts=int64/crawl/2.5": an ordered list of constant
// segments and named typed fields. It replaces compile-time struct
// generation with a runtime parse/format/validate surface.
type Descriptor struct {
	name     string
	pattern  string
	segments []descSegment
	fields   []string // field names in pattern order
}

// ParseDescriptor parses a descriptor pattern. Field segments take the
// form name=type where type is one of string, int64, float64, bool or
// uuid. Wildcards are not allowed in descriptors, and field names must
// be unique.
func ParseDescriptor(name, pattern string) (*Descriptor, error) {
	d := &Descriptor{name: name, pattern: pattern}
	seen := make(map[string]bool)

	for _, tok := range strings.Split(pattern, "/") {
		if tok == "" {
			continue
		}
		if strings.Contains(tok, "*") {
			return nil, fmt.Errorf("descriptor %q: wildcard in pattern segment %q", name, tok)
		}
		fieldName, typeName, ok := strings.Cut(tok, "=")
		if !ok {
			d.segments = append(d.segments, descSegment{constant: tok})
			continue
		}
		if fieldName == "" {
			return nil, fmt.Errorf("descriptor %q: field segment %q has no name", name, tok)
		}
		typ, err := ParseFieldType(typeName)
		if err != nil {
			return nil, fmt.Errorf("descriptor %q: field %q: %w", name, fieldName, err)
		}
		if seen[fieldName] {
			return nil, fmt.Errorf("descriptor %q: duplicate field %q", name, fieldName)
		}
		seen[fieldName] = true
		d.segments = append(d.segments, descSegment{field: fieldName, typ: typ})
		d.fields = append(d.fields, fieldName)
	}

	if len(d.segments) == 0 {
		return nil, fmt.Errorf("descriptor %q: empty pattern", name)
	}
	return d, nil
}

// Name returns the descriptor's name.
func (d *Descriptor) Name() string { return d.name }

// Pattern returns the descriptor's pattern text.
func (d *Descriptor) Pattern() string { return d.pattern }

// Fields returns the field names in pattern order.
func (d *Descriptor) Fields() []string { return d.fields }

// Record is a concrete path decoded against a descriptor: one canonical
// text value per field, plus any trailing file component (possibly
// empty).
type Record struct {
	Descriptor *Descriptor
	Fields     map[string]string
	File       string
}

// Parse decodes a concrete path against the descriptor. Constant
// segments must match exactly and field segments must carry the
// declared key and a value of the declared type; whatever follows the
// pattern becomes the record's file.
func (d *Descriptor) Parse(path string) (*Record, error) {
	if strings.Contains(path, "\n") {
		return nil, fmt.Errorf("descriptor %q: path contains a newline", d.name)
	}

	parts := strings.Split(path, "/")
	rec := &Record{Descriptor: d, Fields: make(map[string]string, len(d.fields))}

	for _, seg := range d.segments {
		if len(parts) == 0 {
			return nil, fmt.Errorf("descriptor %q: path %q is too short", d.name, path)
		}
		tok := parts[0]
		parts = parts[1:]

		if !seg.isField() {
			if tok != seg.constant {
				return nil, fmt.Errorf("descriptor %q: expected segment %q, got %q", d.name, seg.constant, tok)
			}
			continue
		}

		raw, ok := strings.CutPrefix(tok, seg.field+"=")
		if !ok {
			return nil, fmt.Errorf("descriptor %q: expected field %q, got %q", d.name, seg.field, tok)
		}
		val, err := seg.typ.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("descriptor %q: %w", d.name, err)
		}
		rec.Fields[seg.field] = val
	}

	rec.File = strings.Join(parts, "/")
	return rec, nil
}

// Path formats the record back into a concrete path string. A record
// with an empty file renders the bare datapath.
func (r *Record) Path() string {
	base, _ := r.Descriptor.Format(r.Fields)
	if r.File == "" {
		return base
	}
	return base + "/" + r.File
}

// Format renders a concrete path from field values, validating that
// exactly the descriptor's fields are present and each value decodes as
// its declared type.
func (d *Descriptor) Format(fields map[string]string) (string, error) {
	if len(fields) != len(d.fields) {
		return "", fmt.Errorf("descriptor %q: got %d fields, want %d", d.name, len(fields), len(d.fields))
	}

	var parts []string
	for _, seg := range d.segments {
		if !seg.isField() {
			parts = append(parts, seg.constant)
			continue
		}
		raw, ok := fields[seg.field]
		if !ok {
			return "", fmt.Errorf("descriptor %q: missing field %q", d.name, seg.field)
		}
		val, err := seg.typ.Decode(raw)
		if err != nil {
			return "", fmt.Errorf("descriptor %q: %w", d.name, err)
		}
		parts = append(parts, seg.field+"="+val)
	}
	return strings.Join(parts, "/"), nil
}

// Glob renders an index query pattern from partially-bound fields.
// Unbound or wildcard fields render as "*", and the pattern is suffixed
// with "/**" so paths with trailing file components match too.
func (d *Descriptor) Glob(fields map[string]Wildcardable[string]) string {
	var parts []string
	for _, seg := range d.segments {
		if !seg.isField() {
			parts = append(parts, seg.constant)
			continue
		}
		w := fields[seg.field] // zero value is the wildcard
		parts = append(parts, seg.field+"="+w.Text(func(s string) string { return s }))
	}
	return strings.Join(parts, "/") + "/**"
}
