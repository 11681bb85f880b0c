package datapath

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// FieldType is the declared type of a partition field in a descriptor
// pattern, e.g. the int64 in "ts=int64".
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
	FieldBool
	FieldUUID
)

var fieldTypeNames = map[FieldType]string{
	FieldString: "string",
	FieldInt:    "int64",
	FieldFloat:  "float64",
	FieldBool:   "bool",
	FieldUUID:   "uuid",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType resolves a type name from a descriptor pattern.
func ParseFieldType(name string) (FieldType, error) {
	for t, n := range fieldTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown field type %q", name)
}

// Decode validates raw text against the field type and returns its
// canonical text form.
func (t FieldType) Decode(raw string) (string, error) {
	switch t {
	case FieldString:
		return raw, nil
	case FieldInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", fmt.Errorf("parse int64 %q: %w", raw, err)
		}
		return strconv.FormatInt(n, 10), nil
	case FieldFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("parse float64 %q: %w", raw, err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case FieldBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("parse bool %q: %w", raw, err)
		}
		return strconv.FormatBool(b), nil
	case FieldUUID:
		u, err := uuid.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse uuid %q: %w", raw, err)
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unknown field type %v", t)
	}
}
