// Package filter turns sparse, string-valued client input into MongoDB filter
// and update documents.
//
// Input is a Params map keyed by logical field name. A nil value means the
// field was not supplied and it never reaches the output document. Fields
// flagged as identifiers are parsed into primitive.ObjectID; a value that does
// not parse is dropped rather than reported, so callers that need to tell the
// user should consult Schema.Malformed.
package filter

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrMalformedIdentifier is returned by BuildRaw for an identifier that does not parse.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrConflictingKeys is returned by BuildRaw when two keys address the same field.
	ErrConflictingKeys = errors.New("conflicting filter keys")
)

// Params maps logical field names to optional string values.
type Params map[string]*string

// String returns a pointer to s for building Params literals.
func String(s string) *string {
	return &s
}

// FromStrings lifts a plain string map into Params with every key present.
func FromStrings(m map[string]string) Params {
	params := make(Params, len(m))
	for k, v := range m {
		params[k] = String(v)
	}
	return params
}

// Field describes how one logical parameter maps onto a document key.
type Field struct {
	Param      string
	Key        string
	Identifier bool
	// Immutable fields may filter but are never part of an update document.
	Immutable bool
}

// Schema is the ordered field set of one record type.
type Schema struct {
	Name   string
	Fields []Field
}

// Build returns a filter document holding only present, successfully coerced fields.
func (s Schema) Build(params Params) bson.M {
	return s.build(params, false)
}

// BuildUpdate is Build without immutable fields; the result is a $set fragment.
func (s Schema) BuildUpdate(params Params) bson.M {
	return s.build(params, true)
}

func (s Schema) build(params Params, skipImmutable bool) bson.M {
	doc := bson.M{}
	for _, field := range s.Fields {
		if skipImmutable && field.Immutable {
			continue
		}
		raw, ok := params[field.Param]
		if !ok || raw == nil {
			continue
		}
		if value, ok := field.coerce(*raw); ok {
			doc[field.Key] = value
		}
	}
	return doc
}

// BuildRaw builds a filter from a plain string map whose keys may be logical
// names ("id") or document keys ("_id").
//
// With coerce set, keys naming a known field are mapped to its document key and
// identifier values are parsed. Unlike Build, a malformed identifier is an
// error here: dropping it would widen a multi-document write. Two keys naming
// the same field are rejected as ambiguous. Unknown keys, and every key when
// coerce is false, pass through as plain strings.
func (s Schema) BuildRaw(params map[string]string, coerce bool) (bson.M, error) {
	doc := bson.M{}
	if !coerce {
		for key, value := range params {
			doc[key] = value
		}
		return doc, nil
	}

	seen := make(map[string]string, len(params))
	for key, value := range params {
		field, ok := s.lookup(key)
		if !ok {
			doc[key] = value
			continue
		}
		if other, dup := seen[field.Key]; dup {
			return nil, fmt.Errorf("%w: %q and %q both address %s", ErrConflictingKeys, other, key, field.Param)
		}
		seen[field.Key] = key

		coerced, ok := field.coerce(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%q", ErrMalformedIdentifier, key, value)
		}
		doc[field.Key] = coerced
	}
	return doc, nil
}

// Malformed lists present identifier params that Build would drop.
func (s Schema) Malformed(params Params) []string {
	var out []string
	for _, field := range s.Fields {
		if !field.Identifier {
			continue
		}
		raw, ok := params[field.Param]
		if !ok || raw == nil {
			continue
		}
		if _, ok := ParseIdentifier(*raw); !ok {
			out = append(out, field.Param)
		}
	}
	return out
}

// Params returns the logical parameter names in schema order.
func (s Schema) Params() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Param)
	}
	return names
}

func (s Schema) lookup(key string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Param == key || field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

func (f Field) coerce(raw string) (interface{}, bool) {
	if !f.Identifier {
		return raw, true
	}
	oid, ok := ParseIdentifier(raw)
	if !ok {
		return nil, false
	}
	return oid, true
}

// ParseIdentifier parses a 24 character hex ObjectID.
func ParseIdentifier(raw string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
