package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// String returns the kind name for error messages and logs.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the JSON data model.
//
// Objects are stored as an ordered field list rather than a Go map so that
// key order survives a decode/encode round trip. Header-union computation
// depends on encountered key order, which map iteration would destroy.
type Value struct {
	Kind Kind
	Str  string
	Num  json.Number
	Bool bool
	Arr  []Value
	Obj  Record
}

// Field is a single key/value entry of an object.
type Field struct {
	Key   string
	Value Value
}

// Record is an ordered collection of object fields.
type Record []Field

// Get returns the value for key and whether it is present.
// The first occurrence wins when a document carries duplicate keys.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// StringValue wraps a plain string as a Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Text converts a Value to its textual cell form:
// strings pass through, null becomes empty, numbers keep their source
// literal, booleans render as true/false, and nested arrays/objects render
// as their compact serialized form (no recursive flattening).
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNull:
		return ""
	case KindNumber:
		return v.Num.String()
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			// Marshal of a decoded Value cannot fail; keep the cell usable anyway.
			return ""
		}
		return string(b)
	}
}

// MarshalJSON encodes the Value preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		if v.Num == "" {
			return []byte("0"), nil
		}
		return []byte(v.Num), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, el := range v.Arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(el)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.Obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			b, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %d", int(v.Kind))
	}
}

// DecodeDocument reads a single JSON document from r into a Value.
// Numbers are kept as their source literal. Trailing non-whitespace data
// after the document is a decode error.
func DecodeDocument(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON document")
	}
	return v, nil
}

// decodeValue consumes the next complete value from dec.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, fmt.Errorf("unexpected end of JSON document")
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := []Value{}
			for dec.More() {
				el, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr = append(arr, el)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return Value{}, err
			}
			return Value{Kind: KindArray, Arr: arr}, nil
		case '{':
			obj := Record{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj = append(obj, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return Value{}, err
			}
			return Value{Kind: KindObject, Obj: obj}, nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Num: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
	}
}
