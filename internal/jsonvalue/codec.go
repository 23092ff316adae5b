package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// ErrInvalidJSON is returned by Parse when the input is not a single valid
// JSON document.
var ErrInvalidJSON = errors.New("invalid json")

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Parse decodes one JSON document, keeping object keys in document order.
func Parse(data []byte) (Value, error) {
	// json.Valid is exact about truncated input; the iterator below reports
	// truncation and clean end-of-input with the same io.EOF.
	if !json.Valid(data) {
		return Value{}, ErrInvalidJSON
	}

	iter := jsoniter.ParseBytes(codec, data)
	v := readValue(iter)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, iter.Error)
	}
	return v, nil
}

// MustParse is Parse for literals in tests and examples; it panics on error.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("jsonvalue.MustParse(%q): %v", s, err))
	}
	return v
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return StringValue(iter.ReadString())
	case jsoniter.NumberValue:
		return NumberValue(string(iter.ReadNumber()))
	case jsoniter.BoolValue:
		return BoolValue(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return NullValue()
	case jsoniter.ArrayValue:
		items := []Value{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return true
		})
		return Value{kind: Array, items: items}
	case jsoniter.ObjectValue:
		b := newObjectBuilder(0)
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			b.set(key, readValue(it))
			return true
		})
		return b.value()
	default:
		iter.ReportError("jsonvalue", "unexpected token")
		return Value{}
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler; objects are written in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	stream := codec.BorrowStream(nil)
	defer codec.ReturnStream(stream)

	writeValue(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// String renders v as compact JSON.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "null"
	}
	return string(b)
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch v.kind {
	case Bool:
		stream.WriteBool(v.boolean)
	case Number:
		stream.WriteRaw(v.text)
	case String:
		stream.WriteString(v.text)
	case Array:
		stream.WriteArrayStart()
		for i, item := range v.items {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case Object:
		stream.WriteObjectStart()
		for i, m := range v.members {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(m.Key)
			writeValue(stream, m.Value)
		}
		stream.WriteObjectEnd()
	default:
		stream.WriteNil()
	}
}
