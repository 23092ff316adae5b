// Package jsonvalue provides a generic JSON value (a tagged union of
// null/bool/number/string/array/object) whose objects keep the key order of
// the document they were decoded from.
package jsonvalue

// Kind identifies the JSON type held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lower-case JSON type name.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is JSON null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents, or the number literal
	items   []Value
	members []Member
}

// NullValue returns JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// NumberValue wraps a number literal such as "42" or "-1.5e3". The literal is
// kept verbatim so large integers survive a decode/encode round trip.
func NumberValue(literal string) Value { return Value{kind: Number, text: literal} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayOf builds an array. A nil argument still yields an empty array.
func ArrayOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// ObjectOf builds an object with members in the given order. Later duplicates
// replace the value of the first occurrence and keep its position.
func ObjectOf(members ...Member) Value {
	b := newObjectBuilder(len(members))
	for _, m := range members {
		b.set(m.Key, m.Value)
	}
	return b.value()
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// IsArray reports whether v is a JSON array.
func (v Value) IsArray() bool { return v.kind == Array }

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool { return v.kind == Object }

// Bool returns the boolean and true when v is a bool.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == Bool }

// Text returns the string contents (for strings) or the literal (for numbers).
func (v Value) Text() (string, bool) {
	return v.text, v.kind == String || v.kind == Number
}

// Items returns the elements of an array. The returned slice shares storage
// with v and must not be modified.
func (v Value) Items() ([]Value, bool) {
	if v.kind != Array {
		return nil, false
	}
	return v.items, true
}

// Members returns the members of an object in insertion order.
func (v Value) Members() ([]Member, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.members, true
}

// Len returns the number of elements or members; zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Get looks up key on an object. Non-objects have no keys.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Path walks nested objects by key. A missing key or a non-object along the
// way reports false.
func (v Value) Path(keys ...string) (Value, bool) {
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// objectBuilder collects members in first-seen order. The key index keeps
// duplicate handling linear for wide objects.
type objectBuilder struct {
	members []Member
	index   map[string]int
}

func newObjectBuilder(size int) *objectBuilder {
	return &objectBuilder{
		members: make([]Member, 0, size),
		index:   make(map[string]int, size),
	}
}

func (b *objectBuilder) set(key string, val Value) {
	if i, ok := b.index[key]; ok {
		b.members[i].Value = val
		return
	}
	b.index[key] = len(b.members)
	b.members = append(b.members, Member{Key: key, Value: val})
}

func (b *objectBuilder) value() Value {
	return Value{kind: Object, members: b.members}
}
