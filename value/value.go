package value

import (
	"fmt"
	"strconv"

	"github.com/midbel/codecs/xml"
)

// Kind identifies the category a Value belongs to. Every coercion
// site switches exhaustively on it.
type Kind int8

const (
	KindAbsent Kind = iota
	KindNull
	KindText
	KindCallable
	KindList
	KindComposite
	KindMarkup
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindCallable:
		return "callable"
	case KindList:
		return "list"
	case KindComposite:
		return "composite"
	case KindMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// Field is one key/value entry of a composite value. Composites keep
// their fields as an ordered sequence so that encoding order is part
// of the contract instead of an accident of map iteration.
type Field struct {
	Key string
	Value
}

// Value is a tagged variant over the categories a scripting host can
// hand to the processor. The zero value is the absent value.
type Value struct {
	kind   Kind
	text   string
	fn     any
	items  []Value
	fields []Field
	node   xml.Node
}

// None returns the absent value.
func None() Value {
	return Value{kind: KindAbsent}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Str returns a textual value.
func Str(str string) Value {
	return Value{
		kind: KindText,
		text: str,
	}
}

// Bool returns the textual form of a boolean. The conversion is eager
// and one way: the boolean itself is not retained.
func Bool(b bool) Value {
	return Str(strconv.FormatBool(b))
}

// Int returns the textual form of an integer.
func Int(i int64) Value {
	return Str(strconv.FormatInt(i, 10))
}

// Float returns the textual form of a float.
func Float(f float64) Value {
	return Str(strconv.FormatFloat(f, 'f', -1, 64))
}

// Func wraps a callable. The processor never invokes such a value; it
// only ever coerces it to its string form, which is the Go type of fn.
func Func(fn any) Value {
	return Value{
		kind: KindCallable,
		fn:   fn,
	}
}

// ListOf returns an ordered list value.
func ListOf(items ...Value) Value {
	return Value{
		kind:  KindList,
		items: items,
	}
}

// Object returns a composite value keeping the given field order.
func Object(fields ...Field) Value {
	return Value{
		kind:   KindComposite,
		fields: fields,
	}
}

// F is a convenience constructor for a composite field.
func F(key string, v Value) Field {
	return Field{
		Key:   key,
		Value: v,
	}
}

// Node wraps a markup node or document.
func Node(node xml.Node) Value {
	return Value{
		kind: KindMarkup,
		node: node,
	}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) IsText() bool {
	return v.kind == KindText
}

func (v Value) IsCallable() bool {
	return v.kind == KindCallable
}

func (v Value) IsList() bool {
	return v.kind == KindList
}

func (v Value) IsComposite() bool {
	return v.kind == KindComposite
}

func (v Value) IsMarkup() bool {
	return v.kind == KindMarkup
}

// Items returns the entries of a list value.
func (v Value) Items() []Value {
	return v.items
}

// Fields returns the ordered fields of a composite value.
func (v Value) Fields() []Field {
	return v.fields
}

// Node returns the wrapped markup node of a markup value.
func (v Value) Node() xml.Node {
	return v.node
}

// String returns the value's string form. Absent and null values
// coerce to the empty string, markup values to their serialized form,
// lists and composites to the serialized form of their encoding.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindCallable:
		return fmt.Sprintf("%T", v.fn)
	case KindMarkup:
		return WriteMarkup(v.node)
	case KindList, KindComposite:
		return WriteMarkup(Encode(v))
	default:
		return ""
	}
}
