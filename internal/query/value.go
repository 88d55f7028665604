package query

import (
	"bytes"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindTime
	KindBool
	KindLinks
)

// Value is a typed field value inside a shaped Record.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	t     time.Time
	b     bool
	links []Link
}

func Null() Value { return Value{} }
func Int(v int64) Value { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }
func Links(links []Link) Value { return Value{kind: KindLinks, links: links} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IntValue() int64 { return v.i }

// Interface returns the held value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTime:
		return v.t
	case KindBool:
		return v.b
	case KindLinks:
		return v.links
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindLinks && v.links == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

// Field is a named Value.
type Field struct {
	Name  string
	Value Value
}

// Record is a shaped resource: an ordered set of fields. JSON output keeps
// insertion order.
type Record struct {
	fields []Field
}

// Set appends name, or replaces its value in place when already present.
func (r *Record) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Names lists field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

func (r Record) Len() int {
	return len(r.fields)
}

// WithLinks returns a copy of r with a trailing "links" field.
func (r Record) WithLinks(links []Link) Record {
	out := Record{fields: make([]Field, len(r.fields), len(r.fields)+1)}
	copy(out.fields, r.fields)
	out.Set("links", Links(links))
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
