package tabular

import (
	"strconv"
	"time"
)

// Kind identifies the runtime type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

// Value is a tagged scalar as produced by the CSV parse layer. The zero
// value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

func Null() Value {
	return Value{kind: KindNull}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Empty reports whether the value carries no type evidence: null or the
// empty string.
func (v Value) Empty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

func (v Value) Str() string {
	return v.str
}

func (v Value) Num() float64 {
	return v.num
}

func (v Value) Boolean() bool {
	return v.b
}

func (v Value) Timestamp() time.Time {
	return v.t
}

// FormatNumber renders a float the way it would appear in source data,
// without a trailing ".0" for whole numbers.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
