package dataset

import (
	"strconv"
	"time"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindDate
	KindTimeOfDay
	KindDateTime
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Value is an immutable nullable scalar cell. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	ts   time.Time
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// String builds a textual Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int builds an integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// Float builds a floating-point Value.
func Float(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// Date builds a calendar-date Value; the time-of-day part is discarded.
func Date(t time.Time) Value {
	return Value{kind: KindDate, ts: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay builds a time-of-day Value; the date part is discarded.
func TimeOfDay(t time.Time) Value {
	return Value{kind: KindTimeOfDay, ts: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// DateTime builds a timestamp Value.
func DateTime(t time.Time) Value {
	return Value{kind: KindDateTime, ts: t}
}

// Kind reports the scalar type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the null marker.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int returns the integer payload. The second return is false when the
// value is not an integer.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// Float returns the numeric payload of an integer or float value.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInt:
		return float64(v.num), true
	}
	return 0, false
}

// Time returns the temporal payload of a date, time-of-day or timestamp
// value.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate, KindTimeOfDay, KindDateTime:
		return v.ts, true
	}
	return time.Time{}, false
}

// Text renders the value in its canonical textual form. Null renders as
// the empty string, which is also how nulls appear in CSV output.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case KindDate:
		return v.ts.Format(dateLayout)
	case KindTimeOfDay:
		return v.ts.Format(timeLayout)
	case KindDateTime:
		return v.ts.Format(dateTimeLayout)
	}
	return ""
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	default:
		return v.ts.Equal(other.ts)
	}
}
