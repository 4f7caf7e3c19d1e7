package value

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Value is a tagged scalar: exactly one of I32, F64, Bool, String, DateTime,
// or the null marker. The zero Value is a non-null I32 holding 0; the null
// marker is Null.
type Value struct {
	dtype  DataType
	isNull bool
	i      int32
	f      float64
	b      bool
	s      string
}

// Null is the null marker value.
var Null = Value{isNull: true}

// NewI32 constructs a non-null I32 Value.
func NewI32(v int32) Value { return Value{dtype: I32, i: v} }

// NewF64 constructs a non-null F64 Value.
func NewF64(v float64) Value { return Value{dtype: F64, f: v} }

// NewBool constructs a non-null Bool Value.
func NewBool(v bool) Value { return Value{dtype: Bool, b: v} }

// NewString constructs a non-null String Value.
func NewString(v string) Value { return Value{dtype: String, s: v} }

// NewDateTime constructs a non-null DateTime Value from seconds since the
// Unix epoch, UTC. Seconds are stored as a float64, which represents every
// integer up to 2^53 exactly — centuries of range at one-second resolution.
func NewDateTime(secs int64) Value { return Value{dtype: DateTime, f: float64(secs)} }

// IsNull reports whether this Value is the null marker.
func (v Value) IsNull() bool { return v.isNull }

// DataType returns the logical type of this Value. Panics if called on
// null, matching the source contract that null carries no concrete type.
func (v Value) DataType() DataType {
	if v.isNull {
		panic("value: DataType() called on a null Value")
	}
	return v.dtype
}

// AsI32 returns the underlying int32 and whether v is a non-null I32.
func (v Value) AsI32() (int32, bool) {
	if v.isNull || v.dtype != I32 {
		return 0, false
	}
	return v.i, true
}

// AsF64 returns the underlying float64 and whether v is a non-null F64.
func (v Value) AsF64() (float64, bool) {
	if v.isNull || v.dtype != F64 {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the underlying bool and whether v is a non-null Bool.
func (v Value) AsBool() (bool, bool) {
	if v.isNull || v.dtype != Bool {
		return false, false
	}
	return v.b, true
}

// AsString returns the underlying string and whether v is a non-null String.
func (v Value) AsString() (string, bool) {
	if v.isNull || v.dtype != String {
		return "", false
	}
	return v.s, true
}

// AsDateTime returns the underlying epoch-seconds and whether v is a
// non-null DateTime.
func (v Value) AsDateTime() (int64, bool) {
	if v.isNull || v.dtype != DateTime {
		return 0, false
	}
	return int64(v.f), true
}

func (v Value) datetimeSecs() int64 {
	secs, _ := v.AsDateTime()
	return secs
}

// Equal compares two Values within their type. Null equals null (per the
// grouping contract, §3); comparing across two different non-null types
// returns false.
func (v Value) Equal(o Value) bool {
	if v.isNull || o.isNull {
		return v.isNull == o.isNull
	}
	if v.dtype != o.dtype {
		return false
	}
	switch v.dtype {
	case I32:
		return v.i == o.i
	case F64:
		return v.f == o.f
	case Bool:
		return v.b == o.b
	case String:
		return v.s == o.s
	case DateTime:
		return v.datetimeSecs() == o.datetimeSecs()
	}
	return false
}

// Less defines a total order used by sort, Min/Max and comparisons: null sorts after
// every non-null value (the "nulls last" default, §4.2); within a type,
// ordering is the natural order; strings compare byte-lexicographically.
// Values of different non-null types are ordered by DataType tag, giving a
// total order without requiring type compatibility (only used internally
// for tie-breaking in mixed contexts such as Value-keyed maps).
func (v Value) Less(o Value) bool {
	if v.isNull != o.isNull {
		return o.isNull // v is "less" iff o is null and v is not
	}
	if v.isNull {
		return false
	}
	if v.dtype != o.dtype {
		return v.dtype < o.dtype
	}
	switch v.dtype {
	case I32:
		return v.i < o.i
	case F64:
		return v.f < o.f
	case Bool:
		return !v.b && o.b
	case String:
		return v.s < o.s
	case DateTime:
		return v.datetimeSecs() < o.datetimeSecs()
	}
	return false
}

// String renders a human-readable form of the Value; nulls render as the
// literal "null" per §4.2's presentation contract.
func (v Value) String() string {
	if v.isNull {
		return "null"
	}
	switch v.dtype {
	case I32:
		return strconv.FormatInt(int64(v.i), 10)
	case F64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case String:
		return v.s
	case DateTime:
		return time.Unix(v.datetimeSecs(), 0).UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("<value:%v>", v.dtype)
}

// IsNaN reports whether v is a non-null F64 holding NaN.
func (v Value) IsNaN() bool {
	return v.dtype == F64 && !v.isNull && math.IsNaN(v.f)
}
