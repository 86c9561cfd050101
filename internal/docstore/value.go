package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Kind is the populated tag of a wire Value.
type Kind int

// Wire value tags.
const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindDouble
	KindString
	KindTimestamp
	KindArray
	KindMap
)

var kindNames = [...]string{"null", "boolean", "integer", "double", "string", "timestamp", "array", "map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// TimestampPrecision is the finest time resolution the store keeps.
const TimestampPrecision = time.Microsecond

// Value is the store's tagged union. Exactly one tag is populated.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	s    string
	t    time.Time
	arr  []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntegerValue wraps a 64-bit integer.
func IntegerValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// DoubleValue wraps a float. No integer detection happens here; use Encode for that.
func DoubleValue(f float64) Value { return Value{kind: KindDouble, d: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// TimestampValue wraps a time, normalized to UTC and truncated to TimestampPrecision.
func TimestampValue(t time.Time) Value {
	return Value{kind: KindTimestamp, t: t.UTC().Truncate(TimestampPrecision)}
}

// ArrayValue wraps an ordered list of values.
func ArrayValue(values ...Value) Value { return Value{kind: KindArray, arr: values} }

// MapValue wraps a field map.
func MapValue(fields map[string]Value) Value { return Value{kind: KindMap, m: fields} }

// Kind returns the populated tag.
func (v Value) Kind() Kind { return v.kind }

// Values returns the array items (nil unless KindArray).
func (v Value) Values() []Value { return v.arr }

// Fields returns the map entries (nil unless KindMap).
func (v Value) Fields() map[string]Value { return v.m }

// Encode converts a native Go value into its wire representation.
//
// Numbers follow the fractional-part rule: a number whose fractional part is
// zero, finite and inside the int64 range is tagged integer; anything else is
// tagged double. So Encode(3.0) and Encode(3) both yield an integer.
func Encode(native any) (Value, error) {
	switch x := native.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case int:
		return IntegerValue(int64(x)), nil
	case int64:
		return IntegerValue(x), nil
	case float64:
		return encodeFloat(x), nil
	case time.Time:
		return TimestampValue(x), nil
	case *time.Time:
		if x == nil {
			return Null(), nil
		}
		return TimestampValue(*x), nil
	case []any:
		return encodeList(len(x), func(i int) any { return x[i] })
	case map[string]any:
		return encodeMap(x)
	case Record:
		return encodeMap(x)
	}
	return encodeReflect(reflect.ValueOf(native))
}

func encodeReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return Encode(rv.Elem().Interface())
	case reflect.Bool:
		return BoolValue(rv.Bool()), nil
	case reflect.String:
		return StringValue(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntegerValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("docstore: unsigned value %d overflows int64", u)
		}
		return IntegerValue(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return encodeFloat(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		return encodeList(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("docstore: map key type %s is not a string", rv.Type().Key())
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fv, err := Encode(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", iter.Key().String(), err)
			}
			fields[iter.Key().String()] = fv
		}
		return MapValue(fields), nil
	case reflect.Invalid:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("docstore: cannot encode value of type %s", rv.Type())
	}
}

// encodeFloat applies the fractional-part rule.
func encodeFloat(f float64) Value {
	// -2^63 and 2^63 are exact in float64; 2^63 itself overflows int64.
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return IntegerValue(int64(f))
	}
	return DoubleValue(f)
}

func encodeList(n int, at func(int) any) (Value, error) {
	values := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := Encode(at(i))
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", i, err)
		}
		values[i] = v
	}
	return ArrayValue(values...), nil
}

func encodeMap(m map[string]any) (Value, error) {
	fields := make(map[string]Value, len(m))
	for k, raw := range m {
		v, err := Encode(raw)
		if err != nil {
			return Value{}, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = v
	}
	return MapValue(fields), nil
}

// Decode converts a wire value back into a native Go value:
// nil, bool, int64, float64, string, time.Time, []any or map[string]any.
// A value without a recognised tag decodes to nil.
func Decode(v Value) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.i
	case KindDouble:
		return v.d
	case KindString:
		return v.s
	case KindTimestamp:
		return v.t
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = Decode(item)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = Decode(item)
		}
		return out
	default:
		return nil
	}
}

type arrayWire struct {
	Values []Value `json:"values,omitempty"`
}

type mapWire struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// MarshalJSON writes the single populated tag.
func (v Value) MarshalJSON() ([]byte, error) {
	var (
		key     string
		payload any
	)
	switch v.kind {
	case KindBool:
		key, payload = "booleanValue", v.b
	case KindInteger:
		// int64 travels as a decimal string to survive JSON number precision.
		key, payload = "integerValue", strconv.FormatInt(v.i, 10)
	case KindDouble:
		key, payload = "doubleValue", doublePayload(v.d)
	case KindString:
		key, payload = "stringValue", v.s
	case KindTimestamp:
		key, payload = "timestampValue", v.t.Format(time.RFC3339Nano)
	case KindArray:
		key, payload = "arrayValue", arrayWire{Values: v.arr}
	case KindMap:
		key, payload = "mapValue", mapWire{Fields: v.m}
	default:
		return []byte(`{"nullValue":null}`), nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", key, err)
	}
	var buf bytes.Buffer
	buf.Grow(len(key) + len(body) + 5)
	buf.WriteString(`{"`)
	buf.WriteString(key)
	buf.WriteString(`":`)
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func doublePayload(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

// UnmarshalJSON reads a tagged value. Unknown tags become null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tags map[string]json.RawMessage
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("value: %w", err)
	}

	if raw, ok := tags["booleanValue"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return fmt.Errorf("booleanValue: %w", err)
		}
		*v = BoolValue(b)
		return nil
	}
	if raw, ok := tags["integerValue"]; ok {
		i, err := parseInteger(raw)
		if err != nil {
			return fmt.Errorf("integerValue: %w", err)
		}
		*v = IntegerValue(i)
		return nil
	}
	if raw, ok := tags["doubleValue"]; ok {
		f, err := parseDouble(raw)
		if err != nil {
			return fmt.Errorf("doubleValue: %w", err)
		}
		*v = DoubleValue(f)
		return nil
	}
	if raw, ok := tags["stringValue"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("stringValue: %w", err)
		}
		*v = StringValue(s)
		return nil
	}
	if raw, ok := tags["timestampValue"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("timestampValue: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestampValue: %w", err)
		}
		*v = TimestampValue(t)
		return nil
	}
	if raw, ok := tags["arrayValue"]; ok {
		var a arrayWire
		if err := json.Unmarshal(raw, &a); err != nil {
			return fmt.Errorf("arrayValue: %w", err)
		}
		*v = ArrayValue(a.Values...)
		return nil
	}
	if raw, ok := tags["mapValue"]; ok {
		var m mapWire
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("mapValue: %w", err)
		}
		if m.Fields == nil {
			m.Fields = map[string]Value{}
		}
		*v = MapValue(m.Fields)
		return nil
	}

	*v = Null()
	return nil
}

func parseInteger(raw json.RawMessage) (int64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseInt(s, 10, 64)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}

func parseDouble(raw json.RawMessage) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}
