// Package codec encodes and decodes row values to and from the fixed-width
// byte layout a schema.SchemaColumn describes.
//
// Values are written host-endian; this codec fixes concretely on
// binary.LittleEndian as "host" (see SPEC_FULL.md §5) since the example
// pack's own binary file formats (e.g. pranavdb/data/rowCodec.go) do the
// same rather than leave it architecture-dependent.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"minirel/schema"
)

// ErrParse is returned when a string value cannot be parsed for its
// declared column type.
var ErrParse = errors.New("codec: parse error")

// ColumnValue is a tagged union of the value kinds a SchemaColumn can
// hold, replacing the source's per-type if/else ladder with a single
// table-driven encoder/decoder keyed on schema.ColumnType.
type ColumnValue struct {
	typ     schema.ColumnType
	i32     int32
	i64     int64
	f32     float32
	f64     float64
	charVal []byte
}

func Int32Value(v int32) ColumnValue   { return ColumnValue{typ: schema.Int32, i32: v} }
func Int64Value(v int64) ColumnValue   { return ColumnValue{typ: schema.Int64, i64: v} }
func FloatValue(v float32) ColumnValue { return ColumnValue{typ: schema.Float, f32: v} }
func DoubleValue(v float64) ColumnValue {
	return ColumnValue{typ: schema.Double, f64: v}
}
func ForeignKeyValue(v int64) ColumnValue {
	return ColumnValue{typ: schema.ForeignKey, i64: v}
}
func CharValue(v []byte) ColumnValue { return ColumnValue{typ: schema.Char, charVal: v} }

// Int64 returns the column's integer value for Int64/ForeignKey columns.
func (c ColumnValue) Int64() int64 { return c.i64 }

// String renders the value using the shortest round-trippable
// representation for numerics, and the zero-trimmed text for CHAR.
func (c ColumnValue) String() string {
	switch c.typ {
	case schema.Int32:
		return strconv.FormatInt(int64(c.i32), 10)
	case schema.Int64, schema.ForeignKey:
		return strconv.FormatInt(c.i64, 10)
	case schema.Float:
		return strconv.FormatFloat(float64(c.f32), 'g', -1, 32)
	case schema.Double:
		return strconv.FormatFloat(c.f64, 'g', -1, 64)
	case schema.Char:
		return string(trimTrailingZeros(c.charVal))
	default:
		return ""
	}
}

func trimTrailingZeros(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}

// Encode writes value (a decimal/float/text string) as col's on-disk bytes.
func Encode(col schema.SchemaColumn, value string) ([]byte, error) {
	buf := make([]byte, col.Size())
	switch col.Type {
	case schema.Int32:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: int32 %q: %v", ErrParse, value, err)
		}
		binary.LittleEndian.PutUint32(buf, uint32(int32(n)))
	case schema.Int64, schema.ForeignKey:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: int64 %q: %v", ErrParse, value, err)
		}
		binary.LittleEndian.PutUint64(buf, uint64(n))
	case schema.Float:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: float %q: %v", ErrParse, value, err)
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(f)))
	case schema.Double:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: double %q: %v", ErrParse, value, err)
		}
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	case schema.Char:
		n := copy(buf, []byte(value))
		_ = n // remainder stays zero-padded
	default:
		return nil, fmt.Errorf("%w: unknown column type %v", ErrParse, col.Type)
	}
	return buf, nil
}

// Decode reads col's on-disk bytes back into a ColumnValue.
func Decode(col schema.SchemaColumn, data []byte) (ColumnValue, error) {
	if uint(len(data)) != col.Size() {
		return ColumnValue{}, fmt.Errorf("%w: column %q expected %d bytes, got %d",
			ErrParse, col.Name, col.Size(), len(data))
	}
	switch col.Type {
	case schema.Int32:
		return Int32Value(int32(binary.LittleEndian.Uint32(data))), nil
	case schema.Int64:
		return Int64Value(int64(binary.LittleEndian.Uint64(data))), nil
	case schema.ForeignKey:
		return ForeignKeyValue(int64(binary.LittleEndian.Uint64(data))), nil
	case schema.Float:
		return FloatValue(math.Float32frombits(binary.LittleEndian.Uint32(data))), nil
	case schema.Double:
		return DoubleValue(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
	case schema.Char:
		cp := make([]byte, len(data))
		copy(cp, data)
		return CharValue(cp), nil
	default:
		return ColumnValue{}, fmt.Errorf("%w: unknown column type %v", ErrParse, col.Type)
	}
}

// DecodeRow decodes a full row (including "_id" at position 0) into its
// string renderings, in schema column order.
func DecodeRow(cols []schema.SchemaColumn, body []byte) ([]string, error) {
	out := make([]string, len(cols))
	var offset uint
	for i, c := range cols {
		width := c.Size()
		if offset+width > uint(len(body)) {
			return nil, fmt.Errorf("%w: body too short for column %q", ErrParse, c.Name)
		}
		v, err := Decode(c, body[offset:offset+width])
		if err != nil {
			return nil, err
		}
		out[i] = v.String()
		offset += width
	}
	return out, nil
}

// EncodeRow encodes a full row (values must align with cols, "_id" first)
// into its concatenated on-disk body.
func EncodeRow(cols []schema.SchemaColumn, values []string) ([]byte, error) {
	if len(values) != len(cols) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrParse, len(cols), len(values))
	}
	var buf bytes.Buffer
	buf.Grow(int(sumSize(cols)))
	for i, c := range cols {
		encoded, err := Encode(c, values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	return buf.Bytes(), nil
}

func sumSize(cols []schema.SchemaColumn) uint {
	var total uint
	for _, c := range cols {
		total += c.Size()
	}
	return total
}
