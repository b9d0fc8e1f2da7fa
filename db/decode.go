package db

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

// AllocatedDecodedValue owns one decoded payload: the encoded bytes,
// the native type actually produced, and an explicit null flag. A SQL
// NULL decodes successfully into a null-flagged value with an empty
// payload and a preserved type tag.
type AllocatedDecodedValue struct {
	data []byte
	tag  types.NativeTypeTag
	null bool
}

// Data gives the engine-owned payload bytes.
func (v *AllocatedDecodedValue) Data() []byte {
	return v.data
}

// Size gives the payload size in bytes; zero for a decoded NULL.
func (v *AllocatedDecodedValue) Size() int {
	return len(v.data)
}

// Type gives the native type the decode produced.
func (v *AllocatedDecodedValue) Type() types.NativeTypeTag {
	return v.tag
}

// IsNull reports whether a SQL NULL was decoded.
func (v *AllocatedDecodedValue) IsNull() bool {
	return v.null
}

// DecodeToAllocation decodes one column of the row into engine-owned
// storage.
func (r *TableRow) DecodeToAllocation(column TableColumnRef) (*AllocatedDecodedValue, error) {
	payload, tag, null, err := r.decode(column)
	if err != nil {
		return nil, err
	}
	return &AllocatedDecodedValue{data: payload, tag: tag, null: null}, nil
}

// DecodeToBuffer decodes one column of the row into a caller buffer.
//
// The decoded size is always returned, even on failure: when buf is
// too small the error carries the buffer-not-enough condition and size
// is the exact number of bytes a retry needs. Scalars are encoded in
// machine byte order, text and blobs as raw bytes without terminator.
func (r *TableRow) DecodeToBuffer(column TableColumnRef, buf []byte) (size int, tag types.NativeTypeTag, isNull bool, err error) {
	payload, tag, null, err := r.decode(column)
	if err != nil {
		return 0, types.NoValue, false, err
	}
	if len(payload) > len(buf) {
		return len(payload), tag, null, dberr.Newf(dberr.BufferNotEnough, "need %d bytes, have %d", len(payload), len(buf))
	}
	copy(buf, payload)
	return len(payload), tag, null, nil
}

// decode converts the column's raw driver payload into the native
// representation its logical type calls for.
func (r *TableRow) decode(column TableColumnRef) ([]byte, types.NativeTypeTag, bool, error) {
	tag, err := nativeTagFor(column.ctype)
	if err != nil {
		return nil, types.NoValue, false, err
	}
	raw, err := r.value(column)
	if err != nil {
		return nil, types.NoValue, false, err
	}
	if raw == nil {
		return nil, tag, true, nil
	}
	payload, err := encodeNative(tag, column.ctype, raw)
	if err != nil {
		return nil, types.NoValue, false, err
	}
	return payload, tag, false, nil
}

// nativeTagFor picks the native representation a logical column type
// decodes to. Width and signedness map exactly; there is no
// best-effort coercion for unknown types.
func nativeTagFor(ctype types.ColumnType) (types.NativeTypeTag, error) {
	switch ctype {
	case types.Boolean:
		return types.Bool, nil
	case types.TinyInt:
		return types.Int8, nil
	case types.TinyIntUnsigned:
		return types.UInt8, nil
	case types.SmallInt:
		return types.Int16, nil
	case types.SmallIntUnsigned:
		return types.UInt16, nil
	case types.MediumInt, types.Int:
		return types.Int32, nil
	case types.MediumIntUnsigned, types.IntUnsigned:
		return types.UInt32, nil
	case types.BigInt:
		return types.Int64, nil
	case types.BigIntUnsigned:
		return types.UInt64, nil
	case types.Float:
		return types.Float32, nil
	case types.Double:
		return types.Float64, nil
	case types.Enum, types.Date, types.Time, types.DateTime, types.Timestamp,
		types.Char, types.VarChar, types.Decimal:
		return types.String, nil
	case types.TinyBlob, types.MediumBlob, types.Blob, types.LongBlob, types.Binary:
		return types.Bytes, nil
	default:
		return types.NoValue, dberr.Newf(dberr.TypeNotFound, "column type %s has no native representation", ctype)
	}
}

// encodeNative renders the driver value as the payload bytes of the
// target native type. Scalars use machine byte order: the boundary
// caller reinterprets the payload in place.
func encodeNative(tag types.NativeTypeTag, ctype types.ColumnType, raw any) ([]byte, error) {
	switch tag {
	case types.Bool:
		v, err := asBool(raw)
		if err != nil {
			return nil, err
		}
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case types.Int8, types.Int16, types.Int32, types.Int64:
		v, err := asInt64(raw)
		if err != nil {
			return nil, err
		}
		return encodeSigned(tag, v)

	case types.UInt8, types.UInt16, types.UInt32, types.UInt64:
		v, err := asUint64(raw)
		if err != nil {
			return nil, err
		}
		return encodeUnsigned(tag, v)

	case types.Float32:
		v, err := asFloat64(raw)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 4)
		binary.NativeEndian.PutUint32(buf, math.Float32bits(float32(v)))
		return buf, nil

	case types.Float64:
		v, err := asFloat64(raw)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 8)
		binary.NativeEndian.PutUint64(buf, math.Float64bits(v))
		return buf, nil

	case types.String:
		s, err := asString(ctype, raw)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(s) {
			return nil, dberr.New(dberr.InvalidUtf8String, "text payload is not valid utf-8")
		}
		return []byte(s), nil

	case types.Bytes:
		switch v := raw.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		}
		return nil, dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as bytes", raw)

	default:
		return nil, dberr.Newf(dberr.UnsupportedNativeType, "native type %s is not decodable", tag)
	}
}

func encodeSigned(tag types.NativeTypeTag, v int64) ([]byte, error) {
	switch tag {
	case types.Int8:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return nil, rangeError(v, tag)
		}
		return []byte{byte(int8(v))}, nil
	case types.Int16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, rangeError(v, tag)
		}
		buf := make([]byte, 2)
		binary.NativeEndian.PutUint16(buf, uint16(int16(v)))
		return buf, nil
	case types.Int32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, rangeError(v, tag)
		}
		buf := make([]byte, 4)
		binary.NativeEndian.PutUint32(buf, uint32(int32(v)))
		return buf, nil
	default:
		buf := make([]byte, 8)
		binary.NativeEndian.PutUint64(buf, uint64(v))
		return buf, nil
	}
}

func encodeUnsigned(tag types.NativeTypeTag, v uint64) ([]byte, error) {
	switch tag {
	case types.UInt8:
		if v > math.MaxUint8 {
			return nil, rangeError(int64(v), tag)
		}
		return []byte{byte(v)}, nil
	case types.UInt16:
		if v > math.MaxUint16 {
			return nil, rangeError(int64(v), tag)
		}
		buf := make([]byte, 2)
		binary.NativeEndian.PutUint16(buf, uint16(v))
		return buf, nil
	case types.UInt32:
		if v > math.MaxUint32 {
			return nil, rangeError(int64(v), tag)
		}
		buf := make([]byte, 4)
		binary.NativeEndian.PutUint32(buf, uint32(v))
		return buf, nil
	default:
		buf := make([]byte, 8)
		binary.NativeEndian.PutUint64(buf, v)
		return buf, nil
	}
}

func rangeError(v int64, tag types.NativeTypeTag) error {
	return dberr.Newf(dberr.ValueDecodeError, "value %d does not fit %s", v, tag)
}

func asBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	default:
		return false, dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as bool", raw)
	}
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, dberr.Newf(dberr.ValueDecodeError, "%q is not a boolean", s)
	}
	return b, nil
}

func asInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, dberr.Newf(dberr.ValueDecodeError, "value %d does not fit a signed width", v)
		}
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return parseInt64(string(v))
	case string:
		return parseInt64(v)
	default:
		return 0, dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as an integer", raw)
	}
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dberr.Newf(dberr.ValueDecodeError, "%q is not an integer", s)
	}
	return n, nil
}

func asUint64(raw any) (uint64, error) {
	switch v := raw.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, dberr.Newf(dberr.ValueDecodeError, "value %d does not fit an unsigned width", v)
		}
		return uint64(v), nil
	case []byte:
		return parseUint64(string(v))
	case string:
		return parseUint64(v)
	default:
		return 0, dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as an unsigned integer", raw)
	}
}

func parseUint64(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dberr.Newf(dberr.ValueDecodeError, "%q is not an unsigned integer", s)
	}
	return n, nil
}

func asFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []byte:
		return parseFloat64(string(v))
	case string:
		return parseFloat64(v)
	default:
		return 0, dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as a float", raw)
	}
}

func parseFloat64(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, dberr.Newf(dberr.ValueDecodeError, "%q is not a float", s)
	}
	return f, nil
}

// asString renders text-like payloads; temporal columns are formatted
// in the SQL literal shape of their logical type.
func asString(ctype types.ColumnType, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case time.Time:
		switch ctype {
		case types.Date:
			return v.Format("2006-01-02"), nil
		case types.Time:
			return v.Format("15:04:05"), nil
		default:
			return v.Format("2006-01-02 15:04:05"), nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", dberr.Newf(dberr.ColumnDecodeError, "cannot decode %T as text", raw)
	}
}
