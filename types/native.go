package types

// NativeTypeTag identifies which native representation a NativeType
// holds. NoValue and Null are distinct: NoValue means nothing was
// supplied or decoded at all, Null means a SQL NULL was explicitly
// decoded.
type NativeTypeTag int32

const (
	NoValue NativeTypeTag = iota
	Null
	Bool
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	String
	Float32
	Float64
	Bytes
)

var nativeTagNames = map[NativeTypeTag]string{
	NoValue: "NoValue",
	Null:    "Null",
	Bool:    "Bool",
	Int8:    "Int8",
	UInt8:   "UInt8",
	Int16:   "Int16",
	UInt16:  "UInt16",
	Int32:   "Int32",
	UInt32:  "UInt32",
	Int64:   "Int64",
	UInt64:  "UInt64",
	String:  "String",
	Float32: "Float32",
	Float64: "Float64",
	Bytes:   "Bytes",
}

func (t NativeTypeTag) String() string {
	if name, ok := nativeTagNames[t]; ok {
		return name
	}
	return "Invalid"
}

// Valid reports whether t is a member of the closed enumeration.
func (t NativeTypeTag) Valid() bool {
	return t >= NoValue && t <= Bytes
}

// Signed reports whether t is a signed integer width.
func (t NativeTypeTag) Signed() bool {
	switch t {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// Unsigned reports whether t is an unsigned integer width.
func (t NativeTypeTag) Unsigned() bool {
	switch t {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// Width gives the fixed encoded size in bytes for scalar tags, or -1
// for variable-length and empty tags (String, Bytes, Null, NoValue).
func (t NativeTypeTag) Width() int {
	switch t {
	case Bool, Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		return -1
	}
}

// NativeType is a tagged union over the native representations the
// engine decodes to and binds from. Exactly one of the value fields is
// meaningful, selected by Tag.
type NativeType struct {
	Tag   NativeTypeTag
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Str   string
	Bytes []byte
}

// None is the absent value.
func None() NativeType { return NativeType{Tag: NoValue} }

// NullValue is an explicitly decoded SQL NULL.
func NullValue() NativeType { return NativeType{Tag: Null} }

func BoolValue(v bool) NativeType    { return NativeType{Tag: Bool, Bool: v} }
func Int8Value(v int8) NativeType    { return NativeType{Tag: Int8, Int: int64(v)} }
func UInt8Value(v uint8) NativeType  { return NativeType{Tag: UInt8, Uint: uint64(v)} }
func Int16Value(v int16) NativeType  { return NativeType{Tag: Int16, Int: int64(v)} }
func UInt16Value(v uint16) NativeType {
	return NativeType{Tag: UInt16, Uint: uint64(v)}
}
func Int32Value(v int32) NativeType { return NativeType{Tag: Int32, Int: int64(v)} }
func UInt32Value(v uint32) NativeType {
	return NativeType{Tag: UInt32, Uint: uint64(v)}
}
func Int64Value(v int64) NativeType   { return NativeType{Tag: Int64, Int: v} }
func UInt64Value(v uint64) NativeType { return NativeType{Tag: UInt64, Uint: v} }
func StringValue(v string) NativeType { return NativeType{Tag: String, Str: v} }
func Float32Value(v float32) NativeType {
	return NativeType{Tag: Float32, Float: float64(v)}
}
func Float64Value(v float64) NativeType { return NativeType{Tag: Float64, Float: v} }
func BytesValue(v []byte) NativeType    { return NativeType{Tag: Bytes, Bytes: v} }
