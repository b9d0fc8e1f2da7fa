package dberr

// Code identifies the category of a failure. The numeric values are
// what boundary callers receive; Success is always zero.
type Code int32

const (
	Success Code = iota
	ConfigurationError
	UnknownDatabaseError
	IoError
	TlsError
	ProtocolError
	RowNotFound
	TypeNotFound
	ColumnIndexOutOfBounds
	ColumnNotFound
	ColumnDecodeError
	ValueDecodeError
	PoolTimedOut
	PoolClosed
	WorkerCrashed
	UnknownDriverError
	NotConnected
	NoMoreRows
	UnsupportedNativeType
	WrongDatabaseType
	UnexpectedNullValue
	UnexpectedNoneType
	NullNotAllowed
	BufferNotEnough
	InvalidNativeType
	InvalidUtf8String
	RowIndexOutOfBounds
	BadPrimitiveEnumValue
)

var codeNames = map[Code]string{
	Success:                "success",
	ConfigurationError:     "configuration error",
	UnknownDatabaseError:   "unknown database error",
	IoError:                "io error",
	TlsError:               "tls error",
	ProtocolError:          "protocol error",
	RowNotFound:            "row not found",
	TypeNotFound:           "type not found",
	ColumnIndexOutOfBounds: "column index out of bounds",
	ColumnNotFound:         "column not found",
	ColumnDecodeError:      "column decode error",
	ValueDecodeError:       "value decode error",
	PoolTimedOut:           "pool timed out",
	PoolClosed:             "pool closed",
	WorkerCrashed:          "worker crashed",
	UnknownDriverError:     "unknown driver error",
	NotConnected:           "not connected",
	NoMoreRows:             "no more rows",
	UnsupportedNativeType:  "unsupported native type",
	WrongDatabaseType:      "wrong database type",
	UnexpectedNullValue:    "unexpected null value",
	UnexpectedNoneType:     "unexpected none type",
	NullNotAllowed:         "null not allowed",
	BufferNotEnough:        "buffer not enough",
	InvalidNativeType:      "invalid native type",
	InvalidUtf8String:      "invalid utf-8 string",
	RowIndexOutOfBounds:    "row index out of bounds",
	BadPrimitiveEnumValue:  "bad primitive enum value",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown error code"
}
