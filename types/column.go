package types

// ColumnType is the generalized logical type of a result column,
// independent of any one dialect's spelling of it.
type ColumnType int32

const (
	Unknown ColumnType = iota
	Boolean
	TinyInt
	TinyIntUnsigned
	SmallInt
	SmallIntUnsigned
	MediumInt
	MediumIntUnsigned
	Int
	IntUnsigned
	BigInt
	BigIntUnsigned
	Enum
	Date
	Time
	DateTime
	Timestamp
	Char
	VarChar
	Float
	Double
	Decimal
	TinyBlob
	MediumBlob
	Blob
	LongBlob
	Binary
)

var columnTypeNames = map[ColumnType]string{
	Unknown:           "Unknown",
	Boolean:           "Boolean",
	TinyInt:           "TinyInt",
	TinyIntUnsigned:   "TinyIntUnsigned",
	SmallInt:          "SmallInt",
	SmallIntUnsigned:  "SmallIntUnsigned",
	MediumInt:         "MediumInt",
	MediumIntUnsigned: "MediumIntUnsigned",
	Int:               "Int",
	IntUnsigned:       "IntUnsigned",
	BigInt:            "BigInt",
	BigIntUnsigned:    "BigIntUnsigned",
	Enum:              "Enum",
	Date:              "Date",
	Time:              "Time",
	DateTime:          "DateTime",
	Timestamp:         "Timestamp",
	Char:              "Char",
	VarChar:           "VarChar",
	Float:             "Float",
	Double:            "Double",
	Decimal:           "Decimal",
	TinyBlob:          "TinyBlob",
	MediumBlob:        "MediumBlob",
	Blob:              "Blob",
	LongBlob:          "LongBlob",
	Binary:            "Binary",
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}
