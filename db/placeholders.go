package db

import (
	"math"

	"github.com/sqlgate/sqlgate/dberr"
	"github.com/sqlgate/sqlgate/types"
)

// PlaceholderArgumentVector collects the bind arguments for one query,
// in placeholder order. The vector is append-only and consumed exactly
// once: dispatching the query takes ownership of the arguments, after
// which the vector cannot be reused.
type PlaceholderArgumentVector struct {
	args     []*types.NativeType
	consumed bool
}

// NewPlaceholderArgumentVector returns an empty argument vector.
func NewPlaceholderArgumentVector() *PlaceholderArgumentVector {
	return &PlaceholderArgumentVector{}
}

// Add appends one argument and returns a pointer to the stored entry
// so the caller can fill it in place.
func (v *PlaceholderArgumentVector) Add(arg types.NativeType) *types.NativeType {
	entry := &arg
	v.args = append(v.args, entry)
	return entry
}

// Size gives the number of arguments added so far.
func (v *PlaceholderArgumentVector) Size() int {
	if v == nil {
		return 0
	}
	return len(v.args)
}

// take consumes the vector, converting every argument to its driver
// value. A nil vector is an empty bind list. Taking twice fails.
func (v *PlaceholderArgumentVector) take() ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if v.consumed {
		return nil, dberr.New(dberr.UnexpectedNoneType, "placeholder arguments already consumed")
	}
	v.consumed = true
	out := make([]any, len(v.args))
	for i, arg := range v.args {
		dv, err := driverValue(arg)
		if err != nil {
			return nil, err
		}
		out[i] = dv
	}
	return out, nil
}

// driverValue converts one native argument into a value the drivers
// accept directly.
func driverValue(n *types.NativeType) (any, error) {
	switch n.Tag {
	case types.Null:
		return nil, nil
	case types.Bool:
		return n.Bool, nil
	case types.Int8, types.Int16, types.Int32, types.Int64:
		return n.Int, nil
	case types.UInt8, types.UInt16, types.UInt32:
		return int64(n.Uint), nil
	case types.UInt64:
		if n.Uint > math.MaxInt64 {
			return nil, dberr.Newf(dberr.ValueDecodeError, "unsigned argument %d exceeds the signed bind range", n.Uint)
		}
		return int64(n.Uint), nil
	case types.Float32, types.Float64:
		return n.Float, nil
	case types.String:
		return n.Str, nil
	case types.Bytes:
		return n.Bytes, nil
	case types.NoValue:
		return nil, dberr.New(dberr.UnexpectedNoneType, "placeholder argument was never assigned a value")
	default:
		return nil, dberr.Newf(dberr.InvalidNativeType, "native type %s cannot be bound", n.Tag)
	}
}
