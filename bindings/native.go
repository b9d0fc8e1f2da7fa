package main

import (
	"encoding/binary"
	"math"
)

// Scalar payloads cross the boundary in machine byte order; the caller
// hands over the raw memory of a typed variable.

func nativeUint16(raw []byte) uint16 {
	return binary.NativeEndian.Uint16(raw)
}

func nativeUint32(raw []byte) uint32 {
	return binary.NativeEndian.Uint32(raw)
}

func nativeUint64(raw []byte) uint64 {
	return binary.NativeEndian.Uint64(raw)
}

func nativeFloat32(raw []byte) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(raw))
}

func nativeFloat64(raw []byte) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(raw))
}
