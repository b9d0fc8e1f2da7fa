// Package types defines the closed type vocabulary shared by the engine
// and its C boundary: the database dialect enumeration, the logical
// column type taxonomy, the native value model used for both decode
// output and placeholder input, and the tri-state boolean used for the
// TLS setting.
//
// Every enumeration is backed by int32 so values cross the binary
// boundary unchanged.
package types
