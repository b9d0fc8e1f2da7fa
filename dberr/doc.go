// Package dberr defines the closed error taxonomy reported across the
// binary boundary and the single choke point that maps driver-specific
// failures onto it.
//
// Core packages return ordinary errors; every fallible path wraps its
// failure in an *Error carrying a Code from the taxonomy. Nothing
// driver-specific leaks past FromDriver.
package dberr
