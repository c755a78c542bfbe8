// Package codec converts between tag trees and the NBT binary format.
//
// A document is a single named Compound tag. Each tag on the wire is a kind
// byte, a uint16 length-prefixed modified UTF-8 name and a kind-specific
// payload; lists carry only payloads after an element kind byte and an int32
// count, and compounds end with an End byte.
//
// # Usage
//
//	dec, err := codec.NewDecoder()
//	if err != nil {
//	    return err
//	}
//	root, err := dec.Decode(data)
//
//	enc, err := codec.NewEncoder(codec.WithLittleEndian())
//	if err != nil {
//	    return err
//	}
//	out, err := enc.Encode(root)
//
// # Errors
//
// Decode failures wrap errs.ErrMalformedInput; encode failures wrap
// errs.ErrInvalidTag. Exceeding the nesting limit additionally wraps
// errs.ErrMaxDepthExceeded.
//
// # Round-trip
//
// Encoding a decoded canonical document reproduces its bytes exactly, including
// NaN payloads, duplicate compound names and negative zero.
package codec
