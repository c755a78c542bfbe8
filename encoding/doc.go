// Package encoding provides the fixed-layout wire primitives of the NBT format.
//
// A Writer appends kind bytes, fixed-width integers, raw IEEE-754 bit patterns
// and uint16 length-prefixed modified UTF-8 strings to a pooled buffer. A
// Reader walks an immutable byte slice with a cursor and reports every
// out-of-range read as errs.ErrMalformedInput instead of panicking.
//
// Both are parameterized by an endian.EndianEngine; the NBT codec passes the
// big-endian engine unless configured for the little-endian Bedrock variant.
//
// # Usage Guidance
//
// Most users should use the codec package, which walks whole tag trees. Use
// this package directly only for hand-written NBT fragments:
//
//	w := encoding.NewWriter(endian.GetBigEndianEngine())
//	defer w.Release()
//
//	w.WriteKind(format.KindCompound)
//	_ = w.WriteString("")
//	w.WriteKind(format.KindEnd)
//	out := bytes.Clone(w.Bytes()) // 0x0A 0x00 0x00 0x00
package encoding
