// Package convert maps between tag trees and plain Go values.
//
// Infer builds a tree from Go values using a fixed table, so the same value
// always produces the same kinds:
//
//	int8, uint8, bool       Byte
//	int16                   Short
//	int32                   Int
//	int64                   Long
//	float32                 Float
//	float64                 Double
//	string                  String
//	[]byte                  ByteArray
//	[]int32                 IntArray
//	[]int64                 LongArray
//	other slices            List (homogeneous; empty is List of End)
//	map[string]V            Compound (keys sorted)
//	*tag.Tag                the tag itself
//
// Platform-sized and unsigned integers (int, uint, uint16, uint32, uint64)
// have no unambiguous width and fail with errs.ErrUnmappableValue, as does
// every other type.
//
// Native goes the other way and discards kinds: the result only holds the
// Go types listed above. MarshalCBOR and UnmarshalCBOR exchange that native
// form as deterministic CBOR.
package convert
