// Package endian provides the byte order engines used by the NBT wire codec.
//
// The Java Edition format is big-endian throughout and is the default for every
// encoder and decoder in this module. Bedrock Edition stores the same tag
// layout in little-endian order; selecting GetLittleEndianEngine switches all
// fixed-width fields (kind-independent lengths, counts and scalars) at once.
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(count))
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface so readers can decode in place and writers can append.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the Java Edition format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine used by the Bedrock Edition format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// Name returns a short human readable name for engine.
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big-endian"
	}

	return "little-endian"
}
