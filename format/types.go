package format

type (
	Kind            uint8
	CompressionType uint8
)

// Tag kinds. The values are the kind bytes written on the wire and are frozen.
const (
	KindEnd       Kind = 0x00 // KindEnd terminates a compound; also the element kind of an untyped empty list.
	KindByte      Kind = 0x01 // KindByte is a signed 8-bit integer.
	KindShort     Kind = 0x02 // KindShort is a signed 16-bit integer.
	KindInt       Kind = 0x03 // KindInt is a signed 32-bit integer.
	KindLong      Kind = 0x04 // KindLong is a signed 64-bit integer.
	KindFloat     Kind = 0x05 // KindFloat is an IEEE-754 binary32 value.
	KindDouble    Kind = 0x06 // KindDouble is an IEEE-754 binary64 value.
	KindByteArray Kind = 0x07 // KindByteArray is an int32 count followed by bytes.
	KindString    Kind = 0x08 // KindString is a uint16 length followed by modified UTF-8.
	KindList      Kind = 0x09 // KindList is an element kind, an int32 count and unnamed payloads.
	KindCompound  Kind = 0x0A // KindCompound is a sequence of named tags terminated by KindEnd.
	KindIntArray  Kind = 0x0B // KindIntArray is an int32 count followed by int32 values.
	KindLongArray Kind = 0x0C // KindLongArray is an int32 count followed by int64 values.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip (RFC 1952), the usual NBT file wrapper.
	CompressionZlib CompressionType = 0x3 // CompressionZlib represents zlib (RFC 1950), used for region chunks.
	CompressionZstd CompressionType = 0x4 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x5 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x6 // CompressionLZ4 represents LZ4 block compression.
)

// IsValid reports whether k is one of the 13 defined tag kinds.
func (k Kind) IsValid() bool {
	return k <= KindLongArray
}

// IsNumeric reports whether k is a scalar numeric kind.
func (k Kind) IsNumeric() bool {
	return k >= KindByte && k <= KindDouble
}

// IsInteger reports whether k is a scalar integer kind.
func (k Kind) IsInteger() bool {
	return k >= KindByte && k <= KindLong
}

// IsContainer reports whether k holds child tags.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindCompound
}

// Width returns the fixed payload width in bytes of a scalar kind, or the
// element width of an array kind. It returns 0 for variable-size kinds.
func (k Kind) Width() int {
	switch k {
	case KindByte, KindByteArray:
		return 1
	case KindShort:
		return 2
	case KindInt, KindFloat, KindIntArray:
		return 4
	case KindLong, KindDouble, KindLongArray:
		return 8
	default:
		return 0
	}
}

// MinPayloadSize returns the smallest number of bytes a payload of kind k can
// occupy on the wire.
func (k Kind) MinPayloadSize() int {
	switch k {
	case KindEnd:
		return 0
	case KindByte:
		return 1
	case KindShort, KindString:
		return 2
	case KindInt, KindFloat, KindByteArray, KindIntArray, KindLongArray:
		return 4
	case KindLong, KindDouble:
		return 8
	case KindList:
		return 5
	case KindCompound:
		return 1
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "End"
	case KindByte:
		return "Byte"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindByteArray:
		return "ByteArray"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindCompound:
		return "Compound"
	case KindIntArray:
		return "IntArray"
	case KindLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}

// ParseKind returns the kind whose String form is name.
func ParseKind(name string) (Kind, bool) {
	for k := KindEnd; k <= KindLongArray; k++ {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a case-insensitive compression name such as "gzip".
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "None", "NONE", "raw":
		return CompressionNone, true
	case "gzip", "Gzip", "GZIP", "gz":
		return CompressionGzip, true
	case "zlib", "Zlib", "ZLIB":
		return CompressionZlib, true
	case "zstd", "Zstd", "ZSTD", "zst":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
