// Package mutf8 implements the "modified UTF-8" string encoding used by
// Java's DataOutput.writeUTF and therefore by NBT strings and names.
//
// Modified UTF-8 differs from standard UTF-8 in two ways:
//   - U+0000 is written as the two-byte sequence 0xC0 0x80, so encoded
//     strings never contain a zero byte.
//   - Code points above U+FFFF are written as a UTF-16 surrogate pair with
//     each surrogate encoded separately as a three-byte sequence (six bytes
//     in total) instead of one four-byte sequence.
//
// Decoding additionally accepts standard four-byte UTF-8 sequences, which some
// writers emit, but encoding always produces the canonical modified form.
package mutf8

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/nbt/errs"
)

// EncodedLen returns the number of bytes Encode would produce for s.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		n += runeLen(r)
	}

	return n
}

func runeLen(r rune) int {
	switch {
	case r == 0:
		return 2
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r <= 0xFFFF:
		return 3
	default:
		return 6
	}
}

// Encode returns the modified UTF-8 encoding of s.
//
// Invalid UTF-8 bytes in s are encoded as U+FFFD.
func Encode(s string) []byte {
	if isPlainASCII(s) {
		return []byte(s)
	}

	return AppendEncode(make([]byte, 0, EncodedLen(s)), s)
}

// AppendEncode appends the modified UTF-8 encoding of s to dst.
func AppendEncode(dst []byte, s string) []byte {
	if isPlainASCII(s) {
		return append(dst, s...)
	}

	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r <= 0xFFFF:
			dst = appendUnit(dst, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = appendUnit(dst, hi)
			dst = appendUnit(dst, lo)
		}
	}

	return dst
}

func appendUnit(dst []byte, u rune) []byte {
	return append(dst, 0xE0|byte(u>>12), 0x80|byte((u>>6)&0x3F), 0x80|byte(u&0x3F))
}

// Decode converts modified UTF-8 bytes to a Go string.
//
// Unpaired surrogates decode to U+FFFD. Truncated or otherwise invalid
// sequences return an error wrapping errs.ErrInvalidUTF8.
func Decode(data []byte) (string, error) {
	if isPlainASCIIBytes(data) {
		return string(data), nil
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b < 0x80:
			out = append(out, b)
			i++
		case b&0xE0 == 0xC0:
			if i+1 >= len(data) || !isCont(data[i+1]) {
				return "", invalidAt(i)
			}
			r := rune(b&0x1F)<<6 | rune(data[i+1]&0x3F)
			out = utf8.AppendRune(out, r)
			i += 2
		case b&0xF0 == 0xE0:
			u, ok := unitAt(data, i)
			if !ok {
				return "", invalidAt(i)
			}
			i += 3
			if utf16.IsSurrogate(u) {
				if u < 0xDC00 {
					if lo, ok := unitAt(data, i); ok && lo >= 0xDC00 && lo <= 0xDFFF {
						out = utf8.AppendRune(out, utf16.DecodeRune(u, lo))
						i += 3

						continue
					}
				}
				out = utf8.AppendRune(out, utf8.RuneError)

				continue
			}
			out = utf8.AppendRune(out, u)
		case b&0xF8 == 0xF0:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", invalidAt(i)
			}
			out = utf8.AppendRune(out, r)
			i += size
		default:
			return "", invalidAt(i)
		}
	}

	return string(out), nil
}

// unitAt decodes the three-byte sequence starting at data[i] into a UTF-16 unit.
func unitAt(data []byte, i int) (rune, bool) {
	if i+2 >= len(data) || data[i]&0xF0 != 0xE0 || !isCont(data[i+1]) || !isCont(data[i+2]) {
		return 0, false
	}

	return rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F), true
}

func isCont(b byte) bool {
	return b&0xC0 == 0x80
}

func invalidAt(offset int) error {
	return fmt.Errorf("%w: bad sequence at byte %d", errs.ErrInvalidUTF8, offset)
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] >= 0x80 {
			return false
		}
	}

	return true
}

func isPlainASCIIBytes(b []byte) bool {
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			return false
		}
	}

	return true
}
