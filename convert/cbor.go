package convert

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/nbt/tag"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys
// and shortest integer and float forms, so equal trees produce equal bytes.
var encMode cbor.EncMode

// decMode decodes maps as map[string]any and every integer as int64, the
// shapes Infer accepts.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("convert: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic("convert: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes the native form of t as deterministic CBOR.
func MarshalCBOR(t *tag.Tag) ([]byte, error) {
	data, err := encMode.Marshal(Native(t))
	if err != nil {
		return nil, fmt.Errorf("cbor encode: %w", err)
	}

	return data, nil
}

// UnmarshalCBOR decodes CBOR data and infers a tree from it.
//
// CBOR does not carry NBT kinds: integers come back as Long, floating-point
// numbers as Double, byte strings as ByteArray and arrays as List. Only
// documents whose values fit those kinds round-trip exactly.
func UnmarshalCBOR(data []byte) (*tag.Tag, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("cbor decode: %w", err)
	}

	return Infer(v)
}
