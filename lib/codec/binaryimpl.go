package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"github.com/ValentinKolb/pSettings/lib/common"
)

// NewBinaryCodec creates a codec storing raw bytes as standard base64 text
func NewBinaryCodec() IValueCodec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements the IValueCodec interface for common.SerializeAsBinary
type binaryCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IValueCodec)
// --------------------------------------------------------------------------

func (c binaryCodecImpl) Kind() common.SerializeAs {
	return common.SerializeAsBinary
}

func (c binaryCodecImpl) Encode(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return TextValue(""), nil
	case []byte:
		return TextValue(base64.StdEncoding.EncodeToString(val)), nil
	case string:
		return TextValue(base64.StdEncoding.EncodeToString([]byte(val))), nil
	default:
		return Value{}, common.NewError(common.RetCInvalidValue, fmt.Sprintf("binary setting expects []byte, got %T", v))
	}
}

func (c binaryCodecImpl) Decode(v Value) (any, error) {
	if v.IsElement() {
		return nil, common.NewError(common.RetCMalformedData, fmt.Sprintf("binary setting holds a structured <%s> element", v.Element.FullTag()))
	}

	// whitespace may be introduced by hand editing or line wrapping
	text := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v.Text)

	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, common.WrapError(common.RetCMalformedData, err, "binary setting is not valid base64")
	}
	return b, nil
}
