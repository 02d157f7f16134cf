package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/ValentinKolb/pSettings/lib/common"
)

// NewTextCodec creates a codec storing values as plain text
func NewTextCodec() IValueCodec {
	return &textCodecImpl{}
}

// textCodecImpl implements the IValueCodec interface for common.SerializeAsText
type textCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IValueCodec)
// --------------------------------------------------------------------------

func (c textCodecImpl) Kind() common.SerializeAs {
	return common.SerializeAsText
}

func (c textCodecImpl) Encode(v any) (Value, error) {
	var text string
	switch val := v.(type) {
	case nil:
		return TextValue(""), nil
	case string:
		text = val
	case []byte:
		text = string(val)
	case fmt.Stringer:
		text = val.String()
	default:
		return Value{}, common.NewError(common.RetCInvalidValue, fmt.Sprintf("text setting expects a string, got %T", v))
	}

	if err := checkText(text); err != nil {
		return Value{}, err
	}
	return TextValue(text), nil
}

func (c textCodecImpl) Decode(v Value) (any, error) {
	if v.IsElement() {
		return nil, common.NewError(common.RetCMalformedData, fmt.Sprintf("text setting holds a structured <%s> element", v.Element.FullTag()))
	}
	return v.Text, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// checkText rejects text that an xml document cannot hold: invalid utf-8 and
// control characters other than tab, line feed and carriage return. Both
// document formats refuse it, so a value never changes with the format.
func checkText(text string) error {
	if !utf8.ValidString(text) {
		return common.NewError(common.RetCInvalidValue, "text setting is not valid utf-8")
	}
	for i, r := range text {
		if !isXmlChar(r) {
			return common.NewError(common.RetCInvalidValue, fmt.Sprintf("text setting contains the character %U at byte %d, which xml cannot store", r, i))
		}
	}
	return nil
}

// isXmlChar reports whether r is in the Char production of XML 1.0
func isXmlChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
