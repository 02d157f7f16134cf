package codec

import (
	"fmt"

	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/beevik/etree"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger(common.LoggerCodec)

// IValueCodec converts between the serialized value of a setting as the host
// sees it and the Value stored in a settings document.
type IValueCodec interface {
	// Kind returns the serialization kind handled by the codec
	Kind() common.SerializeAs
	// Encode converts a host value into its stored representation.
	// A nil value is always encoded as explicit empty text.
	// It returns an error with code common.RetCInvalidValue if v cannot be encoded.
	Encode(v any) (Value, error)
	// Decode converts a stored representation back into a host value.
	// It returns an error with code common.RetCMalformedData if the stored value is unusable.
	Decode(v Value) (any, error)
}

// Value is the format independent representation of a stored setting.
// A Value is either plain text or, if Element is not nil, a structured subtree.
type Value struct {
	Text    string
	Element *etree.Element
}

// TextValue returns a Value holding plain text
func TextValue(text string) Value {
	return Value{Text: text}
}

// ElementValue returns a Value holding a structured subtree
func ElementValue(e *etree.Element) Value {
	return Value{Element: e}
}

// IsElement reports whether the value holds a structured subtree
func (v Value) IsElement() bool {
	return v.Element != nil
}

// String renders the value for log messages
func (v Value) String() string {
	if v.Element != nil {
		s, err := RenderElement(v.Element)
		if err != nil {
			return fmt.Sprintf("<%s ...>", v.Element.FullTag())
		}
		return s
	}
	return v.Text
}

// ForKind returns the codec for a serialization kind
func ForKind(kind common.SerializeAs) (IValueCodec, error) {
	switch kind {
	case common.SerializeAsText:
		return NewTextCodec(), nil
	case common.SerializeAsStructuredXml:
		return NewXmlCodec(), nil
	case common.SerializeAsBinary:
		return NewBinaryCodec(), nil
	default:
		return nil, common.NewError(common.RetCInvalidValue, fmt.Sprintf("no codec for serialization kind %s", kind))
	}
}

// Encode encodes v with the codec of the given kind
func Encode(kind common.SerializeAs, v any) (Value, error) {
	c, err := ForKind(kind)
	if err != nil {
		return Value{}, err
	}
	return c.Encode(v)
}

// Decode decodes v with the codec of the given kind
func Decode(kind common.SerializeAs, v Value) (any, error) {
	c, err := ForKind(kind)
	if err != nil {
		return nil, err
	}
	return c.Decode(v)
}
