package codec

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// NewXmlCodec creates a codec storing xml fragments as structured subtrees
func NewXmlCodec() IValueCodec {
	return &xmlCodecImpl{}
}

// xmlCodecImpl implements the IValueCodec interface for common.SerializeAsStructuredXml
type xmlCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IValueCodec)
// --------------------------------------------------------------------------

func (c xmlCodecImpl) Kind() common.SerializeAs {
	return common.SerializeAsStructuredXml
}

func (c xmlCodecImpl) Encode(v any) (Value, error) {
	var fragment string
	switch val := v.(type) {
	case nil:
		return TextValue(""), nil
	case string:
		fragment = val
	case []byte:
		fragment = string(val)
	default:
		return Value{}, common.NewError(common.RetCInvalidValue, fmt.Sprintf("xml setting expects a string, got %T", v))
	}

	// an empty fragment is the empty value read back from a document
	if strings.TrimSpace(fragment) == "" {
		return TextValue(""), nil
	}

	e, err := ParseFragment(fragment)
	if err != nil {
		return Value{}, common.WrapError(common.RetCInvalidValue, err, "xml setting is not a well-formed fragment")
	}
	return ElementValue(e), nil
}

func (c xmlCodecImpl) Decode(v Value) (any, error) {
	// plain text is kept as is, this covers the explicit empty value
	if !v.IsElement() {
		if strings.TrimSpace(v.Text) != "" {
			Logger.Debugf("structured xml setting is stored as plain text")
		}
		return v.Text, nil
	}
	s, err := RenderElement(v.Element)
	if err != nil {
		return nil, common.WrapError(common.RetCMalformedData, err, "xml setting cannot be rendered")
	}
	return s, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseFragment parses an xml fragment with exactly one root element and
// returns the detached root. Declarations, comments and surrounding whitespace
// are dropped.
func ParseFragment(fragment string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(fragment); err != nil {
		return nil, errors.WithMessage(err, "parse xml fragment")
	}

	roots := doc.ChildElements()
	if len(roots) != 1 {
		return nil, errors.Errorf("xml fragment must have exactly one root element, found %d", len(roots))
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return nil, errors.New("xml fragment has text outside of its root element")
		}
	}
	return roots[0].Copy(), nil
}

// RenderElement writes an element and its subtree as an xml string without
// declaration. Carriage returns are written as character references so that
// a later parse does not normalize them away.
func RenderElement(e *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = WriteSettings()
	doc.SetRoot(e.Copy())
	return doc.WriteToString()
}

// WriteSettings returns the etree settings every settings file is written with
func WriteSettings() etree.WriteSettings {
	return etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
}
