package jsondoc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/beevik/etree"
)

// Structured values are stored as json objects mirroring the xml element:
//
//	<Person id="7"><Name>John</Name><Tag>a</Tag><Tag>b</Tag></Person>
//
// becomes
//
//	{"Person": {"@id": "7", "Name": "John", "Tag": ["a", "b"]}}
//
// Text of an element that also has attributes or children is stored under
// "#text". An element without text and children is stored as null.
//
// The mapping follows the usual xml to json conversion and is not lossless
// for every fragment: text split by child elements is joined into a single
// "#text" placed ahead of the children, and repeated siblings are grouped
// into one array at the position of the first occurrence. <a>x<b/>y</a>
// reads back as <a>xy<b/></a>, <r><a/><b/><a/></r> as <r><a/><a/><b/></r>.
// Values that depend on such ordering belong in the xml format.
const (
	attrPrefix = "@"
	textKey    = "#text"
)

// toJSON converts a codec.Value into the json value stored for a setting
func toJSON(v codec.Value) any {
	if !v.IsElement() {
		return v.Text
	}
	root := newObject()
	root.Set(v.Element.FullTag(), elementBody(v.Element))
	return root
}

// fromJSON converts the json value stored for a setting into a codec.Value
func fromJSON(v any) (codec.Value, error) {
	switch val := v.(type) {
	case *object:
		keys := val.Keys()
		if len(keys) != 1 || isSpecialKey(keys[0]) {
			return codec.Value{}, common.NewError(common.RetCMalformedData, fmt.Sprintf("structured value must have exactly one root element, found keys %v", keys))
		}
		e, err := toElement(keys[0], val.values[keys[0]])
		if err != nil {
			return codec.Value{}, err
		}
		return codec.ElementValue(e), nil
	case []any:
		return codec.Value{}, common.NewError(common.RetCMalformedData, "a setting value must not be an array")
	default:
		text, _ := scalarText(v)
		return codec.TextValue(text), nil
	}
}

// elementBody converts the attributes, text and children of an element
func elementBody(e *etree.Element) any {
	children := e.ChildElements()
	text, hasText := charData(e)

	if len(e.Attr) == 0 && len(children) == 0 {
		if !hasText {
			return nil
		}
		return text
	}

	body := newObject()
	for _, a := range e.Attr {
		body.Set(attrPrefix+a.FullKey(), a.Value)
	}
	// whitespace between child elements is formatting, not content
	if hasText && (len(children) == 0 || strings.TrimSpace(text) != "") {
		body.Set(textKey, text)
	}
	for _, c := range children {
		tag := c.FullTag()
		childBody := elementBody(c)
		existing, ok := body.Get(tag)
		if !ok {
			body.Set(tag, childBody)
			continue
		}
		if arr, isArr := existing.([]any); isArr {
			body.Set(tag, append(arr, childBody))
		} else {
			body.Set(tag, []any{existing, childBody})
		}
	}
	return body
}

// toElement converts a json value into an element with the given tag
func toElement(tag string, v any) (*etree.Element, error) {
	e := etree.NewElement(tag)

	switch val := v.(type) {
	case *object:
		for _, k := range val.keys {
			child := val.values[k]
			switch {
			case strings.HasPrefix(k, attrPrefix):
				s, ok := scalarText(child)
				if !ok {
					return nil, common.NewError(common.RetCMalformedData, fmt.Sprintf("attribute %q of <%s> must be a scalar", k, tag))
				}
				e.CreateAttr(strings.TrimPrefix(k, attrPrefix), s)
			case k == textKey:
				s, ok := scalarText(child)
				if !ok {
					return nil, common.NewError(common.RetCMalformedData, fmt.Sprintf("text of <%s> must be a scalar", tag))
				}
				e.CreateText(s)
			default:
				items, isArr := child.([]any)
				if !isArr {
					items = []any{child}
				}
				for _, item := range items {
					ce, err := toElement(k, item)
					if err != nil {
						return nil, err
					}
					e.AddChild(ce)
				}
			}
		}
	case []any:
		return nil, common.NewError(common.RetCMalformedData, fmt.Sprintf("nested arrays are not allowed in <%s>", tag))
	default:
		if s, ok := scalarText(v); ok && v != nil {
			e.SetText(s)
		}
	}
	return e, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// charData concatenates all character data directly below an element
func charData(e *etree.Element) (string, bool) {
	var sb strings.Builder
	found := false
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
			found = true
		}
	}
	return sb.String(), found
}

// scalarText renders a json scalar as text. Hand edited files may contain
// numbers or booleans where strings are expected.
func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func isSpecialKey(key string) bool {
	return strings.HasPrefix(key, attrPrefix) || key == textKey
}
