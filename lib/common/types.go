package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Serialization kinds
// --------------------------------------------------------------------------

// SerializeAs declares how the value of a setting is represented on disk
type SerializeAs uint8

const (
	SerializeAsText          SerializeAs = iota // 0: plain text, stored verbatim
	SerializeAsStructuredXml                    // 1: xml fragment, stored as a native subtree
	SerializeAsBinary                           // 2: raw bytes, stored as base64 text
)

func (s SerializeAs) String() string {
	switch s {
	case SerializeAsText:
		return "Text"
	case SerializeAsStructuredXml:
		return "StructuredXml"
	case SerializeAsBinary:
		return "Binary"
	default:
		return fmt.Sprintf("SerializeAs(%d)", uint8(s))
	}
}

// ParseSerializeAs converts a (case-insensitive) kind name to a SerializeAs.
// "xml" is accepted as a short form of "StructuredXml".
func ParseSerializeAs(s string) (SerializeAs, error) {
	switch strings.ToLower(s) {
	case "text", "string":
		return SerializeAsText, nil
	case "structuredxml", "xml":
		return SerializeAsStructuredXml, nil
	case "binary":
		return SerializeAsBinary, nil
	default:
		return 0, NewError(RetCInvalidValue, fmt.Sprintf("unknown serialization kind %q", s))
	}
}

// --------------------------------------------------------------------------
// Setting metadata and values
// --------------------------------------------------------------------------

// Declaration is the metadata of a single named setting.
// It is owned by the host and never modified by the engine.
type Declaration struct {
	// Name is unique within a scope group
	Name string
	// DefaultValue is returned unmodified whenever no stored value exists
	DefaultValue string
	// SerializeAs selects the value codec
	SerializeAs SerializeAs
	// IsUserScoped settings are persisted, application scoped ones are not
	IsUserScoped bool
	// IsRoaming settings are stored in the roaming branch instead of the machine branch
	IsRoaming bool
}

// SettingValue pairs a declaration with its serialized value.
//
// SerializedValue holds a string for Text and StructuredXml settings and a
// []byte for Binary settings. A nil value is persisted as explicit empty text.
type SettingValue struct {
	Declaration
	SerializedValue   any
	IsDirty           bool
	UsingDefaultValue bool
}

// NewSettingValue returns a dirty value for the given declaration, ready to be written
func NewSettingValue(decl Declaration, serialized any) SettingValue {
	return SettingValue{
		Declaration:     decl,
		SerializedValue: serialized,
		IsDirty:         true,
	}
}

// DefaultSettingValue returns the not dirty default value of a declaration
func DefaultSettingValue(decl Declaration) SettingValue {
	return SettingValue{
		Declaration:       decl,
		SerializedValue:   decl.DefaultValue,
		UsingDefaultValue: true,
	}
}
