package jsondoc

import (
	"fmt"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	"github.com/pkg/errors"
)

const userSettingsKey = "userSettings"

// NewFormat returns the json document format
func NewFormat() document.Format {
	return &formatImpl{}
}

// formatImpl implements the document.Format interface for json files
type formatImpl struct {
}

// documentImpl implements the document.IDocument interface on a json tree:
//
//	{"userSettings": {"roaming": {<scope>: {<name>: <value>}}, "PC_<machine>": {...}}}
type documentImpl struct {
	root *object
}

// --------------------------------------------------------------------------
// Interface Methods (docu see document.Format)
// --------------------------------------------------------------------------

func (f *formatImpl) Name() string {
	return common.FormatJSON
}

func (f *formatImpl) DefaultFileName() string {
	return common.DefaultJSONFileName
}

func (f *formatImpl) New() document.IDocument {
	userSettings := newObject()
	userSettings.Set(document.RoamingBranch, newObject())
	root := newObject()
	root.Set(userSettingsKey, userSettings)
	return &documentImpl{root: root}
}

func (f *formatImpl) Parse(data []byte) (document.IDocument, error) {
	v, err := unmarshal(data)
	if err != nil {
		return nil, common.WrapError(common.RetCParseError, err, "invalid json settings document")
	}

	root, ok := v.(*object)
	if !ok {
		return nil, common.NewError(common.RetCParseError, fmt.Sprintf("settings document must be a json object, got %T", v))
	}

	us, found := root.Get(userSettingsKey)
	if !found {
		root.Set(userSettingsKey, newObject())
	} else if _, ok := us.(*object); !ok {
		return nil, common.NewError(common.RetCParseError, fmt.Sprintf("%q must be a json object", userSettingsKey))
	}
	return &documentImpl{root: root}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see document.IDocument)
// --------------------------------------------------------------------------

func (d *documentImpl) Lookup(branch, scope, name string) (codec.Value, bool, error) {
	scopeObj, ok := d.scope(branch, scope)
	if !ok {
		return codec.Value{}, false, nil
	}
	raw, ok := scopeObj.Get(name)
	if !ok {
		return codec.Value{}, false, nil
	}
	v, err := fromJSON(raw)
	if err != nil {
		return codec.Value{}, true, errors.WithMessagef(err, "setting %s/%s/%s", branch, scope, name)
	}
	return v, true, nil
}

func (d *documentImpl) Upsert(branch, scope, name string, value codec.Value) {
	branchObj := childObject(d.userSettings(), branch)
	scopeObj := childObject(branchObj, scope)
	scopeObj.Set(name, toJSON(value))
}

func (d *documentImpl) Branches() []string {
	return d.userSettings().ObjectKeys()
}

func (d *documentImpl) Scopes(branch string) []string {
	branchObj, ok := d.userSettings().Object(branch)
	if !ok {
		return nil
	}
	return branchObj.ObjectKeys()
}

func (d *documentImpl) Names(branch, scope string) []string {
	scopeObj, ok := d.scope(branch, scope)
	if !ok {
		return nil
	}
	return scopeObj.Keys()
}

func (d *documentImpl) Marshal() ([]byte, error) {
	return marshalIndent(d.root)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// userSettings returns the userSettings object, Parse and New guarantee it exists
func (d *documentImpl) userSettings() *object {
	us, ok := d.root.Object(userSettingsKey)
	if !ok {
		us = newObject()
		d.root.Set(userSettingsKey, us)
	}
	return us
}

// scope returns the object of a scope group if the whole path exists
func (d *documentImpl) scope(branch, scope string) (*object, bool) {
	branchObj, ok := d.userSettings().Object(branch)
	if !ok {
		return nil, false
	}
	return branchObj.Object(scope)
}

// childObject returns the object stored under key, creating it if it is
// missing. A value that is not an object is replaced.
func childObject(parent *object, key string) *object {
	if obj, ok := parent.Object(key); ok {
		return obj
	}
	obj := newObject()
	parent.Set(key, obj)
	return obj
}
