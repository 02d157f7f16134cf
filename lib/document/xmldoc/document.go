package xmldoc

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	"github.com/beevik/etree"
)

const (
	rootTag         = "configuration"
	userSettingsTag = "userSettings"
	roamingTag      = "Roaming"

	indentUnit = "  "
	// configuration, userSettings, branch and scope elements are indented,
	// setting elements and their content are written as they are
	skeletonDepth = 4
)

// NewFormat returns the xml document format
func NewFormat() document.Format {
	return &formatImpl{}
}

// formatImpl implements the document.Format interface for xml files
type formatImpl struct {
}

// documentImpl implements the document.IDocument interface on an xml tree:
//
//	<configuration><userSettings><Roaming><scope><name>value</name></scope></Roaming></userSettings></configuration>
type documentImpl struct {
	root *etree.Element
}

// --------------------------------------------------------------------------
// Interface Methods (docu see document.Format)
// --------------------------------------------------------------------------

func (f *formatImpl) Name() string {
	return common.FormatXML
}

func (f *formatImpl) DefaultFileName() string {
	return common.DefaultXMLFileName
}

func (f *formatImpl) New() document.IDocument {
	root := etree.NewElement(rootTag)
	root.CreateElement(userSettingsTag).CreateElement(roamingTag)
	return &documentImpl{root: root}
}

func (f *formatImpl) Parse(data []byte) (document.IDocument, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, common.WrapError(common.RetCParseError, err, "invalid xml settings document")
	}

	root := doc.Root()
	if root == nil {
		return nil, common.NewError(common.RetCParseError, "xml settings document has no root element")
	}
	if root.FullTag() != rootTag {
		return nil, common.NewError(common.RetCParseError, fmt.Sprintf("root element must be <%s>, got <%s>", rootTag, root.FullTag()))
	}

	if childElement(root, userSettingsTag) == nil {
		root.CreateElement(userSettingsTag)
	}
	return &documentImpl{root: root}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see document.IDocument)
// --------------------------------------------------------------------------

func (d *documentImpl) Lookup(branch, scope, name string) (codec.Value, bool, error) {
	e := d.find(branchTag(branch), EncodeName(scope), EncodeName(name))
	if e == nil {
		return codec.Value{}, false, nil
	}

	if children := e.ChildElements(); len(children) > 0 {
		return codec.ElementValue(children[0].Copy()), true, nil
	}
	return codec.TextValue(charData(e)), true, nil
}

func (d *documentImpl) Upsert(branch, scope, name string, value codec.Value) {
	branchElem := ensureChild(d.userSettings(), branchTag(branch))
	scopeElem := ensureChild(branchElem, EncodeName(scope))
	nameElem := ensureChild(scopeElem, EncodeName(name))

	removeChildren(nameElem)
	if value.IsElement() {
		nameElem.AddChild(value.Element.Copy())
	} else if value.Text != "" {
		nameElem.CreateText(value.Text)
	}
}

func (d *documentImpl) Branches() []string {
	var names []string
	for _, e := range d.userSettings().ChildElements() {
		if e.Tag == roamingTag {
			names = append(names, document.RoamingBranch)
		} else {
			names = append(names, DecodeName(e.Tag))
		}
	}
	return names
}

func (d *documentImpl) Scopes(branch string) []string {
	return childNames(d.find(branchTag(branch)))
}

func (d *documentImpl) Names(branch, scope string) []string {
	return childNames(d.find(branchTag(branch), EncodeName(scope)))
}

func (d *documentImpl) Marshal() ([]byte, error) {
	indent(d.root, 0)

	doc := etree.NewDocument()
	doc.WriteSettings = codec.WriteSettings()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateText("\n")
	doc.AddChild(d.root)
	doc.CreateText("\n")
	return doc.WriteToBytes()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// branchTag returns the element name of a branch
func branchTag(branch string) string {
	if branch == document.RoamingBranch {
		return roamingTag
	}
	return EncodeName(branch)
}

// userSettings returns the userSettings element, Parse and New guarantee it exists
func (d *documentImpl) userSettings() *etree.Element {
	return ensureChild(d.root, userSettingsTag)
}

// find follows a path of element names below userSettings
func (d *documentImpl) find(path ...string) *etree.Element {
	e := d.userSettings()
	for _, tag := range path {
		if e = childElement(e, tag); e == nil {
			return nil
		}
	}
	return e
}

// childElement returns the first child element with the given name
func childElement(parent *etree.Element, tag string) *etree.Element {
	for _, c := range parent.ChildElements() {
		if c.FullTag() == tag {
			return c
		}
	}
	return nil
}

// ensureChild returns the first child element with the given name, creating it if it is missing
func ensureChild(parent *etree.Element, tag string) *etree.Element {
	if c := childElement(parent, tag); c != nil {
		return c
	}
	return parent.CreateElement(tag)
}

// childNames returns the decoded names of all child elements
func childNames(e *etree.Element) []string {
	if e == nil {
		return nil
	}
	var names []string
	for _, c := range e.ChildElements() {
		names = append(names, DecodeName(c.FullTag()))
	}
	return names
}

// charData concatenates all character data directly below an element
func charData(e *etree.Element) string {
	var sb strings.Builder
	for _, tok := range e.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

func removeChildren(e *etree.Element) {
	for i := len(e.Child) - 1; i >= 0; i-- {
		e.RemoveChildAt(i)
	}
}

// indent rewrites the whitespace between the skeleton elements. The content
// of setting elements is never touched, whitespace there is part of the value.
func indent(e *etree.Element, depth int) {
	if depth >= skeletonDepth {
		return
	}

	tokens := append([]etree.Token(nil), e.Child...)
	removeChildren(e)

	hasElements := false
	for _, tok := range tokens {
		switch t := tok.(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			e.AddChild(t)
		case *etree.Element:
			e.CreateText("\n" + strings.Repeat(indentUnit, depth+1))
			e.AddChild(t)
			indent(t, depth+1)
			hasElements = true
		default:
			e.AddChild(tok)
		}
	}
	if hasElements {
		e.CreateText("\n" + strings.Repeat(indentUnit, depth))
	}
}
