package testing

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	"github.com/spf13/afero"
)

const (
	machineBranch = "PC_WORKSTATION"
	scopeA        = "MySettings"
	scopeB        = "OtherSettings"
)

// RunDocumentTests runs the conformance test suite for a document format.
func RunDocumentTests(t *testing.T, name string, format document.Format) {
	t.Run(name, func(t *testing.T) {
		t.Run("New", func(t *testing.T) {
			testNew(t, format)
		})

		t.Run("Absent", func(t *testing.T) {
			testAbsent(t, format)
		})

		t.Run("Text", func(t *testing.T) {
			testText(t, format)
		})

		t.Run("Structured", func(t *testing.T) {
			testStructured(t, format)
		})

		t.Run("SiblingIsolation", func(t *testing.T) {
			testSiblingIsolation(t, format)
		})

		t.Run("Listing", func(t *testing.T) {
			testListing(t, format)
		})

		t.Run("MarshalParse", func(t *testing.T) {
			testMarshalParse(t, format)
		})

		t.Run("Idempotence", func(t *testing.T) {
			testIdempotence(t, format)
		})

		t.Run("ParseError", func(t *testing.T) {
			testParseError(t, format)
		})

		t.Run("FileStore", func(t *testing.T) {
			testFileStore(t, format)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// textValues are stored and expected to come back unchanged
var textValues = map[string]string{
	"Empty":     "",
	"Plain":     "A new string",
	"Number":    "42",
	"CRLF":      "line1\r\nline2\r\n",
	"Markup":    "<item><name>Text</name></item>",
	"Escapes":   "ampersand & quotes \" ' and tabs\t",
	"Spaces":    "   ",
	"Base64":    "AP8A",
	"Multiline": "a\nb\nc",
}

// structuredValues are xml fragments stored as native subtrees
var structuredValues = map[string]string{
	"Person":     `<Person><Name>John</Name><LastName>Doe</LastName><Age>42</Age></Person>`,
	"Attributes": `<Person xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" id="7"><Name>&lt;noname&gt;</Name></Person>`,
	"List":       `<list><item>1</item><item>2</item><empty/></list>`,
	"CRLF":       `<note>line1&#xD;` + "\n" + `line2</note>`,
}

func mustElement(t *testing.T, fragment string) *codec.Value {
	t.Helper()
	e, err := codec.ParseFragment(fragment)
	if err != nil {
		t.Fatalf("Invalid test fragment %s: %v", fragment, err)
	}
	v := codec.ElementValue(e)
	return &v
}

func render(t *testing.T, v codec.Value) string {
	t.Helper()
	if !v.IsElement() {
		t.Fatalf("Expected a structured value, got text %q", v.Text)
	}
	s, err := codec.RenderElement(v.Element)
	if err != nil {
		t.Fatalf("Failed to render element: %v", err)
	}
	return s
}

// reparse marshals a document and parses the result
func reparse(t *testing.T, format document.Format, doc document.IDocument) document.IDocument {
	t.Helper()
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	parsed, err := format.Parse(data)
	if err != nil {
		t.Fatalf("Failed to parse marshalled document: %v\n%s", err, data)
	}
	return parsed
}

func expectText(t *testing.T, doc document.IDocument, branch, scope, name, expected string) {
	t.Helper()
	v, found, err := doc.Lookup(branch, scope, name)
	if err != nil {
		t.Errorf("Lookup of %s/%s/%s failed: %v", branch, scope, name, err)
		return
	}
	if !found {
		t.Errorf("Expected %s/%s/%s to exist", branch, scope, name)
		return
	}
	if v.IsElement() {
		t.Errorf("Expected text for %s/%s/%s, got element <%s>", branch, scope, name, v.Element.Tag)
		return
	}
	if v.Text != expected {
		t.Errorf("Expected %q for %s/%s/%s, got %q", expected, branch, scope, name, v.Text)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testNew(t *testing.T, format document.Format) {
	doc := format.New()

	branches := doc.Branches()
	if !reflect.DeepEqual(branches, []string{document.RoamingBranch}) {
		t.Errorf("Expected a new document to contain only the roaming branch, got %v", branches)
	}
	if scopes := doc.Scopes(document.RoamingBranch); len(scopes) != 0 {
		t.Errorf("Expected an empty roaming branch, got %v", scopes)
	}
	if format.DefaultFileName() == "" {
		t.Errorf("Expected a default file name")
	}
}

func testAbsent(t *testing.T, format document.Format) {
	doc := format.New()
	doc.Upsert(document.RoamingBranch, scopeA, "Existing", codec.TextValue("x"))

	cases := [][3]string{
		{machineBranch, scopeA, "Existing"},          // missing branch
		{document.RoamingBranch, scopeB, "Existing"}, // missing scope
		{document.RoamingBranch, scopeA, "Missing"},  // missing setting
	}
	for _, c := range cases {
		_, found, err := doc.Lookup(c[0], c[1], c[2])
		if err != nil {
			t.Errorf("Expected no error for absent %v, got %v", c, err)
		}
		if found {
			t.Errorf("Expected %v to be absent", c)
		}
	}

	if names := doc.Names(machineBranch, scopeA); len(names) != 0 {
		t.Errorf("Expected no names in a missing branch, got %v", names)
	}
}

func testText(t *testing.T, format document.Format) {
	doc := format.New()
	for name, value := range textValues {
		doc.Upsert(document.RoamingBranch, scopeA, name, codec.TextValue(value))
	}

	for name, value := range textValues {
		expectText(t, doc, document.RoamingBranch, scopeA, name, value)
	}

	// overwrite
	doc.Upsert(document.RoamingBranch, scopeA, "Plain", codec.TextValue("changed"))
	expectText(t, doc, document.RoamingBranch, scopeA, "Plain", "changed")

	// and after a marshal/parse cycle
	parsed := reparse(t, format, doc)
	for name, value := range textValues {
		if name == "Plain" {
			value = "changed"
		}
		expectText(t, parsed, document.RoamingBranch, scopeA, name, value)
	}
}

func testStructured(t *testing.T, format document.Format) {
	doc := format.New()
	expected := make(map[string]string)
	for name, fragment := range structuredValues {
		v := mustElement(t, fragment)
		expected[name] = render(t, *v)
		doc.Upsert(machineBranch, scopeA, name, *v)

		// the document must not keep a reference to the callers element
		v.Element.CreateElement("Mutated")
	}

	check := func(doc document.IDocument) {
		for name, exp := range expected {
			v, found, err := doc.Lookup(machineBranch, scopeA, name)
			if err != nil || !found {
				t.Errorf("Expected %s to exist, found=%t err=%v", name, found, err)
				continue
			}
			if got := render(t, v); got != exp {
				t.Errorf("Structured value %s changed:\nexpected %s\ngot      %s", name, exp, got)
			}
		}
	}

	check(doc)
	check(reparse(t, format, doc))

	// replacing a structured value with text and back
	doc.Upsert(machineBranch, scopeA, "Person", codec.TextValue("plain"))
	expectText(t, doc, machineBranch, scopeA, "Person", "plain")
	doc.Upsert(machineBranch, scopeA, "Person", *mustElement(t, structuredValues["Person"]))
	check(doc)
}

func testSiblingIsolation(t *testing.T, format document.Format) {
	doc := format.New()
	doc.Upsert(document.RoamingBranch, scopeA, "One", codec.TextValue("1"))
	doc.Upsert(document.RoamingBranch, scopeA, "Two", codec.TextValue("2"))
	doc.Upsert(document.RoamingBranch, scopeB, "One", codec.TextValue("b1"))
	doc.Upsert(machineBranch, scopeA, "One", codec.TextValue("m1"))

	doc = reparse(t, format, doc)
	doc.Upsert(document.RoamingBranch, scopeA, "One", codec.TextValue("changed"))

	expectText(t, doc, document.RoamingBranch, scopeA, "One", "changed")
	expectText(t, doc, document.RoamingBranch, scopeA, "Two", "2")
	expectText(t, doc, document.RoamingBranch, scopeB, "One", "b1")
	expectText(t, doc, machineBranch, scopeA, "One", "m1")
}

func testListing(t *testing.T, format document.Format) {
	doc := format.New()
	doc.Upsert(document.RoamingBranch, scopeA, "First", codec.TextValue("1"))
	doc.Upsert(document.RoamingBranch, scopeA, "Second", codec.TextValue("2"))
	doc.Upsert(document.RoamingBranch, scopeB, "First", codec.TextValue("3"))
	doc.Upsert(machineBranch, "Scope With Spaces", "Name_x0041_", codec.TextValue("4"))

	check := func(doc document.IDocument) {
		if got := doc.Branches(); !reflect.DeepEqual(got, []string{document.RoamingBranch, machineBranch}) {
			t.Errorf("Unexpected branches %v", got)
		}
		if got := doc.Scopes(document.RoamingBranch); !reflect.DeepEqual(got, []string{scopeA, scopeB}) {
			t.Errorf("Unexpected scopes %v", got)
		}
		if got := doc.Names(document.RoamingBranch, scopeA); !reflect.DeepEqual(got, []string{"First", "Second"}) {
			t.Errorf("Unexpected names %v", got)
		}
		if got := doc.Scopes(machineBranch); !reflect.DeepEqual(got, []string{"Scope With Spaces"}) {
			t.Errorf("Unexpected machine scopes %v", got)
		}
		if got := doc.Names(machineBranch, "Scope With Spaces"); !reflect.DeepEqual(got, []string{"Name_x0041_"}) {
			t.Errorf("Unexpected machine names %v", got)
		}
		expectText(t, doc, machineBranch, "Scope With Spaces", "Name_x0041_", "4")
	}

	check(doc)
	check(reparse(t, format, doc))
}

func testMarshalParse(t *testing.T, format document.Format) {
	doc := format.New()
	doc.Upsert(document.RoamingBranch, scopeA, "Count", codec.TextValue("42"))
	doc.Upsert(machineBranch, scopeA, "Window", codec.TextValue("10,10,800,600"))
	doc.Upsert(machineBranch, scopeB, "Owner", *mustElement(t, structuredValues["Person"]))

	parsed := reparse(t, format, doc)
	expectText(t, parsed, document.RoamingBranch, scopeA, "Count", "42")
	expectText(t, parsed, machineBranch, scopeA, "Window", "10,10,800,600")

	v, found, err := parsed.Lookup(machineBranch, scopeB, "Owner")
	if err != nil || !found {
		t.Fatalf("Expected Owner to exist, found=%t err=%v", found, err)
	}
	if got, exp := render(t, v), render(t, *mustElement(t, structuredValues["Person"])); got != exp {
		t.Errorf("Expected %s, got %s", exp, got)
	}
}

func testIdempotence(t *testing.T, format document.Format) {
	doc := format.New()
	for name, value := range textValues {
		doc.Upsert(document.RoamingBranch, scopeA, name, codec.TextValue(value))
	}
	for name, fragment := range structuredValues {
		doc.Upsert(machineBranch, scopeB, name, *mustElement(t, fragment))
	}

	first, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	parsed, err := format.Parse(first)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	second, err := parsed.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal parsed document: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("Marshal is not stable across a parse:\n%s\n---\n%s", first, second)
	}
}

func testParseError(t *testing.T, format document.Format) {
	for _, data := range []string{"", "not a document", "<<<{{{"} {
		_, err := format.Parse([]byte(data))
		if err == nil {
			t.Errorf("Expected a parse error for %q", data)
			continue
		}
		if !errors.Is(err, common.ErrParse) {
			t.Errorf("Expected a parse error for %q, got %v", data, err)
		}
	}
}

func testFileStore(t *testing.T, format document.Format) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/settings", "nested", format.DefaultFileName())
	store := document.NewFileStore(fs, path, format)

	if store.Path() != path {
		t.Errorf("Expected path %s, got %s", path, store.Path())
	}
	if store.Format() != format {
		t.Errorf("Expected the store to report its format")
	}

	// a missing file yields a new document
	doc := store.Load()
	if got := doc.Branches(); !reflect.DeepEqual(got, []string{document.RoamingBranch}) {
		t.Errorf("Expected a new document, got branches %v", got)
	}

	doc.Upsert(document.RoamingBranch, scopeA, "Count", codec.TextValue("42"))
	if err := store.Save(doc); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	expectText(t, store.Load(), document.RoamingBranch, scopeA, "Count", "42")

	if exists, _ := afero.Exists(fs, path+".tmp"); exists {
		t.Errorf("Expected the temporary file to be gone after a save")
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if exists, _ := afero.Exists(fs, path); exists {
		t.Errorf("Expected the settings file to be deleted")
	}
	if _, found, _ := store.Load().Lookup(document.RoamingBranch, scopeA, "Count"); found {
		t.Errorf("Expected no value after a reset")
	}

	// resetting twice is fine
	if err := store.Reset(); err != nil {
		t.Errorf("Expected reset of a missing file to succeed, got %v", err)
	}
}
