package jsondoc

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	doctesting "github.com/ValentinKolb/pSettings/lib/document/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	doctesting.RunDocumentTests(t, "JSON", NewFormat())
}

func TestFileShape(t *testing.T) {
	doc := NewFormat().New()
	doc.Upsert(document.RoamingBranch, "MySettings", "Count", codec.TextValue("42"))

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{
  "userSettings": {
    "roaming": {
      "MySettings": {
        "Count": "42"
      }
    }
  }
}
`, string(data))
}

func TestMarkupIsNotEscaped(t *testing.T) {
	doc := NewFormat().New()
	doc.Upsert(document.RoamingBranch, "S", "Html", codec.TextValue("<b>&</b>"))

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Html": "<b>&</b>"`)
}

func TestStructuredMapping(t *testing.T) {
	e, err := codec.ParseFragment(`<Person id="7"><Name>John</Name><Tag>a</Tag><Tag>b</Tag><Empty/></Person>`)
	require.NoError(t, err)

	doc := NewFormat().New()
	doc.Upsert(document.RoamingBranch, "S", "Owner", codec.ElementValue(e))

	data, err := doc.Marshal()
	require.NoError(t, err)

	parsed, err := unmarshal(data)
	require.NoError(t, err)
	compact, err := marshal(parsed)
	require.NoError(t, err)
	assert.Equal(t,
		`{"userSettings":{"roaming":{"S":{"Owner":{"Person":{"@id":"7","Name":"John","Tag":["a","b"],"Empty":null}}}}}}`,
		string(compact))
}

func TestStructuredMappingNormalizesOrder(t *testing.T) {
	for fragment, want := range map[string]string{
		`<a>x<b/>y</a>`:               `<a>xy<b/></a>`,
		`<r><a/><b/><a/></r>`:         `<r><a/><a/><b/></r>`,
		`<r><a>1</a>t<a>2</a></r>`:    `<r>t<a>1</a><a>2</a></r>`,
		`<r><a/><b>1</b><b>2</b></r>`: `<r><a/><b>1</b><b>2</b></r>`,
	} {
		e, err := codec.ParseFragment(fragment)
		require.NoError(t, err)

		doc := NewFormat().New()
		doc.Upsert(document.RoamingBranch, "S", "Value", codec.ElementValue(e))
		data, err := doc.Marshal()
		require.NoError(t, err)

		parsed, err := NewFormat().Parse(data)
		require.NoError(t, err)
		v, found, err := parsed.Lookup(document.RoamingBranch, "S", "Value")
		require.NoError(t, err)
		require.True(t, found)
		require.True(t, v.IsElement())

		got, err := codec.RenderElement(v.Element)
		require.NoError(t, err)
		assert.Equal(t, want, got, "fragment %s", fragment)
	}
}

func TestHandEditedValues(t *testing.T) {
	doc, err := NewFormat().Parse([]byte(`{
		"userSettings": {
			"roaming": {
				"S": {
					"Number": 42,
					"Bool": true,
					"Null": null,
					"Array": [1, 2],
					"TwoRoots": {"A": "1", "B": "2"},
					"Element": {"Point": {"@x": 1, "#text": "p"}}
				}
			}
		}
	}`))
	require.NoError(t, err)

	for name, expected := range map[string]string{"Number": "42", "Bool": "true", "Null": ""} {
		v, found, err := doc.Lookup(document.RoamingBranch, "S", name)
		require.NoError(t, err, name)
		require.True(t, found, name)
		assert.Equal(t, expected, v.Text, name)
	}

	for _, name := range []string{"Array", "TwoRoots"} {
		_, found, err := doc.Lookup(document.RoamingBranch, "S", name)
		assert.True(t, found, name)
		assert.True(t, errors.Is(err, common.ErrMalformedData), "%s: %v", name, err)
	}

	v, found, err := doc.Lookup(document.RoamingBranch, "S", "Element")
	require.NoError(t, err)
	require.True(t, found)
	rendered, err := codec.RenderElement(v.Element)
	require.NoError(t, err)
	assert.Equal(t, `<Point x="1">p</Point>`, rendered)
}

func TestParse(t *testing.T) {
	f := NewFormat()

	t.Run("MissingUserSettings", func(t *testing.T) {
		doc, err := f.Parse([]byte(`{"other": 1}`))
		require.NoError(t, err)
		doc.Upsert(document.RoamingBranch, "S", "N", codec.TextValue("v"))

		data, err := doc.Marshal()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"other": 1`)
		assert.Contains(t, string(data), `"N": "v"`)
	})

	for name, data := range map[string]string{
		"ArrayRoot":            `[1, 2]`,
		"StringRoot":           `"settings"`,
		"UserSettingsNoObject": `{"userSettings": 5}`,
		"TrailingData":         `{} {}`,
		"Truncated":            `{"userSettings": {`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.Parse([]byte(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrParse), "%v", err)
		})
	}

	t.Run("KeyOrder", func(t *testing.T) {
		doc, err := f.Parse([]byte(`{"userSettings": {"PC_B": {}, "roaming": {"Z": {}, "A": {}}}}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"PC_B", document.RoamingBranch}, doc.Branches())
		assert.Equal(t, []string{"Z", "A"}, doc.Scopes(document.RoamingBranch))
	})
}

func TestUpsertReplacesNonObjects(t *testing.T) {
	doc, err := NewFormat().Parse([]byte(`{"userSettings": {"roaming": "garbage"}}`))
	require.NoError(t, err)

	doc.Upsert(document.RoamingBranch, "S", "N", codec.TextValue("v"))
	v, found, err := doc.Lookup(document.RoamingBranch, "S", "N")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v", v.Text)
}
