package document_test

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/pSettings/lib/codec"
	"github.com/ValentinKolb/pSettings/lib/common"
	"github.com/ValentinKolb/pSettings/lib/document"
	"github.com/ValentinKolb/pSettings/lib/document/jsondoc"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/app/settings.json"

func TestLoadMissingFile(t *testing.T) {
	store := document.NewFileStore(afero.NewMemMapFs(), testPath, jsondoc.NewFormat())

	doc := store.Load()
	assert.Equal(t, []string{document.RoamingBranch}, doc.Branches())
}

func TestLoadCorruptFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("{not json"), 0644))
	store := document.NewFileStore(fs, testPath, jsondoc.NewFormat())

	doc := store.Load()
	assert.Equal(t, []string{document.RoamingBranch}, doc.Branches())

	// the corrupt file stays until the next save
	data, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	doc.Upsert(document.RoamingBranch, "S", "N", codec.TextValue("v"))
	require.NoError(t, store.Save(doc))
	_, found, err := store.Load().Lookup(document.RoamingBranch, "S", "N")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLoadUnreadableFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	// a directory where the file is expected
	require.NoError(t, fs.MkdirAll(testPath, 0755))
	store := document.NewFileStore(fs, testPath, jsondoc.NewFormat())

	doc := store.Load()
	assert.Equal(t, []string{document.RoamingBranch}, doc.Branches())
}

func TestSaveFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	store := document.NewFileStore(afero.NewReadOnlyFs(base), testPath, jsondoc.NewFormat())

	err := store.Save(jsondoc.NewFormat().New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrIO), "%v", err)

	exists, _ := afero.Exists(base, testPath)
	assert.False(t, exists)
	exists, _ = afero.Exists(base, testPath+".tmp")
	assert.False(t, exists)
}

func TestSaveReplacesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := document.NewFileStore(fs, testPath, jsondoc.NewFormat())

	first := store.Load()
	first.Upsert(document.RoamingBranch, "S", "A", codec.TextValue("1"))
	require.NoError(t, store.Save(first))

	second := jsondoc.NewFormat().New()
	second.Upsert(document.RoamingBranch, "S", "B", codec.TextValue("2"))
	require.NoError(t, store.Save(second))

	// the file holds the complete second snapshot only
	doc := store.Load()
	assert.Equal(t, []string{"B"}, doc.Names(document.RoamingBranch, "S"))

	exists, _ := afero.Exists(fs, testPath+".tmp")
	assert.False(t, exists)
}

func TestResetMissingFile(t *testing.T) {
	store := document.NewFileStore(afero.NewMemMapFs(), testPath, jsondoc.NewFormat())
	assert.NoError(t, store.Reset())
}

func TestResetFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, testPath, []byte("{}"), 0644))
	store := document.NewFileStore(afero.NewReadOnlyFs(base), testPath, jsondoc.NewFormat())

	err := store.Reset()
	assert.True(t, errors.Is(err, common.ErrIO), "%v", err)
}
