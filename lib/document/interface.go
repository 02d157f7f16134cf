package document

import (
	"github.com/ValentinKolb/pSettings/lib/codec"
)

// RoamingBranch is the logical name of the branch holding roaming settings.
// All other branches are machine branches named by scope.MachineBranch.
const RoamingBranch = "roaming"

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IDocument is the in-memory tree of a settings file:
//
//	userSettings -> branch -> scope group -> setting name -> value
//
// Branch, scope and setting names are always the logical names; backends
// translate them to whatever their file format requires.
// A document is owned by a single read or write batch and is not safe for
// concurrent use.
type IDocument interface {
	// Lookup returns the stored value of a setting. The boolean return value
	// indicates whether the setting exists. Absence of the branch, the scope
	// or the setting is not an error. An error with code common.RetCMalformedData
	// is returned if the stored node cannot be represented as a codec.Value.
	Lookup(branch, scope, name string) (value codec.Value, found bool, err error)
	// Upsert inserts or replaces the value of a setting, creating missing
	// intermediate nodes. Sibling branches, scopes and settings are not touched.
	Upsert(branch, scope, name string, value codec.Value)
	// Branches returns the names of all branches in document order
	Branches() []string
	// Scopes returns the names of all scope groups of a branch in document order
	Scopes(branch string) []string
	// Names returns the names of all settings of a scope group in document order
	Names(branch, scope string) []string
	// Marshal serializes the whole document into the file format
	Marshal() ([]byte, error)
}

// Format is a file format a settings document can be persisted in
type Format interface {
	// Name returns the name of the format (common.FormatJSON, common.FormatXML)
	Name() string
	// DefaultFileName returns the file name used if none is configured
	DefaultFileName() string
	// New returns an empty document containing only an empty roaming branch
	New() IDocument
	// Parse reads a document. It returns an error with code
	// common.RetCParseError if data is not a valid settings document.
	Parse(data []byte) (IDocument, error)
}

// IDocumentStore owns the backing file of a settings document
type IDocumentStore interface {
	// Load reads and parses the backing file. If the file does not exist or
	// cannot be parsed a new, empty document is returned instead.
	// Load never fails.
	Load() IDocument
	// Save overwrites the backing file with the serialized document.
	// An error with code common.RetCIOError is returned if the file cannot be written.
	Save(doc IDocument) error
	// Reset deletes the backing file. A missing file is not an error.
	Reset() error
	// Path returns the path of the backing file
	Path() string
	// Format returns the format of the backing file
	Format() Format
}
