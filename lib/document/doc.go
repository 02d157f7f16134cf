// Package document provides the persistent tree a settings provider reads
// and writes, independent of the file format it is stored in.
//
// Every settings file has the same logical layout:
//
//	userSettings
//	├── roaming                 settings that follow the user between machines
//	│   └── <scope group>
//	│       └── <setting name>  -> codec.Value
//	└── PC_<machine>            settings bound to a single machine
//	    └── ...
//
// Key Components:
//
//   - IDocument: The in-memory tree of one settings file. Implementations
//     live in the jsondoc and xmldoc packages.
//
//   - Format: Creates and parses documents of one file format.
//
//   - IDocumentStore: Owns the backing file. The file store created by
//     NewFileStore works on any afero.Fs, reads the whole file on Load and
//     replaces it atomically on Save.
//
// Error handling:
//
//	A missing or unreadable file is not an error: Load returns a new, empty
//	document and the next Save replaces the file. Save and Reset return
//	errors with code common.RetCIOError.
//
// Thread Safety:
//
//	Documents are not safe for concurrent use. Each read or write batch loads
//	its own document, so no document is shared between goroutines.
package document
