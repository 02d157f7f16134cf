// Package testing provides a conformance test suite for implementations of
// the document.Format and document.IDocument interfaces.
//
// Every file format must behave identically for the settings provider:
// absent values are reported as not found, values survive a marshal and
// parse unchanged (including carriage returns, markup characters and empty
// text) and updating one setting never touches its siblings.
//
// Example usage:
//
//	func Test(t *testing.T) {
//		doctesting.RunDocumentTests(t, "MyFormat", NewFormat())
//	}
package testing
