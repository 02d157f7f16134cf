// Package jsondoc implements the json settings document format
// (default file name settings.json):
//
//	{
//	  "userSettings": {
//	    "roaming": {
//	      "MySettings": {
//	        "Count": "42",
//	        "Owner": {"Person": {"Name": "John", "Age": "42"}}
//	      }
//	    },
//	    "PC_WORKSTATION": {...}
//	  }
//	}
//
// Text and binary settings are json strings. Structured xml settings are
// stored as json objects mirroring the element tree (attributes as "@name",
// mixed text as "#text", repeated elements as arrays), so the file holds
// native json instead of escaped xml strings.
//
// Objects keep their key order. Writing the same values twice produces the
// same file, and structured values keep the order of sibling elements.
// Unknown top-level keys of a parsed file are preserved.
package jsondoc
