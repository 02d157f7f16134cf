// Package codec converts setting values between the form the host works with
// and the form they take inside a settings document. It defines a common
// interface and one implementation per serialization kind.
//
// The package focuses on:
//   - Providing a consistent interface for the three serialization kinds
//   - A format independent stored representation (Value) shared by all document backends
//   - Lossless round trips, including carriage returns and markup characters
//
// Key Components:
//
//   - IValueCodec: Core interface that all codec implementations must satisfy.
//
//   - Value: The stored representation of a setting. It is either plain text or
//     a structured subtree (an etree element). Document backends translate a
//     Value into their native nodes: the xml backend stores the subtree as a
//     literal child element, the json backend maps it onto a json object.
//
//   - textCodecImpl: Stores strings verbatim.
//
//   - xmlCodecImpl: Parses an xml fragment produced by the host's object
//     serializer into a detached subtree and renders it back on decode.
//
//   - binaryCodecImpl: Stores raw bytes as standard base64 text. Decoding
//     text that is not valid base64 fails with common.RetCMalformedData.
//
// Empty values:
//
//	Every codec encodes a nil value as explicit empty text, never as an
//	absent node, so a later read does not fall back to the default value.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	stored, err := codec.Encode(common.SerializeAsBinary, []byte{0, 255, 0})
//	// ... store the value in a document ...
//	raw, err := codec.Decode(common.SerializeAsBinary, stored)
package codec
