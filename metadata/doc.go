// Package metadata stores free-text feature metadata (opening hours, phone
// numbers, websites and so on) keyed by feature id.
//
// Values are interned into one text pool, so equal strings are stored once per
// section. A sparse map associates each feature id with its list of (field tag,
// string id) pairs.
//
// # Layout
//
//	MetadataHeader (20 bytes): version u8, reserved [3]u8,
//	                           stringsOffset u32, stringsSize u32,
//	                           metadataMapOffset u32, metadataMapSize u32
//	padding to 8
//	text pool      at stringsOffset
//	padding to 8
//	sparse map     at metadataMapOffset
//
// A feature without an entry has no metadata; that is not an error.
package metadata
