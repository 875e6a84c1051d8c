// Package section defines the fixed-layout headers and alignment rules shared by
// every featidx on-disk section.
//
// A section is a self-describing, self-offsetting byte range. It always begins
// with a fixed-size header whose first byte is the format version; all offsets in
// a header are relative to the section start (the header itself is at offset 0).
// Sub-regions start at 8-byte aligned offsets, the padding bytes are zero and
// are included in the recorded offsets.
//
// # Layouts
//
// OffsetHeader (12 bytes):
//
//	Bytes  | Field       | Type
//	-------|-------------|-------
//	0      | Version     | uint8
//	1-3    | Reserved    | [3]byte
//	4-7    | IndexOffset | uint32
//	8-11   | IndexSize   | uint32
//
// MetadataHeader (20 bytes):
//
//	Bytes  | Field             | Type
//	-------|-------------------|-------
//	0      | Version           | uint8
//	1-3    | Reserved          | [3]byte
//	4-7    | StringsOffset     | uint32
//	8-11   | StringsSize       | uint32
//	12-15  | MetadataMapOffset | uint32
//	16-19  | MetadataMapSize   | uint32
//
// MapHeader (32 bytes) opens a blocked sparse map body:
//
//	Bytes  | Field              | Type
//	-------|--------------------|-------
//	0      | Version            | uint8
//	1      | Encoding           | uint8
//	2-3    | Reserved           | uint16
//	4-7    | BlockSize          | uint32
//	8-11   | KeyCount           | uint32
//	12-15  | BlockCount         | uint32
//	16-19  | KeysOffset         | uint32
//	20-23  | BlockOffsetsOffset | uint32
//	24-27  | BlocksOffset       | uint32
//	28-31  | BlocksSize         | uint32
//
// PoolHeader (16 bytes) opens a text pool body:
//
//	Bytes  | Field        | Type
//	-------|--------------|-------
//	0      | Version      | uint8
//	1      | Compression  | uint8
//	2-3    | Reserved     | uint16
//	4-7    | StringCount  | uint32
//	8-11   | BlockCount   | uint32
//	12-15  | BlocksOffset | uint32
//
// All multi-byte fields are little-endian.
//
// # Writing
//
// Builders never seek. They encode the body into a buffer first, fill in the
// header with the final offsets and sizes, and then emit header, padding and body
// in order. Because every header has a fixed size, the offsets are known before
// the first body byte reaches the sink.
//
// # Thread Safety
//
// Header values are plain structs. Parsing reads from an immutable image and is
// safe for concurrent use.
package section
