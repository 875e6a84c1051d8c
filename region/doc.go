// Package region stores the auxiliary indexes of one map region in a single
// file and opens them from a read-only memory mapping.
//
// A region file is a 16-byte header, a section directory and the section bodies:
//
//	magic "FIDX" | version u8 | reserved [3]byte | sectionCount u32 | reserved u32
//	sectionCount x {name [16]byte | offset u64 | size u64}
//	section bodies, each starting at a multiple of 8 bytes
//
// Every section is optional. Open loads the well-known sections concurrently; a
// section that is missing or fails to load is logged and its accessor returns
// nil, while the rest of the region stays usable.
package region
