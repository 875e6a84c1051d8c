// Package textpool implements a deduplicating store of byte strings addressed by
// dense uint32 ids.
//
// At build time Intern assigns ids in first-seen order; equal content always maps
// to the same id. Freeze packs the strings, in id order, into blocks of roughly
// BlockBytes raw bytes and compresses each block independently.
//
// # Layout
//
// All integers are little-endian, offsets are relative to the pool start.
//
//	PoolHeader (16 bytes): version u8, compression u8, reserved u16,
//	                       stringCount u32, blockCount u32, blocksOffset u32
//	block table: blockCount x {firstID u32, offset u32}, then a u32 sentinel
//	             holding the total size of the block data
//	padding to 8
//	blocks at blocksOffset; block i spans [offset(i), offset(i+1))
//
// A decompressed block is a run of uvarint-length-prefixed strings.
//
// # Concurrency
//
// Fetch is safe for concurrent use. Decompression and the decoded-block cache are
// guarded by one mutex per Pool, so concurrent fetches from the same pool are
// serialized for the duration of one block lookup.
package textpool
