// Package sparse implements the blocked sparse map: an append-only, immutable
// mapping from strictly increasing uint32 keys to small values, serialized as a
// single self-describing section that can be queried directly on a memory-mapped
// image.
//
// # Layout
//
// All integers are little-endian. Offsets are relative to the start of the map body.
//
//	MapHeader (32 bytes)
//	padding to 8
//	keys            KeyCount x uint32
//	padding to 8
//	block offsets   (BlockCount+1) x uint32, relative to BlocksOffset
//	padding to 8
//	blocks          BlocksSize bytes
//
// Keys are stored uncompressed in a fixed-width array so a lookup is a binary
// search over the image followed by the decode of exactly one block. Values are
// grouped into blocks of BlockSize entries, the last block possibly shorter, and
// each block is encoded independently by an encoding.BlockCodec.
//
// # Building
//
//	b, err := sparse.NewBuilder[uint32](encoding.NewUvarintBlockCodec(), sparse.WithBlockSize(64))
//	if err != nil {
//	    return err
//	}
//	b.Put(10, 100)
//	b.Put(20, 200)
//	if _, err := b.Freeze(w); err != nil {
//	    return err
//	}
//
// Put requires each key to be greater than the previous one. The requirement is
// asserted only in builds with the invariants tag.
//
// # Reading
//
//	m, err := sparse.Load[uint32](data, encoding.NewUvarintBlockCodec())
//	if err != nil {
//	    return err // treat the section as absent
//	}
//	v, ok := m.Get(10)
//
// A loaded Map holds no mutable state and is safe for any number of concurrent readers.
package sparse
