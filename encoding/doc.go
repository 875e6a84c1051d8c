// Package encoding provides the per-block value codecs of featidx sparse maps and
// the length-prefixed byte string format of text pool blocks.
//
// A block is the unit of independent decode: a sparse map groups consecutive
// values into blocks of a fixed number of entries and encodes each block with a
// BlockCodec. A lookup decodes exactly one block, so random access costs
// O(block size) instead of O(section size).
//
// # Built-in Codecs
//
//   - UvarintBlockCodec: every value as an absolute unsigned varint (default).
//   - DeltaBlockCodec: first value absolute, the rest as zigzag varint deltas
//     from the previous value. Smaller for slowly growing offsets, but no
//     shipped table uses it yet.
//
// The codec identity is recorded in the map header (format.BlockEncoding), so a
// loader supplying a different codec is rejected instead of decoding garbage.
//
// # Custom Codecs
//
// Any type implementing BlockCodec[T] can be plugged into sparse.NewBuilder and
// sparse.Load. The metadata package uses this to store (field, string id) lists.
//
// # Thread Safety
//
// The built-in codecs are stateless values and safe for concurrent use.
package encoding
