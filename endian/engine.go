// Package endian provides the byte order used by featidx section layouts.
//
// Every section is written little-endian regardless of the host. Loaders read
// fixed-width fields straight out of the (usually memory-mapped) image through
// an EndianEngine, so no decode pass is needed to make an image queryable.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Engines are stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// Builders use the append half to grow pooled buffers without temporaries,
// loaders use the ByteOrder half to read fields in place.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Section returns the engine used for every on-disk section.
func Section() EndianEngine {
	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian,
// i.e. whether section fields match the in-memory representation.
func IsNativeLittleEndian() bool {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	return b[0] == 0x00
}
