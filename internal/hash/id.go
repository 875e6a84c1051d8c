// Package hash provides the 64-bit content hash used to deduplicate pooled strings.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumString computes the xxHash64 of s without copying it.
func SumString(s string) uint64 {
	return xxhash.Sum64String(s)
}
