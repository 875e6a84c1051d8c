// Package errs defines the sentinel errors returned by featidx packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is:
//
//	table, err := offsettable.Load(data)
//	if errors.Is(err, errs.ErrVersionMismatch) {
//	    // the section was written by an incompatible build; treat it as absent
//	}
//
// A missing key is never reported through an error. Lookups return a boolean
// "found" result instead.
package errs

import "errors"

// Load-time failures. Any of these means the whole section must be treated as absent.
var (
	// ErrVersionMismatch is returned when a persisted version tag differs from the
	// single version this build understands.
	ErrVersionMismatch = errors.New("format version mismatch")
	// ErrTruncatedSection is returned when a sub-window declared by a header does not
	// fit into the available bytes.
	ErrTruncatedSection = errors.New("truncated or corrupt section")
	// ErrInvalidHeaderSize is returned when fewer bytes than a fixed header size are available.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrCodecMismatch is returned when the block encoding recorded in a map header
	// differs from the codec supplied by the loader.
	ErrCodecMismatch = errors.New("block codec mismatch")
	// ErrUnknownCompression is returned for an unsupported compression type.
	ErrUnknownCompression = errors.New("unknown compression type")
	// ErrInvalidMagic is returned when a region file does not start with the expected magic.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrSectionNotFound is returned when a named section is absent from a region directory.
	ErrSectionNotFound = errors.New("section not found")
)

// Read-time failures.
var (
	// ErrMalformedBlock is returned when an encoded block cannot be decoded.
	ErrMalformedBlock = errors.New("malformed block")
	// ErrMalformedObject is returned when a locality object buffer cannot be decoded.
	ErrMalformedObject = errors.New("malformed locality object")
	// ErrStringNotFound is returned when a string id is outside of the text pool.
	ErrStringNotFound = errors.New("string id not found")
	// ErrRegionClosed is returned when a lazy feature is read after its region was closed.
	ErrRegionClosed = errors.New("region closed")
)

// Build-time failures.
var (
	// ErrBuilderFrozen is returned when a builder is used after Freeze.
	ErrBuilderFrozen = errors.New("builder already frozen")
	// ErrOffsetOverflow is returned when a section grows beyond the 32-bit offset range.
	ErrOffsetOverflow = errors.New("offset exceeds 32-bit range")
	// ErrInvalidBlockSize is returned for a non-positive block size option.
	ErrInvalidBlockSize = errors.New("invalid block size")
	// ErrInvalidSectionName is returned for an empty, overlong or repeated region section name.
	ErrInvalidSectionName = errors.New("invalid section name")
)
