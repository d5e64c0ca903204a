// Package codec implements block delta compression of raw screenshot
// buffers against their immediate predecessor.
package codec

// Codec wire-format constants. The stream must stay parseable by the
// remote service's decoder, so none of these may change without a
// version bump.
const (
	// BlockSize is the fixed comparison granularity in bytes. 4096 is a
	// whole number of RGBA pixels and amortizes the one-byte per-block
	// marker overhead while staying small enough to isolate localized
	// UI diffs.
	BlockSize = 4096

	// Version identifies the stream layout.
	Version = 1

	markerSkip    = 0x00
	markerLiteral = 0x01

	headerSize = 18 // magic + version + block size + width + height + bpp
)

// magic identifies an Argus delta stream.
var magic = [4]byte{'A', 'V', 'D', '1'}
