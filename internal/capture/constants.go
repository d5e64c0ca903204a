package capture

// Change detection constants
const (
	// QuickHashBytes is how much of the encoded capture the md5
	// quick-check hashes.
	QuickHashBytes = 4096

	// MaxHashDistance is the perceptual-hash Hamming distance at or
	// below which two frames count as unchanged. Kept tight: a
	// regression tool must not discard small real diffs.
	MaxHashDistance = 1
)
