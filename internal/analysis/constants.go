// Package analysis recovers the base address of a raw firmware image by
// correlating aligned 32-bit words with the file offsets of C strings.
package analysis

// Default analysis parameters
const (
	// DefaultMinStringLength is the shortest printable run kept as a string
	DefaultMinStringLength = 6

	// DefaultSearchCeiling is the exclusive upper bound of candidate base addresses
	DefaultSearchCeiling uint32 = 0xFFFF0000

	// DefaultSearchStep is the distance between two candidate base addresses
	DefaultSearchStep uint32 = 0x10000

	// DefaultTopK is the number of candidates kept by the search
	DefaultTopK = 5

	// WordSize is the width of a candidate pointer in bytes
	WordSize = 4
)
