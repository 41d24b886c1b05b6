package analysis

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when search parameters cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable analysis parameters.
type Config struct {
	MinStringLength int    `json:"minStringLength" jsonschema:"title=Minimum String Length,description=Shortest null-terminated printable run treated as a string,minimum=1,default=6"`
	SearchCeiling   uint32 `json:"searchCeiling" jsonschema:"title=Search Ceiling,description=Exclusive upper bound of candidate base addresses,default=4294901760"`
	SearchStep      uint32 `json:"searchStep" jsonschema:"title=Search Step,description=Distance between candidate base addresses,minimum=1,default=65536"`
	TopK            int    `json:"topK" jsonschema:"title=Top K,description=Number of candidates reported,minimum=1,default=5"`
	BigEndian       bool   `json:"bigEndian" jsonschema:"title=Big Endian,description=Decode words as big-endian instead of little-endian"`
	Workers         int    `json:"workers" jsonschema:"title=Workers,description=Goroutines used for the search (1 runs sequentially),minimum=1,default=1"`
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		MinStringLength: DefaultMinStringLength,
		SearchCeiling:   DefaultSearchCeiling,
		SearchStep:      DefaultSearchStep,
		TopK:            DefaultTopK,
		Workers:         1,
	}
}

// Validate checks that the search can run with c.
func (c Config) Validate() error {
	switch {
	case c.SearchStep == 0:
		return fmt.Errorf("%w: search step must be positive", ErrInvalidConfig)
	case c.SearchCeiling == 0:
		return fmt.Errorf("%w: search ceiling must be positive", ErrInvalidConfig)
	case c.TopK <= 0:
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidConfig, c.TopK)
	case c.MinStringLength < 0:
		return fmt.Errorf("%w: minimum string length must not be negative, got %d", ErrInvalidConfig, c.MinStringLength)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// ByteOrder returns the word decoding order selected by c.
func (c Config) ByteOrder() binary.ByteOrder {
	if c.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Candidates returns how many base addresses the search will test.
func (c Config) Candidates() uint64 {
	if c.SearchStep == 0 {
		return 0
	}
	return (uint64(c.SearchCeiling) + uint64(c.SearchStep) - 1) / uint64(c.SearchStep)
}
