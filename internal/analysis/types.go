package analysis

import "time"

// Candidate is a base address guess and the number of pointer occurrences
// that land on a string when the image is loaded there.
type Candidate struct {
	Address uint32 `json:"address"`
	Matches uint64 `json:"matches"`
}

// PointerEntry is one distinct word value and how often it occurs.
type PointerEntry struct {
	Value uint32
	Count uint32
}

// StringEntry is a null-terminated printable run and its file offset.
type StringEntry struct {
	Offset uint32
	Text   []byte
}

// Stats summarizes one analysis run.
type Stats struct {
	FileSize          int64         `json:"file_size"`
	BufferSize        int           `json:"buffer_size"`
	Pointers          int           `json:"pointers"`
	Words             uint64        `json:"words"`
	Strings           int           `json:"strings"`
	CandidatesTested  uint64        `json:"candidates_tested"`
	PointerExtraction time.Duration `json:"pointer_extraction_ns"`
	StringExtraction  time.Duration `json:"string_extraction_ns"`
	SearchDuration    time.Duration `json:"search_ns"`
}

// Result is the outcome of Session.Run.
type Result struct {
	Stats      Stats       `json:"stats"`
	Candidates []Candidate `json:"candidates"`
}
