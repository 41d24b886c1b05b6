package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"basefind/internal/image"
)

// Session runs the analysis pipeline over one image.
type Session struct {
	buf *image.Buffer
	cfg Config

	Pointers *PointerTable
	Strings  *StringTable
}

// NewSession returns a Session over buf. The session does not take ownership
// of a mapped buffer; the caller closes it.
func NewSession(buf *image.Buffer, cfg Config) *Session {
	return &Session{buf: buf, cfg: cfg}
}

// Config returns the parameters the session runs with.
func (s *Session) Config() Config { return s.cfg }

// Run builds the pointer and string tables and searches for the base address.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	data := s.buf.Bytes()
	stats := Stats{
		FileSize:         s.buf.FileSize,
		BufferSize:       len(data),
		CandidatesTested: s.cfg.Candidates(),
	}

	start := time.Now()
	s.Pointers = ExtractPointers(data, s.cfg.ByteOrder())
	stats.PointerExtraction = time.Since(start)
	stats.Pointers = s.Pointers.Len()
	stats.Words = s.Pointers.Total()
	slog.Debug("Extracted pointers", "distinct", stats.Pointers, "words", stats.Words, "elapsed", stats.PointerExtraction)

	start = time.Now()
	s.Strings = ExtractStrings(data, s.cfg.MinStringLength)
	stats.StringExtraction = time.Since(start)
	stats.Strings = s.Strings.Len()
	slog.Debug("Extracted strings", "count", stats.Strings, "min_length", s.cfg.MinStringLength, "elapsed", stats.StringExtraction)

	start = time.Now()
	candidates, err := Search(ctx, s.Pointers, s.Strings, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	stats.SearchDuration = time.Since(start)
	slog.Debug("Search complete", "candidates", stats.CandidatesTested, "workers", s.cfg.Workers, "elapsed", stats.SearchDuration)

	return &Result{Stats: stats, Candidates: candidates}, nil
}
