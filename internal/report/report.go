// Package report renders analysis results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ianlancetaylor/demangle"

	"basefind/internal/analysis"
)

// Reporter writes analysis output. Statistics go to the logger, results to out.
type Reporter struct {
	out    io.Writer
	logger *log.Logger
	styles Styles
}

// New returns a Reporter. A nil logger disables statistics output.
func New(out io.Writer, logger *log.Logger, styles Styles) *Reporter {
	return &Reporter{out: out, logger: logger, styles: styles}
}

// Stats logs the pipeline statistics.
func (r *Reporter) Stats(path string, st analysis.Stats) {
	if r.logger == nil {
		return
	}
	r.logger.Info("Read image", "file", path, "file_size", st.FileSize)
	r.logger.Info("Allocated buffer", "buffer_size", st.BufferSize)
	r.logger.Info("Located pointers", "distinct", st.Pointers, "words", st.Words, "elapsed", st.PointerExtraction)
	r.logger.Info("Located strings", "count", st.Strings, "elapsed", st.StringExtraction)
	r.logger.Info("Scanned base addresses", "candidates", st.CandidatesTested, "elapsed", st.SearchDuration)
	if st.Strings == 0 {
		r.logger.Warn("No strings found, every candidate scores zero")
	}
}

// Candidates prints the ranked candidate list, address as 8-digit hex.
func (r *Reporter) Candidates(cands []analysis.Candidate) error {
	s := r.styles
	if _, err := fmt.Fprintln(r.out, s.Header.Render("Top base address candidates:")); err != nil {
		return err
	}
	for i, c := range cands {
		matches := s.Matches
		if c.Matches == 0 {
			matches = s.Zero
		}
		line := fmt.Sprintf("%s  %s  %s",
			s.Rank.Render(fmt.Sprintf("%2d.", i+1)),
			s.Address.Render(FormatAddress(c.Address)),
			matches.Render(fmt.Sprintf("%d", c.Matches)))
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}

// StringsOptions controls Strings output.
type StringsOptions struct {
	Base     uint32 // added to every offset
	Demangle bool   // demangle Itanium C++ symbol names
}

// Strings prints one line per string: address and escaped text.
func (r *Reporter) Strings(entries []analysis.StringEntry, opts StringsOptions) error {
	s := r.styles
	for _, e := range entries {
		text := analysis.EscapeUnprintable(e.Text)
		if opts.Demangle && strings.HasPrefix(text, "_Z") {
			text = demangle.Filter(text, demangle.NoClones)
		}
		line := fmt.Sprintf("%s  %s",
			s.Offset.Render(FormatAddress(e.Offset+opts.Base)),
			s.Text.Render(text))
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonCandidate struct {
	Address string `json:"address"`
	Matches uint64 `json:"matches"`
}

type jsonReport struct {
	File       string          `json:"file"`
	Config     analysis.Config `json:"config"`
	Stats      analysis.Stats  `json:"stats"`
	Candidates []jsonCandidate `json:"candidates"`
}

// JSON writes the result as an indented JSON document.
func (r *Reporter) JSON(path string, cfg analysis.Config, res *analysis.Result) error {
	doc := jsonReport{
		File:       path,
		Config:     cfg,
		Stats:      res.Stats,
		Candidates: make([]jsonCandidate, len(res.Candidates)),
	}
	for i, c := range res.Candidates {
		doc.Candidates[i] = jsonCandidate{Address: FormatAddress(c.Address), Matches: c.Matches}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// FormatAddress renders a as 0x followed by 8 hex digits.
func FormatAddress(a uint32) string {
	return fmt.Sprintf("0x%08x", a)
}
