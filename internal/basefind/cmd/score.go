package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"basefind/internal/analysis"
	"basefind/internal/report"
)

func newScoreCmd() *cobra.Command {
	scoreCmd := &cobra.Command{
		Use:   "score [file] [base...]",
		Short: "Score specific base addresses",
		Long: `Score one or more base addresses against the image without running the
full search. Addresses may be hex (0x prefix) or decimal.`,
		Example: `
# Compare two guesses
basefind score firmware.bin 0x08000000 0x08004000
  `,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bases := make([]uint32, 0, len(args)-1)
			for _, s := range args[1:] {
				v, err := strconv.ParseUint(s, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid base address %q", s)
				}
				bases = append(bases, uint32(v))
			}

			cfg := configFromFlags(cmd)
			buf, err := loadImage(cmd, args[0])
			if err != nil {
				return err
			}
			defer buf.Close()

			pt := analysis.ExtractPointers(buf.Bytes(), cfg.ByteOrder())
			st := analysis.ExtractStrings(buf.Bytes(), cfg.MinStringLength)

			cands := make([]analysis.Candidate, len(bases))
			for i, base := range bases {
				cands[i] = analysis.Candidate{Address: base, Matches: analysis.Score(pt, st, base)}
			}

			lg := newLogger(cmd)
			defer lg.Close()
			r := report.New(cmd.OutOrStdout(), lg.Logger, stylesFor(cmd))
			r.Stats(args[0], analysis.Stats{
				FileSize:         buf.FileSize,
				BufferSize:       buf.Size(),
				Pointers:         pt.Len(),
				Words:            pt.Total(),
				Strings:          st.Len(),
				CandidatesTested: uint64(len(bases)),
			})
			return r.Candidates(cands)
		},
	}

	addImageFlags(scoreCmd)
	return scoreCmd
}
