package cmd

import (
	"github.com/spf13/cobra"

	"basefind/internal/analysis"
	"basefind/internal/report"
)

func newStringsCmd() *cobra.Command {
	stringsCmd := &cobra.Command{
		Use:   "strings [file]",
		Short: "List the null-terminated strings used for correlation",
		Long: `List every null-terminated printable run at least --min-length bytes long,
by file offset or, with --base, by the address it would have at that base.`,
		Example: `
# Dump strings by file offset
basefind strings firmware.bin

# Show strings relocated to a recovered base, demangling C++ names
basefind strings --base 0x08000000 --demangle firmware.bin
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromFlags(cmd)
			demangle, _ := cmd.Flags().GetBool("demangle")

			buf, err := loadImage(cmd, args[0])
			if err != nil {
				return err
			}
			defer buf.Close()

			st := analysis.ExtractStrings(buf.Bytes(), cfg.MinStringLength)

			lg := newLogger(cmd)
			defer lg.Close()
			lg.Info("Located strings", "file", args[0], "count", st.Len(), "min_length", cfg.MinStringLength)

			r := report.New(cmd.OutOrStdout(), lg.Logger, stylesFor(cmd))
			return r.Strings(st.Entries(), report.StringsOptions{
				Base:     addressFlag(cmd, "base"),
				Demangle: demangle,
			})
		},
	}

	addImageFlags(stringsCmd)
	addAddressFlag(stringsCmd, "base", "", 0, "Base address added to every offset")
	stringsCmd.Flags().Bool("demangle", false, "Demangle C++ symbol names")
	return stringsCmd
}
