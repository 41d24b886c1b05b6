package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"basefind/internal/analysis"
	"basefind/internal/image"
	"basefind/internal/report"
)

// addressValue is a uint32 flag that accepts hex (0x...) or decimal input.
type addressValue uint32

func (a *addressValue) String() string { return fmt.Sprintf("0x%x", uint32(*a)) }

func (a *addressValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q", s)
	}
	*a = addressValue(v)
	return nil
}

func (a *addressValue) Type() string { return "address" }

func addressFlag(cmd *cobra.Command, name string) uint32 {
	if f := cmd.Flags().Lookup(name); f != nil {
		if v, ok := f.Value.(*addressValue); ok {
			return uint32(*v)
		}
	}
	return 0
}

func addAddressFlag(cmd *cobra.Command, name, shorthand string, value uint32, usage string) {
	v := addressValue(value)
	cmd.Flags().VarP(&v, name, shorthand, usage)
}

// configFromFlags builds the analysis config from the search flags.
func configFromFlags(cmd *cobra.Command) analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.MinStringLength, _ = cmd.Flags().GetInt("min-length")
	cfg.BigEndian, _ = cmd.Flags().GetBool("big-endian")
	if cmd.Flags().Lookup("ceiling") != nil {
		cfg.SearchCeiling = addressFlag(cmd, "ceiling")
		cfg.SearchStep = addressFlag(cmd, "step")
		cfg.TopK, _ = cmd.Flags().GetInt("top")
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	return cfg
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("min-length", "m", analysis.DefaultMinStringLength, "Minimum length of a null-terminated string")
	cmd.Flags().BoolP("big-endian", "b", false, "Decode words as big-endian")
	cmd.Flags().Bool("mmap", false, "Memory map the image instead of reading it")
}

// loadImage opens the image named by the first argument.
func loadImage(cmd *cobra.Command, path string) (*image.Buffer, error) {
	mapped, _ := cmd.Flags().GetBool("mmap")
	if mapped {
		return image.LoadMapped(path)
	}
	return image.Load(path)
}

// stylesFor picks colored styles only when out is a terminal.
func stylesFor(cmd *cobra.Command) report.Styles {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(f.Fd()) && !report.ColorDisabled() {
		return report.DefaultStyles()
	}
	return report.PlainStyles()
}
