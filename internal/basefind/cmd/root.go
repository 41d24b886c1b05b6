package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"basefind/internal/analysis"
	blog "basefind/internal/basefind/log"
	"basefind/internal/logging"
	"basefind/internal/report"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "basefind [file]",
		Short: "Recover the load address of a raw firmware image",
		Long: `Basefind guesses the base address of a flat firmware dump.
Every aligned 32-bit word is taken as a pointer and every null-terminated
printable run as a string. Each page-aligned base address is scored by how
many pointers land on a string once the image is loaded there.`,
		Example: `
# Search with the default parameters
basefind firmware.bin

# Big-endian image, finer step, eight workers
basefind -b --step 0x1000 -t 8 firmware.bin

# Machine readable output
basefind --json firmware.bin
  `,
		Args:          cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			blog.Setup(debug)
		},
		RunE: runSearch,
	}

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	addImageFlags(rootCmd)
	addAddressFlag(rootCmd, "ceiling", "", analysis.DefaultSearchCeiling, "Exclusive upper bound of candidate base addresses")
	addAddressFlag(rootCmd, "step", "s", analysis.DefaultSearchStep, "Distance between candidate base addresses")
	rootCmd.Flags().IntP("top", "n", analysis.DefaultTopK, "Number of candidates to report")
	rootCmd.Flags().IntP("workers", "t", 1, "Goroutines used for the search")
	rootCmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")

	rootCmd.AddCommand(newStringsCmd(), newScoreCmd(), newSchemaCmd())
	return rootCmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	memprofile, _ := cmd.Flags().GetString("memprofile")
	if memprofile != "" {
		defer func() {
			f, err := os.Create(memprofile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
				return
			}
			defer f.Close()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
			}
		}()
	}

	cfg := configFromFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := args[0]
	buf, err := loadImage(cmd, path)
	if err != nil {
		return err
	}
	defer buf.Close()

	lg := newLogger(cmd)
	defer lg.Close()
	lg.Debug("Loaded image", "file", path, "mapped", buf.Mapped(), "config", fmt.Sprintf("%+v", cfg))

	res, err := analysis.NewSession(buf, cfg).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	r := report.New(cmd.OutOrStdout(), lg.Logger, stylesFor(cmd))
	r.Stats(path, res.Stats)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return r.JSON(path, cfg, res)
	}
	return r.Candidates(res.Candidates)
}

// newLogger returns the report logger, at debug level when --debug is set.
func newLogger(cmd *cobra.Command) *logging.LoggerCloser {
	lg := logging.NewLogger()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		lg.SetLevel(log.DebugLevel)
	}
	return lg
}

func Execute() {
	rootCmd := newRootCmd()

	// Bypass fang's styled output when stdout is piped
	if !term.IsTerminal(os.Stdout.Fd()) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			stop()
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
