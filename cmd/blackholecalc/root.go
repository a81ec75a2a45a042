package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bhlog "github.com/nao1215/blackholecalc/internal/log"
)

// envPrefix is prepended to flag names to form environment variables,
// e.g. BLACKHOLECALC_MASS or BLACKHOLECALC_ANGULAR_MOMENTUM.
const envPrefix = "BLACKHOLECALC"

// NewRootCmd creates the root command for blackholecalc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blackholecalc",
		Short: "Closed-form black hole physics calculator",
		Long: `blackholecalc evaluates analytic properties of the four stationary black hole
solutions of general relativity: Schwarzschild, Kerr, Reissner-Nordström and
Kerr-Newman.

It reports horizons, innermost stable circular orbits, ergosphere extent,
gravitational redshift, effective potentials, Hawking thermodynamics and a
toy inspiral-merger-ringdown waveform. Runs are saved as JSON directories and
indexed in a local history database.

Every flag can also be set through an environment variable prefixed with
BLACKHOLECALC_, e.g. BLACKHOLECALC_MASS=4.3e6.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON lines on stderr")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewSweepCmd())
	cmd.AddCommand(NewChirpCmd())
	cmd.AddCommand(NewPotentialCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewGuideCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newViper binds the command's flags and BLACKHOLECALC_* environment
// variables. Flags set on the command line win over the environment.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the process logger and installs it as the default.
// Logs go to stderr so report output on stdout stays machine-readable.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getVerboseFlag(cmd)
	logger := bhlog.NewLogger(cmd.ErrOrStderr(), verbose)
	if jsonLogs, err := cmd.Flags().GetBool("log-json"); err == nil && jsonLogs {
		logger = bhlog.NewJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	slog.SetDefault(logger)
	return logger
}
