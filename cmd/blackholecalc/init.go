package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
)

//go:embed templates/blackholecalc.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new blackholecalc configuration file",
		Long: `Initialize creates a new .blackholecalc configuration file in the current directory.

The generated file includes:
- Default probe settings applied to every evaluation
- Presets for well-known black holes (Sgr A*, M87*, Cygnus X-1)
- Documentation for all available options

Examples:
  # Create .blackholecalc in current directory
  blackholecalc init

  # Create config file at a specific path
  blackholecalc init -o presets.yaml

  # Force overwrite existing file
  blackholecalc init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/blackholecalc.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to define presets such as:")
	fmt.Fprintln(out, "  - Mass, spin and charge of black holes you study often")
	fmt.Fprintln(out, "  - Redshift probe radius and angle")
	fmt.Fprintln(out, "  - Angular momentum for the effective potential")
	fmt.Fprintln(out, "\nThen run: blackholecalc analyze --preset sgr-a")

	return nil
}
