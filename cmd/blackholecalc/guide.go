package main

import (
	_ "embed"

	"github.com/spf13/cobra"
)

//go:embed templates/guide.txt
var guideText string

// NewGuideCmd creates the guide command.
func NewGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Print the user guide with formulas and references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(guideText))
			return err
		},
	}
}
