package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/togramago/melodygen/internal/models"
)

func newCatalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "List durations, scales, roots and time signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			c := models.NewCatalogue(0)
			w := cmd.OutOrStdout()

			if format == formatJSON {
				return writeJSON(w, c)
			}

			fmt.Fprintln(w, "durations:")
			for _, d := range c.Durations {
				fmt.Fprintf(w, "  %-5s %-14s %g beats\n", d.Name, d.Label, d.Length)
			}
			fmt.Fprintln(w, "scales:")
			for _, s := range c.Scales {
				fmt.Fprintf(w, "  %-11s %v\n", s.Name, s.Intervals)
			}
			fmt.Fprintf(w, "roots: %s\n", strings.Join(c.Roots, " "))
			names := make([]string, 0, len(c.TimeSignatures))
			for _, ts := range c.TimeSignatures {
				names = append(names, ts.Name)
			}
			fmt.Fprintf(w, "time signatures: %s\n", strings.Join(names, " "))
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", formatText, "Output format: text or json")
	return cmd
}
