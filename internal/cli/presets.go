package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List named parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			set, err := opts.loadPresets()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if format == formatJSON {
				return writeJSON(w, set.List())
			}
			for _, p := range set.List() {
				fmt.Fprintf(w, "%-10s %s %s, %d bars, %d voice(s), shortest %s\n",
					p.Name, p.Params.RootNote, p.Params.ScaleType, p.Params.Bars, p.Params.Voices, p.Params.ShortestNote)
				if p.Description != "" {
					fmt.Fprintf(w, "%-10s %s\n", "", p.Description)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", formatText, "Output format: text or json")
	return cmd
}
