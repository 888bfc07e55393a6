package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/togramago/melodygen/internal/services"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse stored melodies",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent melodies, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			format, _ := cmd.Flags().GetString("format")

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, entries)
			}
			for _, e := range entries {
				partial := ""
				if e.PartialBars > 0 {
					partial = fmt.Sprintf("  %d partial", e.PartialBars)
				}
				fmt.Fprintf(w, "%s  %s  %-10s %s  %d bars  seed %d%s\n",
					e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Key, e.TimeSignature, e.Bars, e.Seed, partial)
			}
			return nil
		},
	}
	list.Flags().IntP("limit", "l", 20, "Maximum number of entries (1-100)")
	list.Flags().StringP("format", "f", formatText, "Output format: text or json")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored melody",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			if err := checkMelodyFormat(format); err != nil {
				return err
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			resp, err := services.Respond(entry.Melody, entry.ID)
			if err != nil {
				return err
			}
			return writeMelody(cmd.OutOrStdout(), resp, format, out)
		},
	}
	show.Flags().StringP("format", "f", formatText, "Output format: text, json or midi")
	show.Flags().StringP("out", "o", "", "Write MIDI to this file instead of stdout")

	cmd.AddCommand(list, show)
	return cmd
}
