package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/hexmaker/internal/ports/primary"
)

// HistoryCmd returns the history command. Without a subcommand it lists runs.
func HistoryCmd(s *session) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(s, cmd)
		},
	}

	historyListCmd := &cobra.Command{
		Use:   "list",
		Short: "List generation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(s, cmd)
		},
	}

	historyShowCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the files and configuration a run touched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := s.container.HistoryAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(cmd.Context(), args[0])
			return err
		},
	}

	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().StringP("kind", "k", "", "Filter by artifact kind")
		c.Flags().StringP("status", "s", "", "Filter by status (running, succeeded, failed)")
		c.Flags().IntP("limit", "l", 20, "Maximum number of runs (0 for all)")
	}

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	return historyCmd
}

func listRuns(s *session, cmd *cobra.Command) error {
	kind, _ := cmd.Flags().GetString("kind")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	adapter, err := s.container.HistoryAdapter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return adapter.List(cmd.Context(), primary.RunFilters{Kind: kind, Status: status, Limit: limit})
}
