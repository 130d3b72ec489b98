package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/store"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Inspect the points audit trail",
}

var pointsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent points changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		run, _ := cmd.Flags().GetString("run")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryPointsEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query points: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No points recorded yet.")
			return nil
		}

		fmt.Fprintf(w, "%-19s  %-8s  %7s  %7s  %s\n", "Timestamp", "Run", "Delta", "Balance", "Reason")
		fmt.Fprintln(w, strings.Repeat("─", 68))
		for _, e := range events {
			if run != "" && !strings.HasPrefix(e.RunID, run) {
				continue
			}
			fmt.Fprintf(w, "%-19s  %-8s  %+7d  %7d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.RunID, 8),
				e.Delta,
				e.Balance,
				e.Reason,
			)
		}
		return nil
	},
}

func init() {
	pointsHistoryCmd.Flags().IntP("limit", "n", 50, "Number of events to show")
	pointsHistoryCmd.Flags().String("run", "", "Only show events from runs whose id starts with this prefix")

	pointsCmd.AddCommand(pointsHistoryCmd)
}
