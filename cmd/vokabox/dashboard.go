package main

import (
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the supervisor dashboard as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		learnerID, _ := cmd.Flags().GetInt64("learner")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if learnerID > 0 {
			row, err := a.dashboard.Learner(cmd.Context(), learnerID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), row)
		}

		overview, err := a.dashboard.Overview(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), overview)
	},
}

func init() {
	dashboardCmd.Flags().Int64("learner", 0, "Show a single learner's row")
}
