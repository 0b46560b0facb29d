package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/vokabox/internal/models"
)

var learnersCmd = &cobra.Command{
	Use:   "learners",
	Short: "Manage learner accounts",
}

var learnersAddCmd = &cobra.Command{
	Use:   "add USERNAME",
	Short: "Create a learner, or update the names of an existing one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		class, _ := cmd.Flags().GetString("class")
		admin, _ := cmd.Flags().GetBool("admin")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		learner, err := a.learners.CreateLearner(cmd.Context(), models.Learner{
			Username:    args[0],
			DisplayName: name,
			ClassName:   class,
		})
		if err != nil {
			return err
		}
		if admin {
			if err := a.learners.SetAdmin(cmd.Context(), learner.ID, true); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "learner %q has id %d\n", learner.Username, learner.ID)
		return nil
	},
}

var learnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		learners, err := a.learners.ListLearners(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tCLASS")
		for _, l := range learners {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.ID, l.Username, l.DisplayName, l.ClassName)
		}
		return tw.Flush()
	},
}

func init() {
	learnersAddCmd.Flags().String("name", "", "Display name (default: username)")
	learnersAddCmd.Flags().String("class", "", "Class or group name")
	learnersAddCmd.Flags().Bool("admin", false, "Grant dashboard access")

	learnersCmd.AddCommand(learnersAddCmd)
	learnersCmd.AddCommand(learnersListCmd)
}
