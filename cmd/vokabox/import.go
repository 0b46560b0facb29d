package main

import (
	"github.com/spf13/cobra"
	"github.com/vytor/vokabox/internal/models"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import vocabulary from a .csv, .xlsx or .xlsm file",
	Long: "Import vocabulary rows (prompt, accepted answers, idiom flag, lesson day). " +
		"Existing prompts are updated in place.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.importer.Import(cmd.Context(), args[0], models.ImportOptions{Sheet: sheet})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	importCmd.Flags().String("sheet", "", "Worksheet to read from spreadsheet files (default: first sheet)")
}
