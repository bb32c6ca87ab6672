package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Iris-api/pkg/iris"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [ref-no]",
	Short: "Sugiere la referencia siguiente a la indicada",
	Example: `  irisctl suggest INV-2024-009   # INV-2024-010
  irisctl suggest INV-99          # INV-100`,
	Args: cobra.ExactArgs(1),
	// Cálculo local: no necesita configuración.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		next, ok := iris.SuggestNextRefNo(args[0])
		if !ok {
			return fmt.Errorf("sin sugerencia para %q: no termina en dígitos", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
