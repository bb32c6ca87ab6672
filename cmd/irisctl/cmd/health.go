package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Consulta GET /health de la API IRIS",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := infrairis.NewClient(infrairis.ConfigFrom(cfg.IRIS), log)
		if !client.CheckHealth(cmd.Context()) {
			return errors.New("IRIS no disponible en " + cfg.IRIS.BaseURL)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok", cfg.IRIS.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
