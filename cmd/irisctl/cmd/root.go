// Package cmd comandos de irisctl: herramientas de línea de comandos contra la API IRIS
// configurada en IRIS_API_BASE_URL.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Iris-api/pkg/config"
	"github.com/jhoicas/Iris-api/pkg/logger"
)

var version = "1.0.0"

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "irisctl",
	Short: "Herramientas de línea de comandos para la API IRIS/FBR",
	Long: `irisctl consulta y envía documentos a la API IRIS usando la misma
configuración (variables de entorno o .env) y la misma política de reintentos
que el portal.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := cfg.App.LogLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		log = logger.NewWithWriter(os.Stderr, logger.Config{Env: config.EnvDevelopment, Level: level})
		return nil
	},
}

// Execute ejecuta el comando raíz; termina el proceso con código 1 ante error. SIGINT/SIGTERM
// cancelan el envío en curso.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log de cada intento en nivel debug")
}
