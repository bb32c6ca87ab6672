package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
)

var submitCmd = &cobra.Command{
	Use:   "submit [request.json]",
	Short: "Envía un documento IRIS (JSON del payload) e imprime cada intento",
	Long: `Lee un payload de envío IRIS (campos camelCase, tal como se envía a
POST /invoices/submit) y ejecuta un ciclo de envío con la política configurada
(IRIS_REQUEST_TIMEOUT_MS, IRIS_TIMEOUT_RETRY_COUNT, IRIS_RETRY_DELAY_MS).

No registra intentos en el ledger del portal.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("leer %s: %w", args[0], err)
	}
	var req infrairis.SubmitInvoiceRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("payload inválido: %w", err)
	}

	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")

	client := infrairis.NewClient(infrairis.ConfigFrom(cfg.IRIS), log)
	res := client.Submit(cmd.Context(), req, func(r *infrairis.AttemptResult) {
		_ = out.Encode(r)
	})
	if !res.Success {
		return fmt.Errorf("envío fallido tras %d intento(s): %s", res.AttemptNumber, res.Error.Message)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(submitCmd)
}
