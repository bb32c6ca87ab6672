package submission

import (
	"context"

	infrairis "github.com/jhoicas/Iris-api/internal/infrastructure/iris"
)

// Verificar en tiempo de compilación que el cliente HTTP implementa el puerto.
var _ Submitter = (*infrairis.Client)(nil)

// Submitter puerto de envío a IRIS. Submit no devuelve error: todo fallo viene clasificado en
// el AttemptResult.
type Submitter interface {
	Submit(ctx context.Context, req infrairis.SubmitInvoiceRequest, onAttempt func(*infrairis.AttemptResult)) *infrairis.AttemptResult
	Endpoint() string
}
