package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Iris-api/internal/application/ledger"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/infrastructure/memory"
	"github.com/jhoicas/Iris-api/pkg/iris"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const seller = "1234567"

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc  *ledger.Service
	docs *memory.DocumentRepo
}

func newFixture() *fixture {
	store := memory.NewStore()
	docs := memory.NewDocumentRepository(store)
	return &fixture{
		svc:  ledger.NewService(docs, memory.NewAttemptRepository(store)),
		docs: docs,
	}
}

func (f *fixture) attempt(t *testing.T, docID, refNo, docType, outcome string, at time.Time) {
	t.Helper()
	require.NoError(t, f.svc.SaveAttempt(context.Background(), &entity.AttemptEntry{
		DocumentID:    docID,
		InvoiceRefNo:  refNo,
		SellerNTNCNIC: seller,
		DocumentType:  docType,
		Timestamp:     at,
		Outcome:       outcome,
		DiagnosticID:  "DIAG-" + refNo + "-" + outcome,
	}))
}

func (f *fixture) document(t *testing.T, refNo, docType string) *entity.InvoiceDocument {
	t.Helper()
	doc := &entity.InvoiceDocument{InvoiceRefNo: refNo, DocumentType: docType, SellerNTNCNIC: seller}
	require.NoError(t, f.docs.Create(context.Background(), doc))
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestIsRefNoUsed_SinIntentos(t *testing.T) {
	f := newFixture()
	usage, err := f.svc.IsRefNoUsed(context.Background(), "INV-1", seller)
	require.NoError(t, err)
	assert.False(t, usage.Used)
	assert.Empty(t, usage.Status)

	reason, err := f.svc.CheckRefNo(context.Background(), "INV-1", seller)
	require.NoError(t, err)
	assert.Empty(t, reason, "una referencia nueva no se bloquea")
}

// SUCCESS 09:00, VALIDATION 10:00, TIMEOUT 11:00: el estado es el del último intento.
func TestIsRefNoUsed_UltimoIntentoDecide(t *testing.T) {
	f := newFixture()
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeValidationError, t0.Add(time.Hour))
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0.Add(2*time.Hour))

	usage, err := f.svc.IsRefNoUsed(context.Background(), "INV-1", seller)
	require.NoError(t, err)
	assert.True(t, usage.Used)
	assert.Equal(t, entity.DocumentStatusUnknown, usage.Status)

	reason, _ := f.svc.CheckRefNo(context.Background(), "INV-1", seller)
	assert.Contains(t, reason, "unknown submission status")
}

func TestGetAttemptsByRefNo_MasRecientesPrimero(t *testing.T) {
	f := newFixture()
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0.Add(time.Hour))
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeValidationError, t0)
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0.Add(time.Hour))
	f.attempt(t, "d2", "INV-2", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)

	got, err := f.svc.GetAttemptsByRefNo(context.Background(), "INV-1", seller)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entity.OutcomeSuccess, got[0].Outcome, "empate de timestamp: gana el último insertado")
	assert.Equal(t, entity.OutcomeTimeout, got[1].Outcome)
	assert.Equal(t, entity.OutcomeValidationError, got[2].Outcome)
}

func TestCheckRefNo_BloqueaSuccessPermiteFailed(t *testing.T) {
	f := newFixture()
	f.attempt(t, "d1", "INV-OK", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, "d2", "INV-BAD", iris.DocumentTypeSaleInvoice, entity.OutcomeValidationError, t0)

	reason, err := f.svc.CheckRefNo(context.Background(), "INV-OK", seller)
	require.NoError(t, err)
	assert.Contains(t, reason, "already been successfully submitted")

	reason, err = f.svc.CheckRefNo(context.Background(), "INV-BAD", seller)
	require.NoError(t, err)
	assert.Empty(t, reason, "una referencia rechazada puede reutilizarse")

	reason, _ = f.svc.CheckRefNo(context.Background(), "INV-OK", "7654321")
	assert.Empty(t, reason, "las referencias son por vendedor")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas débito/crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestIsReferencedInvoiceValid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.attempt(t, "d1", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, "d2", "INV-2", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0)
	f.attempt(t, "d3", "DN-1", iris.DocumentTypeDebitNote, entity.OutcomeSuccess, t0)

	check, err := f.svc.IsReferencedInvoiceValid(ctx, "INV-1", seller)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Reason)

	check, _ = f.svc.IsReferencedInvoiceValid(ctx, "INV-404", seller)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "not found")

	check, _ = f.svc.IsReferencedInvoiceValid(ctx, "INV-2", seller)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "current: UNKNOWN")

	check, _ = f.svc.IsReferencedInvoiceValid(ctx, "DN-1", seller)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "not a Sale Invoice")
}

func TestIsReferencedInvoiceValid_TipoDesdeDocumento(t *testing.T) {
	f := newFixture()
	doc := f.document(t, "CN-1", iris.DocumentTypeCreditNote)
	f.attempt(t, doc.ID, "CN-1", "", entity.OutcomeSuccess, t0)

	check, err := f.svc.IsReferencedInvoiceValid(context.Background(), "CN-1", seller)
	require.NoError(t, err)
	assert.False(t, check.Valid, "sin tipo en el intento se consulta el documento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencia de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggestNextRefNo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	last, next, ok, err := f.svc.SuggestNextRefNo(ctx, seller)
	require.NoError(t, err)
	assert.False(t, ok, "sin envíos aceptados no hay sugerencia")
	assert.Empty(t, last)
	assert.Empty(t, next)

	f.attempt(t, "d1", "INV-2024-009", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, "d2", "INV-2024-050", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0.Add(time.Hour))

	last, next, ok, err = f.svc.SuggestNextRefNo(ctx, seller)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "INV-2024-009", last, "solo cuentan los intentos SUCCESS")
	assert.Equal(t, "INV-2024-010", next)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas: documentos, filtros y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDocument_ConHistorial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.document(t, "INV-1", iris.DocumentTypeSaleInvoice)
	f.attempt(t, doc.ID, "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0)
	f.attempt(t, doc.ID, "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0.Add(time.Minute))

	view, err := f.svc.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, entity.DocumentStatusSuccess, view.Status)
	require.Len(t, view.Attempts, 2)
	assert.Equal(t, entity.OutcomeSuccess, view.Attempts[0].Outcome, "más recientes primero")
	assert.Equal(t, entity.OutcomeSuccess, view.LastAttempt.Outcome)

	missing, err := f.svc.GetDocument(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListDocuments_DraftSinIntentos(t *testing.T) {
	f := newFixture()
	f.document(t, "INV-1", iris.DocumentTypeSaleInvoice)

	views, err := f.svc.ListDocuments(context.Background(), seller)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, entity.DocumentStatusDraft, views[0].Status)
	assert.Nil(t, views[0].LastAttempt)
}

func TestFilterAttempts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.attempt(t, "d1", "INV-ABC", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, "d2", "INV-XYZ", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0.Add(time.Minute))
	f.attempt(t, "d2", "INV-XYZ", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0.Add(2*time.Minute))

	got, err := f.svc.FilterAttempts(ctx, seller, "xyz", "")
	require.NoError(t, err)
	assert.Len(t, got, 2, "búsqueda sin distinguir mayúsculas")

	got, _ = f.svc.FilterAttempts(ctx, seller, "", entity.OutcomeSuccess)
	assert.Len(t, got, 2)

	got, _ = f.svc.FilterAttempts(ctx, seller, "INV-XYZ", entity.OutcomeTimeout)
	require.Len(t, got, 1)

	got, _ = f.svc.FilterAttempts(ctx, seller, "DIAG-INV-ABC", "")
	assert.Len(t, got, 1, "también busca por diagnosticId")
}

func TestSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ok := f.document(t, "INV-1", iris.DocumentTypeSaleInvoice)
	bad := f.document(t, "INV-2", iris.DocumentTypeSaleInvoice)
	f.document(t, "INV-3", iris.DocumentTypeSaleInvoice)
	f.attempt(t, ok.ID, "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeSuccess, t0)
	f.attempt(t, bad.ID, "INV-2", iris.DocumentTypeSaleInvoice, entity.OutcomeAuthError, t0.Add(time.Minute))

	sum, err := f.svc.Summary(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalDocuments)
	assert.Equal(t, 1, sum.ByStatus[entity.DocumentStatusSuccess])
	assert.Equal(t, 1, sum.ByStatus[entity.DocumentStatusFailed])
	assert.Equal(t, 1, sum.ByStatus[entity.DocumentStatusDraft])
	assert.Equal(t, 2, sum.TotalAttempts)
	assert.Equal(t, "INV-1", sum.LastSuccessfulRefNo)
	assert.Equal(t, "INV-2", sum.SuggestedRefNo)
	require.Len(t, sum.RecentAttempts, 2)
	assert.Equal(t, "INV-2", sum.RecentAttempts[0].InvoiceRefNo)

	dto := ledger.SummaryToResponse(sum)
	assert.Equal(t, 1, dto.Draft)
	assert.Equal(t, 1, dto.Failed)
}

func TestSummary_LimitaRecientes(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		f.attempt(t, "d", "INV-1", iris.DocumentTypeSaleInvoice, entity.OutcomeTimeout, t0.Add(time.Duration(i)*time.Minute))
	}
	sum, err := f.svc.Summary(context.Background(), seller)
	require.NoError(t, err)
	assert.Equal(t, 15, sum.TotalAttempts)
	assert.Len(t, sum.RecentAttempts, 10)
}
