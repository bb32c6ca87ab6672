package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/infrastructure/memory"
)

const seller = "1234567"

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentRepo_CreateAsignaIDsYLineas(t *testing.T) {
	repo := memory.NewDocumentRepository(memory.NewStore())
	doc := &entity.InvoiceDocument{
		InvoiceRefNo:  "INV-1",
		SellerNTNCNIC: seller,
		Items:         []entity.InvoiceItem{{HSCode: "a"}, {HSCode: "b"}},
	}
	require.NoError(t, repo.Create(context.Background(), doc))

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, 1, doc.Items[0].LineNo)
	assert.Equal(t, 2, doc.Items[1].LineNo)
	assert.Equal(t, doc.ID, doc.Items[1].DocumentID)

	got, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-1", got.InvoiceRefNo)

	err = repo.Create(context.Background(), &entity.InvoiceDocument{ID: doc.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDocumentRepo_NoEncontradoEsNilNil(t *testing.T) {
	repo := memory.NewDocumentRepository(memory.NewStore())
	got, err := repo.GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByRefNo(context.Background(), "INV-X", seller)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDocumentRepo_DevuelveCopias(t *testing.T) {
	repo := memory.NewDocumentRepository(memory.NewStore())
	doc := &entity.InvoiceDocument{InvoiceRefNo: "INV-1", Items: []entity.InvoiceItem{{HSCode: "a"}}}
	require.NoError(t, repo.Create(context.Background(), doc))

	doc.InvoiceRefNo = "MUTADO"
	got, _ := repo.GetByID(context.Background(), doc.ID)
	got.Items[0].HSCode = "MUTADO"

	again, _ := repo.GetByID(context.Background(), doc.ID)
	assert.Equal(t, "INV-1", again.InvoiceRefNo)
	assert.Equal(t, "a", again.Items[0].HSCode)
}

func TestDocumentRepo_GetByRefNoYListOrden(t *testing.T) {
	repo := memory.NewDocumentRepository(memory.NewStore())
	ctx := context.Background()
	first := &entity.InvoiceDocument{InvoiceRefNo: "INV-1", SellerNTNCNIC: seller}
	second := &entity.InvoiceDocument{InvoiceRefNo: "INV-1", SellerNTNCNIC: seller}
	other := &entity.InvoiceDocument{InvoiceRefNo: "INV-2", SellerNTNCNIC: "7654321"}
	for _, d := range []*entity.InvoiceDocument{first, second, other} {
		require.NoError(t, repo.Create(ctx, d))
	}

	got, err := repo.GetByRefNo(ctx, "INV-1", seller)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID, "gana el último creado")

	list, err := repo.List(ctx, seller)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "más recientes primero")

	all, _ := repo.List(ctx, "")
	assert.Len(t, all, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger de intentos
// ──────────────────────────────────────────────────────────────────────────────

func TestAttemptRepo_AppendAsignaSeqYRechazaRepetidos(t *testing.T) {
	repo := memory.NewAttemptRepository(memory.NewStore())
	ctx := context.Background()

	a := &entity.AttemptEntry{InvoiceRefNo: "INV-1", SellerNTNCNIC: seller, Timestamp: t0, Outcome: entity.OutcomeTimeout}
	b := &entity.AttemptEntry{InvoiceRefNo: "INV-1", SellerNTNCNIC: seller, Timestamp: t0, Outcome: entity.OutcomeSuccess}
	require.NoError(t, repo.Append(ctx, a))
	require.NoError(t, repo.Append(ctx, b))
	assert.NotEmpty(t, a.ID)
	assert.Less(t, a.Seq, b.Seq)

	err := repo.Append(ctx, &entity.AttemptEntry{ID: a.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el ledger es de solo inserción")

	list, _ := repo.ListByRefNo(ctx, "INV-1", seller)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID, "orden de inserción")
}

func TestAttemptRepo_ListMasRecientesPrimero(t *testing.T) {
	repo := memory.NewAttemptRepository(memory.NewStore())
	ctx := context.Background()
	for i, at := range []time.Time{t0.Add(time.Hour), t0, t0.Add(2 * time.Hour)} {
		require.NoError(t, repo.Append(ctx, &entity.AttemptEntry{
			InvoiceRefNo: "INV-" + string(rune('A'+i)), SellerNTNCNIC: seller, Timestamp: at,
		}))
	}
	require.NoError(t, repo.Append(ctx, &entity.AttemptEntry{SellerNTNCNIC: "7654321", Timestamp: t0}))

	list, err := repo.List(ctx, seller)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "INV-C", list[0].InvoiceRefNo)
	assert.Equal(t, "INV-A", list[1].InvoiceRefNo)
	assert.Equal(t, "INV-B", list[2].InvoiceRefNo)

	all, _ := repo.List(ctx, "")
	assert.Len(t, all, 4)
}

func TestAttemptRepo_LatestSuccessful(t *testing.T) {
	repo := memory.NewAttemptRepository(memory.NewStore())
	ctx := context.Background()

	got, err := repo.LatestSuccessful(ctx, seller)
	require.NoError(t, err)
	assert.Nil(t, got)

	_ = repo.Append(ctx, &entity.AttemptEntry{InvoiceRefNo: "INV-7", SellerNTNCNIC: seller, Timestamp: t0, Outcome: entity.OutcomeSuccess})
	_ = repo.Append(ctx, &entity.AttemptEntry{InvoiceRefNo: "INV-9", SellerNTNCNIC: seller, Timestamp: t0.Add(time.Hour), Outcome: entity.OutcomeSuccess})
	_ = repo.Append(ctx, &entity.AttemptEntry{InvoiceRefNo: "INV-10", SellerNTNCNIC: seller, Timestamp: t0.Add(2 * time.Hour), Outcome: entity.OutcomeTimeout})

	got, err = repo.LatestSuccessful(ctx, seller)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-9", got.InvoiceRefNo)
}

func TestAttemptRepo_Concurrente(t *testing.T) {
	repo := memory.NewAttemptRepository(memory.NewStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Append(ctx, &entity.AttemptEntry{SellerNTNCNIC: seller, Timestamp: t0})
		}()
	}
	wg.Wait()

	list, _ := repo.List(ctx, seller)
	require.Len(t, list, 50)
	seqs := map[int64]bool{}
	for _, a := range list {
		seqs[a.Seq] = true
	}
	assert.Len(t, seqs, 50, "cada intento recibe un Seq único")
}

// ──────────────────────────────────────────────────────────────────────────────
// Identidad del vendedor
// ──────────────────────────────────────────────────────────────────────────────

func TestSellerIdentityRepo(t *testing.T) {
	repo := memory.NewSellerIdentityRepository(memory.NewStore())
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := &entity.SellerIdentity{NTNCNIC: seller, BusinessName: "Acme"}
	require.NoError(t, repo.Save(ctx, s))
	s.BusinessName = "mutado"

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.BusinessName)
}
