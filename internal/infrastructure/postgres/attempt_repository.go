package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Iris-api/internal/domain"
	"github.com/jhoicas/Iris-api/internal/domain/entity"
	"github.com/jhoicas/Iris-api/internal/domain/repository"
)

var _ repository.AttemptRepository = (*AttemptRepo)(nil)

// AttemptRepo ledger de intentos sobre submission_attempts. Solo INSERT y SELECT.
type AttemptRepo struct {
	q Querier
}

// NewAttemptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttemptRepository(q Querier) *AttemptRepo {
	return &AttemptRepo{q: q}
}

const attemptColumns = `
	id, seq, document_id, invoice_ref_no, seller_ntn_cnic, document_type, attempt_number, attempted_at,
	endpoint, outcome, diagnostic_id, http_status, duration_ms, response_summary, error_details`

// Append inserta el intento; seq lo asigna la base de datos.
func (r *AttemptRepo) Append(ctx context.Context, a *entity.AttemptEntry) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO submission_attempts (id, document_id, invoice_ref_no, seller_ntn_cnic, document_type,
			attempt_number, attempted_at, endpoint, outcome, diagnostic_id, http_status, duration_ms,
			response_summary, error_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING seq`,
		a.ID, a.DocumentID, a.InvoiceRefNo, a.SellerNTNCNIC, a.DocumentType,
		a.AttemptNumber, a.Timestamp, a.Endpoint, a.Outcome, a.DiagnosticID, a.HTTPStatus, a.DurationMs,
		nullIfEmpty(a.ResponseSummary), nullIfEmpty(a.ErrorDetails),
	).Scan(&a.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("intento %s: %w", a.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// ListByDocument intentos del documento en orden de inserción.
func (r *AttemptRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.AttemptEntry, error) {
	return r.list(ctx, `SELECT `+attemptColumns+` FROM submission_attempts
		WHERE document_id = $1 ORDER BY seq`, documentID)
}

// ListByRefNo intentos de la referencia para el vendedor, en orden de inserción.
func (r *AttemptRepo) ListByRefNo(ctx context.Context, refNo, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	return r.list(ctx, `SELECT `+attemptColumns+` FROM submission_attempts
		WHERE invoice_ref_no = $1 AND seller_ntn_cnic = $2 ORDER BY seq`, refNo, sellerNTNCNIC)
}

// List intentos del vendedor, más recientes primero. sellerNTNCNIC vacío lista todos.
func (r *AttemptRepo) List(ctx context.Context, sellerNTNCNIC string) ([]*entity.AttemptEntry, error) {
	return r.list(ctx, `SELECT `+attemptColumns+` FROM submission_attempts
		WHERE ($1 = '' OR seller_ntn_cnic = $1)
		ORDER BY attempted_at DESC, seq DESC`, sellerNTNCNIC)
}

// LatestSuccessful último SUCCESS del vendedor, o (nil, nil).
func (r *AttemptRepo) LatestSuccessful(ctx context.Context, sellerNTNCNIC string) (*entity.AttemptEntry, error) {
	a, err := scanAttempt(r.q.QueryRow(ctx, `SELECT `+attemptColumns+` FROM submission_attempts
		WHERE seller_ntn_cnic = $1 AND outcome = $2
		ORDER BY attempted_at DESC, seq DESC LIMIT 1`, sellerNTNCNIC, entity.OutcomeSuccess))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AttemptRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AttemptEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.AttemptEntry, 0)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// scanAttempt devuelve pgx.ErrNoRows sin envolver para que el llamador lo distinga.
func scanAttempt(row pgx.Row) (*entity.AttemptEntry, error) {
	var a entity.AttemptEntry
	var summary, details *string
	err := row.Scan(
		&a.ID, &a.Seq, &a.DocumentID, &a.InvoiceRefNo, &a.SellerNTNCNIC, &a.DocumentType, &a.AttemptNumber,
		&a.Timestamp, &a.Endpoint, &a.Outcome, &a.DiagnosticID, &a.HTTPStatus, &a.DurationMs,
		&summary, &details,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan attempt: %w", err)
	}
	a.ResponseSummary = derefStr(summary)
	a.ErrorDetails = derefStr(details)
	return &a, nil
}
