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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository. Create abre su propia transacción; las
// lecturas usan el Querier recibido.
type DocumentRepo struct {
	q  Querier
	tx *TxRunner
}

// NewDocumentRepository construye el adaptador con el pool (Querier) y el runner de transacciones.
func NewDocumentRepository(q Querier, tx *TxRunner) *DocumentRepo {
	return &DocumentRepo{q: q, tx: tx}
}

const documentColumns = `
	id, document_type, referenced_invoice_ref_no, invoice_type, invoice_date, invoice_ref_no, scenario_id,
	seller_ntn_cnic, seller_business_name, seller_province, seller_address,
	buyer_ntn_cnic, buyer_business_name, buyer_province, buyer_address, buyer_registration_type,
	created_at, updated_at`

// Create persiste cabecera e ítems en una sola transacción.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.InvoiceDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	return r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `INSERT INTO invoice_documents (`+documentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			doc.ID, doc.DocumentType, nullIfEmpty(doc.ReferencedInvoiceRefNo), doc.InvoiceType,
			doc.InvoiceDate, doc.InvoiceRefNo, doc.ScenarioID,
			doc.SellerNTNCNIC, doc.SellerBusinessName, doc.SellerProvince, doc.SellerAddress,
			doc.BuyerNTNCNIC, doc.BuyerBusinessName, doc.BuyerProvince, doc.BuyerAddress, doc.BuyerRegistrationType,
			doc.CreatedAt, doc.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("documento %s: %w", doc.ID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert document: %w", err)
		}

		for i := range doc.Items {
			it := &doc.Items[i]
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			it.DocumentID = doc.ID
			it.LineNo = i + 1
			_, err := q.Exec(ctx, `
				INSERT INTO invoice_items (id, document_id, line_no, hs_code, product_description, rate, uom,
					quantity, total_values, value_sales_excluding_st, fixed_notified_value_or_retail_price,
					sales_tax_applicable, sales_tax_withheld_at_source, extra_tax, further_tax, sro_schedule_no,
					fed_payable, discount, sale_type, sro_item_serial_no)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
				it.ID, it.DocumentID, it.LineNo, it.HSCode, it.ProductDescription, it.Rate, it.UoM,
				it.Quantity, it.TotalValues, it.ValueSalesExcludingST, it.FixedNotifiedValueOrRetailPrice,
				it.SalesTaxApplicable, it.SalesTaxWithheldAtSource, it.ExtraTax, it.FurtherTax, it.SROScheduleNo,
				it.FEDPayable, it.Discount, it.SaleType, it.SROItemSerialNo,
			)
			if err != nil {
				return fmt.Errorf("insert item %d: %w", it.LineNo, err)
			}
		}
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceDocument, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	doc, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM invoice_documents WHERE id = $1`, id))
	if err != nil || doc == nil {
		return nil, err
	}
	if doc.Items, err = r.items(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByRefNo último documento creado con esa referencia para el vendedor.
func (r *DocumentRepo) GetByRefNo(ctx context.Context, refNo, sellerNTNCNIC string) (*entity.InvoiceDocument, error) {
	doc, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM invoice_documents
		WHERE invoice_ref_no = $1 AND seller_ntn_cnic = $2
		ORDER BY seq DESC LIMIT 1`, refNo, sellerNTNCNIC))
	if err != nil || doc == nil {
		return nil, err
	}
	if doc.Items, err = r.items(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List cabeceras del vendedor, más recientes primero (sin ítems). sellerNTNCNIC vacío lista todos.
func (r *DocumentRepo) List(ctx context.Context, sellerNTNCNIC string) ([]*entity.InvoiceDocument, error) {
	rows, err := r.q.Query(ctx, `SELECT `+documentColumns+` FROM invoice_documents
		WHERE ($1 = '' OR seller_ntn_cnic = $1)
		ORDER BY seq DESC`, sellerNTNCNIC)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete elimina cabecera e ítems de un documento sin intentos, en una sola transacción. La FK de
// submission_attempts impide además borrar un documento que reciba un intento en paralelo.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
	}
	return r.tx.Run(ctx, func(q Querier) error {
		var exists, hasAttempts bool
		err := q.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM invoice_documents WHERE id = $1),
			       EXISTS (SELECT 1 FROM submission_attempts WHERE document_id = $1)`, id,
		).Scan(&exists, &hasAttempts)
		if err != nil {
			return fmt.Errorf("check document: %w", err)
		}
		if !exists {
			return fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
		}
		if hasAttempts {
			return fmt.Errorf("documento %s: %w", id, domain.ErrNotDraft)
		}
		if _, err := q.Exec(ctx, `DELETE FROM invoice_items WHERE document_id = $1`, id); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM invoice_documents WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
}

func scanDocument(row pgx.Row) (*entity.InvoiceDocument, error) {
	var d entity.InvoiceDocument
	var referenced *string
	err := row.Scan(
		&d.ID, &d.DocumentType, &referenced, &d.InvoiceType, &d.InvoiceDate, &d.InvoiceRefNo, &d.ScenarioID,
		&d.SellerNTNCNIC, &d.SellerBusinessName, &d.SellerProvince, &d.SellerAddress,
		&d.BuyerNTNCNIC, &d.BuyerBusinessName, &d.BuyerProvince, &d.BuyerAddress, &d.BuyerRegistrationType,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	d.ReferencedInvoiceRefNo = derefStr(referenced)
	return &d, nil
}

func (r *DocumentRepo) items(ctx context.Context, documentID string) ([]entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, line_no, hs_code, product_description, rate, uom,
			quantity, total_values, value_sales_excluding_st, fixed_notified_value_or_retail_price,
			sales_tax_applicable, sales_tax_withheld_at_source, extra_tax, further_tax, sro_schedule_no,
			fed_payable, discount, sale_type, sro_item_serial_no
		FROM invoice_items WHERE document_id = $1 ORDER BY line_no`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.LineNo, &it.HSCode, &it.ProductDescription, &it.Rate, &it.UoM,
			&it.Quantity, &it.TotalValues, &it.ValueSalesExcludingST, &it.FixedNotifiedValueOrRetailPrice,
			&it.SalesTaxApplicable, &it.SalesTaxWithheldAtSource, &it.ExtraTax, &it.FurtherTax, &it.SROScheduleNo,
			&it.FEDPayable, &it.Discount, &it.SaleType, &it.SROItemSerialNo,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
