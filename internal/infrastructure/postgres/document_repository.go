package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// Un documento vive en dos tablas: documents (cabecera con totales) y
// document_items (líneas). Los montos llegan ya derivados y redondeados; acá
// solo se persisten y se releen tal cual.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, kind, number, client_id, date, tax_percent, exchange_rate, extra_amount,
	status, payment_status, subtotal, tax_amount, total_foreign, total_local,
	created_at, updated_at`

const itemColumns = `
	id, document_id, kind, product_id, code, description, discount_percent,
	custom_description, quantity, unit_price, line_total, position, created_at`

// Create persiste cabecera y líneas. Asigna el número consecutivo del tipo de
// documento (presupuestos y ventas numeran por separado).
func (r *DocumentRepo) Create(doc *entity.Document) error {
	ctx := context.Background()

	// max+1 por tipo; seguro dentro de la tx de venta, y suficiente para
	// presupuestos (un solo emisor por vez en la práctica).
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM documents WHERE kind = $1`, doc.Kind,
	).Scan(&doc.Number)
	if err != nil {
		return fmt.Errorf("next document number: %w", err)
	}

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		doc.ID, doc.Kind, doc.Number, doc.ClientID, doc.Date,
		doc.TaxPercent, doc.ExchangeRate, doc.ExtraAmount,
		doc.Status, doc.PaymentStatus,
		doc.Subtotal, doc.TaxAmount, doc.TotalForeign, doc.TotalLocal,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return r.insertItems(ctx, doc)
}

func (r *DocumentRepo) insertItems(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO document_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for i := range doc.Items {
		it := &doc.Items[i]
		_, err := r.q.Exec(ctx, query,
			it.ID, it.DocumentID, it.Kind,
			nullableString(it.ProductID), it.Code, it.Description, it.DiscountPercent,
			it.CustomDescription, it.Quantity, it.UnitPrice, it.LineTotal,
			it.Position, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

// nullableString convierte "" en NULL para columnas con FK opcional.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// GetByID obtiene un documento con sus líneas. Devuelve nil sin error si no
// existe un documento de ese tipo con ese ID.
func (r *DocumentRepo) GetByID(kind, id string) (*entity.Document, error) {
	ctx := context.Background()
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1 AND id = $2`
	doc, err := scanDocument(r.q.QueryRow(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	items, err := r.loadItems(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

// List lista documentos de un tipo con paginación, del más nuevo al más viejo,
// cada uno con sus líneas.
func (r *DocumentRepo) List(kind string, limit, offset int) ([]*entity.Document, error) {
	ctx := context.Background()
	query := `
		SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 ORDER BY number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range list {
		items, err := r.loadItems(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Items = items
	}
	return list, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Kind, &d.Number, &d.ClientID, &d.Date,
		&d.TaxPercent, &d.ExchangeRate, &d.ExtraAmount,
		&d.Status, &d.PaymentStatus,
		&d.Subtotal, &d.TaxAmount, &d.TotalForeign, &d.TotalLocal,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) loadItems(ctx context.Context, documentID string) ([]entity.LineItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		var productID *string
		err := rows.Scan(
			&it.ID, &it.DocumentID, &it.Kind,
			&productID, &it.Code, &it.Description, &it.DiscountPercent,
			&it.CustomDescription, &it.Quantity, &it.UnitPrice, &it.LineTotal,
			&it.Position, &it.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		if productID != nil {
			it.ProductID = *productID
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update reemplaza cabecera y líneas completas. Number y created_at se
// conservan; el caller es responsable de haber recalculado los totales.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	ctx := context.Background()
	query := `
		UPDATE documents SET
			client_id = $3, date = $4, tax_percent = $5, exchange_rate = $6,
			extra_amount = $7, status = $8, payment_status = $9,
			subtotal = $10, tax_amount = $11, total_foreign = $12, total_local = $13,
			updated_at = $14
		WHERE kind = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		doc.Kind, doc.ID,
		doc.ClientID, doc.Date, doc.TaxPercent, doc.ExchangeRate,
		doc.ExtraAmount, doc.Status, doc.PaymentStatus,
		doc.Subtotal, doc.TaxAmount, doc.TotalForeign, doc.TotalLocal,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	return r.insertItems(ctx, doc)
}

// UpdateStatus cambia solo el estado del documento sin tocar montos.
func (r *DocumentRepo) UpdateStatus(kind, id, status string) error {
	query := `UPDATE documents SET status = $3, updated_at = now() WHERE kind = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, kind, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// Delete elimina un documento y sus líneas.
func (r *DocumentRepo) Delete(kind, id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, id); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM documents WHERE kind = $1 AND id = $2`, kind, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
