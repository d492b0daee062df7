package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
// Necesita el pool (no un Querier genérico) porque Create abre su propia
// transacción para guardar cabecera y líneas como un solo documento.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create persiste cabecera y líneas en una transacción: o queda la factura
// completa o no queda nada. El descuento de stock queda por fuera a propósito
// (ver GenerateInvoiceUseCase).
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, items []*entity.InvoiceItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO invoices (id, client_id, client_name, client_identification, date,
			salesperson_id, salesperson_email, sub_total, taxes, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := tx.Exec(ctx, headerQuery,
		invoice.ID, invoice.ClientID, invoice.ClientName, invoice.ClientIdentification,
		invoice.Date, invoice.SalespersonID, invoice.SalespersonEmail,
		invoice.SubTotal, invoice.Taxes, invoice.Total, invoice.Status, invoice.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, line_number, product_id, name, price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.InvoiceID, item.LineNumber, item.ProductID, item.Name,
			item.Price, item.Quantity, item.Subtotal,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, client_id, client_name, client_identification, date,
		       salesperson_id, salesperson_email, sub_total, taxes, total, status, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.ClientID, &inv.ClientName, &inv.ClientIdentification, &inv.Date,
		&inv.SalespersonID, &inv.SalespersonEmail, &inv.SubTotal, &inv.Taxes,
		&inv.Total, &inv.Status, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura ordenadas por su
// número de línea (el orden en que entraron al carrito).
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, line_number, product_id, name, price, quantity, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_number`
	rows, err := r.pool.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.LineNumber, &it.ProductID, &it.Name,
			&it.Price, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByDateDesc lista facturas de la más reciente a la más antigua.
func (r *InvoiceRepo) ListByDateDesc(limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, client_id, client_name, client_identification, date,
		       salesperson_id, salesperson_email, sub_total, taxes, total, status, created_at
		FROM invoices ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.ClientName, &inv.ClientIdentification,
			&inv.Date, &inv.SalespersonID, &inv.SalespersonEmail, &inv.SubTotal,
			&inv.Taxes, &inv.Total, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Count devuelve el total de facturas emitidas (para el consecutivo de presentación).
func (r *InvoiceRepo) Count() (int, error) {
	var total int
	err := r.pool.QueryRow(context.Background(), `SELECT count(*) FROM invoices`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return total, nil
}
