package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/domain/repository"
)

// Listings with no explicit lower bound cover everything since this date.
var defaultMinListingDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// pgxPool is the subset of pgxpool.Pool the storage relies on. Tests swap in
// a pgxmock pool through the same interface.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type invoiceRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name VARCHAR(30) NOT NULL,
            purity DOUBLE PRECISION NOT NULL,
            type TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
            price BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id SERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL REFERENCES products(id),
            type TEXT NOT NULL,
            state TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            price BIGINT NOT NULL,
            zipcode TEXT NOT NULL DEFAULT '',
            shipping_address TEXT NOT NULL DEFAULT '',
            shipping_address_detail TEXT NOT NULL DEFAULT '',
            shipping_name TEXT NOT NULL DEFAULT '',
            shipping_phone TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_user ON invoices(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, purity, type, amount, price, created_at, updated_at`

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Purity, &p.Type, &p.Amount, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Purity, &p.Type, &p.Amount, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Seed(ctx context.Context, products []model.Product) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO products (name, purity, type, amount, price) VALUES ($1, $2, $3, $4, $5)`
		for _, p := range products {
			if _, err := tx.Exec(ctx, insert, p.Name, p.Purity, p.Type, p.Amount, p.Price); err != nil {
				return fmt.Errorf("seed product: %w", err)
			}
		}
		return nil
	})
}

// --- InvoiceRepository implementation ---

const invoiceColumns = `id, order_number, user_id, product_id, type, state, amount, price,
       zipcode, shipping_address, shipping_address_detail, shipping_name, shipping_phone,
       created_at, updated_at`

func scanInvoice(row pgx.Row, inv *model.Invoice) error {
	return row.Scan(
		&inv.ID, &inv.OrderNumber, &inv.UserID, &inv.ProductID, &inv.Type, &inv.State,
		&inv.Amount, &inv.Price,
		&inv.Shipping.Zipcode, &inv.Shipping.Address, &inv.Shipping.AddressDetail,
		&inv.Shipping.RecipientName, &inv.Shipping.PhoneNumber,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
}

// CreateWithReservation decrements stock and records the invoice in a single
// transaction. The conditional UPDATE re-checks remaining stock under the row
// lock, so two concurrent orders can never both consume the same gold.
func (r *invoiceRepository) CreateWithReservation(ctx context.Context, invoice *model.Invoice) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const reserve = `UPDATE products SET amount = amount - $2, updated_at = NOW()
                         WHERE id = $1 AND amount >= $2`
		tag, err := tx.Exec(ctx, reserve, invoice.ProductID, invoice.Amount)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, invoice.ProductID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrProductNotFound
			}
			return domainErrors.ErrInsufficientStock
		}

		const insert = `INSERT INTO invoices (order_number, user_id, product_id, type, state, amount, price)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)
                        RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, insert,
			invoice.OrderNumber, invoice.UserID, invoice.ProductID,
			invoice.Type, invoice.State, invoice.Amount, invoice.Price,
		).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrOrderNumberConflict
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		return nil
	})
}

func (r *invoiceRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_number=$1`
	var inv model.Invoice
	if err := scanInvoice(r.storage.pool.QueryRow(ctx, query, orderNumber), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListByUser returns non-draft invoices of the user matching the filter along
// with the total match count before slicing.
func (r *invoiceRepository) ListByUser(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
	minDate := filter.MinDate
	if minDate.IsZero() {
		minDate = defaultMinListingDate
	}
	maxDate := filter.MaxDate
	if maxDate.IsZero() {
		maxDate = time.Now()
	}

	conditions := []string{"user_id=$1", "state <> $2", "created_at BETWEEN $3 AND $4"}
	args := []any{userID, model.InvoiceStateDraft, minDate, maxDate}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("type=$%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM invoices WHERE ` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where + ` ORDER BY created_at DESC`
	if filter.Limit != nil {
		args = append(args, *filter.Limit)
		listQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset != nil {
		args = append(args, *filter.Offset)
		listQuery += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.OrderNumber, &inv.UserID, &inv.ProductID, &inv.Type, &inv.State,
			&inv.Amount, &inv.Price,
			&inv.Shipping.Zipcode, &inv.Shipping.Address, &inv.Shipping.AddressDetail,
			&inv.Shipping.RecipientName, &inv.Shipping.PhoneNumber,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *invoiceRepository) UpdateShipping(ctx context.Context, orderNumber string, shipping model.ShippingDetail, state model.InvoiceState) error {
	const query = `UPDATE invoices
                   SET shipping_address=$2, shipping_address_detail=$3, shipping_name=$4,
                       shipping_phone=$5, zipcode=$6, state=$7, updated_at=NOW()
                   WHERE order_number=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderNumber,
		shipping.Address, shipping.AddressDetail, shipping.RecipientName,
		shipping.PhoneNumber, shipping.Zipcode, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) UpdateState(ctx context.Context, orderNumber string, state model.InvoiceState) error {
	const query = `UPDATE invoices SET state=$2, updated_at=NOW() WHERE order_number=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderNumber, state)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvoiceNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
