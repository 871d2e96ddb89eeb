package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/inventory-suite/product-catalog/internal/models"
)

const queryTimeout = 3 * time.Second

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique constraint error,
// raised by the index on LOWER(name) when a duplicate slips past concurrently.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, unit, category, brand, stock, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Image, now).Scan(&p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicateName
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, image, created_at, updated_at FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, image, created_at, updated_at FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByName(name string) (models.Product, error) {
	query := `SELECT id, name, unit, category, brand, stock, image, created_at, updated_at FROM products WHERE LOWER(name) = LOWER($1)`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update replaces all mutable fields and bumps updated_at. When the stock
// value changes it appends one audit entry in the same transaction, so the
// update and the history write commit or roll back together.
func (r *PostgresProductRepository) Update(p models.Product, actor, remark string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1 FOR UPDATE`, p.ID).Scan(&oldStock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to lock product: %w", err)
	}

	p.UpdatedAt = time.Now().UTC()
	updateQuery := `UPDATE products
		SET name = $1, unit = $2, category = $3, brand = $4, stock = $5, image = $6, updated_at = $7
		WHERE id = $8
		RETURNING created_at`
	err = tx.QueryRowContext(ctx, updateQuery,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Image, p.UpdatedAt, p.ID).Scan(&p.CreatedAt)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicateName
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	if oldStock != p.Stock {
		historyQuery := `INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date, actor, remark)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.ExecContext(ctx, historyQuery, p.ID, oldStock, p.Stock, p.UpdatedAt, actor, remark); err != nil {
			return models.Product{}, fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return p, nil
}

// Delete removes the product and all of its audit entries in one transaction.
func (r *PostgresProductRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_history WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete audit entries: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return tx.Commit()
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	pf = pf.Normalize()
	conditions, args, argIdx := catalogConditions(pf)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	direction := "ASC"
	if pf.Order == "desc" {
		direction = "DESC"
	}

	// SortColumn comes from the whitelist, never from raw input.
	query := `SELECT id, name, unit, category, brand, stock, image, created_at, updated_at FROM products WHERE 1=1`
	query += conditions
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC", pf.SortColumn(), direction)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pf.PageSize, pf.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

func catalogConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Search+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}

	return query, args, argIdx
}

func (r *PostgresProductRepository) GetHistory(productID int) ([]models.AuditEntry, error) {
	query := `SELECT id, product_id, old_quantity, new_quantity, change_date, actor, remark
		FROM inventory_history
		WHERE product_id = $1
		ORDER BY change_date DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldQuantity, &e.NewQuantity, &e.ChangedAt, &e.Actor, &e.Remark); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresProductRepository) Categories() ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
