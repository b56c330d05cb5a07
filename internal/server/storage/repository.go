package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
)

// Common errors returned by the repository
var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownProduct  = errors.New("order references an unknown product")
	ErrTotalMismatch   = errors.New("order total does not match item prices")
)

type RepoInterface interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateOrder(ctx context.Context, snapshot domain.OrderSnapshot) (*domain.OrderResult, error)
	Close() error
	RunMigrations(migrationsPath string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, category, image, description, price
		FROM products
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, title, category, image, description, price
		FROM products
		WHERE id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query product: %w", err)
		}
		return nil, ErrProductNotFound
	}

	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateOrder validates the snapshot against current catalog prices
// and persists the order with its items in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, snapshot domain.OrderSnapshot) (*domain.OrderResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total float64
	type line struct {
		id    string
		title string
		price float64
	}
	lines := make([]line, 0, len(snapshot.Items))

	for _, id := range snapshot.Items {
		var l line
		var price sql.NullFloat64
		err := tx.QueryRowContext(ctx,
			`SELECT id, title, price FROM products WHERE id = ?`, id,
		).Scan(&l.id, &l.title, &price)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownProduct
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load order item: %w", err)
		}
		if !price.Valid {
			return nil, ErrUnknownProduct
		}
		l.price = price.Float64
		total += l.price
		lines = append(lines, l)
	}

	if math.Abs(total-snapshot.Total) > 1e-9 {
		return nil, ErrTotalMismatch
	}

	orderID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, payment, address, email, phone, total) VALUES (?, ?, ?, ?, ?, ?)`,
		orderID, snapshot.Payment, snapshot.Address, snapshot.Email, snapshot.Phone, total,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, title, price) VALUES (?, ?, ?, ?)`,
			orderID, l.id, l.title, l.price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &domain.OrderResult{ID: orderID, Total: total}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var p domain.Product
	var price sql.NullFloat64
	err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Image, &p.Description, &price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	return p, nil
}
