package stock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
	GetStock(ctx context.Context, productID string) (Availability, error)
	UpsertProduct(ctx context.Context, p Product, amount int) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (Product, error) {
	var p Product
	row := r.pool.QueryRow(ctx, `SELECT product_id, title, price, image FROM products WHERE product_id=$1`, productID)
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetStock(ctx context.Context, productID string) (Availability, error) {
	var a Availability
	row := r.pool.QueryRow(ctx, `SELECT product_id, amount FROM products WHERE product_id=$1`, productID)
	if err := row.Scan(&a.ID, &a.Amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Availability{}, ErrNotFound
		}
		return Availability{}, err
	}
	return a, nil
}

func (r *PostgresRepository) UpsertProduct(ctx context.Context, p Product, amount int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products(product_id, title, price, image, amount)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE
		SET title=EXCLUDED.title, price=EXCLUDED.price, image=EXCLUDED.image,
		    amount=EXCLUDED.amount, updated_at=now()
	`, p.ID, p.Title, p.Price, p.Image, amount)
	return err
}
