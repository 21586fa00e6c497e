package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewPostgresRepository(mock)
}

func TestPostgresRepositoryGetProduct(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT product_id, title, price, image FROM products`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "title", "price", "image"}).
			AddRow("p1", "Tenis", 179.9, "shoe.jpg"))

	p, err := repo.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, Product{ID: "p1", Title: "Tenis", Price: 179.9, Image: "shoe.jpg"}, p)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetProductMissing(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT product_id, title, price, image FROM products`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetStock(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT product_id, amount FROM products`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "amount"}).AddRow("p1", 5))

	a, err := repo.GetStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, Availability{ID: "p1", Amount: 5}, a)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetStockMissing(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT product_id, amount FROM products`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetStock(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpsertProduct(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO products`).
		WithArgs("p1", "Tenis", 179.9, "shoe.jpg", 5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.UpsertProduct(context.Background(),
		Product{ID: "p1", Title: "Tenis", Price: 179.9, Image: "shoe.jpg"}, 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpsertProductError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO products`).
		WithArgs("p1", "Tenis", 179.9, "shoe.jpg", 5).
		WillReturnError(errors.New("db down"))

	err := repo.UpsertProduct(context.Background(),
		Product{ID: "p1", Title: "Tenis", Price: 179.9, Image: "shoe.jpg"}, 5)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
