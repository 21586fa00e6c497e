package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rocketshoes/cart-service-go/internal/cart"
	"github.com/rocketshoes/cart-service-go/internal/catalog"
	"github.com/rocketshoes/cart-service-go/internal/db"
	"github.com/rocketshoes/cart-service-go/internal/stock"
	"github.com/rocketshoes/cart-service-go/internal/store"
)

type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) Notify(ctx context.Context, message string) {
	c.messages = append(c.messages, message)
}

// Drives the cart manager against a live stock service backed by a real
// Postgres: add, absolute update, stock rejection, removal, and restart
// recovery from the persisted snapshot.
func TestCartAgainstLiveStock(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test needs docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	pgC, dsn := startPostgres(ctx, t)
	defer terminateContainer(t, pgC)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.RunMigrations(dsn, log))

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := stock.NewPostgresRepository(pool)
	stockSrv := httptest.NewServer(stock.NewRouter(stock.NewHandler(repo)))
	defer stockSrv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	seedProduct(ctx, t, client, stockSrv.URL, "p1", "Tenis de Caminhada", 179.9, 5)
	seedProduct(ctx, t, client, stockSrv.URL, "p2", "Tenis Esgotado", 139.9, 0)

	catalogClient := catalog.NewClient(stockSrv.URL, client)
	snapshots := store.NewFileStore(t.TempDir(), store.SnapshotKey)
	notifier := &captureNotifier{}

	mgr := cart.NewManager(ctx, catalogClient, snapshots, notifier, log)

	require.NoError(t, mgr.AddProduct(ctx, "p1"))
	require.NoError(t, mgr.UpdateProductAmount(ctx, "p1", 4))

	require.ErrorIs(t, mgr.UpdateProductAmount(ctx, "p1", 6), cart.ErrOutOfStock)
	require.ErrorIs(t, mgr.AddProduct(ctx, "p2"), cart.ErrOutOfStock)

	items := mgr.Items()
	require.Len(t, items, 1)
	require.Equal(t, "p1", items[0].ID)
	require.Equal(t, 4, items[0].Amount)
	require.Equal(t, 179.9, items[0].Price)
	require.Equal(t, []string{cart.MsgOutOfStock, cart.MsgOutOfStock}, notifier.messages)

	// A fresh manager over the same store sees the persisted cart.
	mgr2 := cart.NewManager(ctx, catalogClient, snapshots, notifier, log)
	require.Equal(t, items, mgr2.Items())

	require.NoError(t, mgr.RemoveProduct(ctx, "p1"))
	require.Empty(t, mgr.Items())

	mgr3 := cart.NewManager(ctx, catalogClient, snapshots, notifier, log)
	require.Empty(t, mgr3.Items())
}

func startPostgres(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "stock"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/stock?sslmode=disable", host, mappedPort.Port())
	return container, dsn
}

func terminateContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Terminate(terminateCtx))
}

func seedProduct(ctx context.Context, t *testing.T, client *http.Client, baseURL, productID, title string, price float64, amount int) {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"productId": productID,
		"title":     title,
		"price":     price,
		"image":     productID + ".jpg",
		"amount":    amount,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/stock/adjust", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
