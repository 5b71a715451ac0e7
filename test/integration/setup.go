package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"smartmart/internal/database"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool with the decimal codec registered, matching
	// the production pool setup
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply the application schema
	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts test products and a live 10% discount linked to the
// first product.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool, discountID string) {
	t.Helper()

	ctx := context.Background()
	now := time.Now()

	_, err := pool.Exec(ctx, `
		INSERT INTO discounts (id, name, percentage, product_barcode, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		discountID, "Ten Percent Off", decimal.NewFromInt(10), "BAR001",
		now.Add(-time.Hour), now.Add(24*time.Hour), "Active", now,
	)
	if err != nil {
		t.Fatalf("failed to seed discount: %v", err)
	}

	products := []struct {
		id      string
		name    string
		barcode string
		price   decimal.Decimal
		stock   int
		linked  bool
	}{
		{"P001", "Test Product 1", "BAR001", decimal.NewFromInt(100), 10, true},
		{"P002", "Test Product 2", "BAR002", decimal.NewFromInt(50), 5, false},
		{"P003", "Test Product 3", "BAR003", decimal.NewFromFloat(19.99), 1, false},
	}

	for _, p := range products {
		var did any
		if p.linked {
			did = discountID
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO products (product_id, name, barcode, price, stock_qty, discount_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.name, p.barcode, p.price, p.stock, did,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"payments", "order_items", "orders", "cart_items", "carts", "products", "discounts"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
