package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ConcurrentDecrementStock(t *testing.T) {
	db := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	SeedCatalog(t, db.Pool, uuid.New().String())
	defer CleanupDB(t, db.Pool)

	productRepo := repository.NewProductRepository(db.Pool, logger)

	// P003 is seeded with exactly one unit of stock. Hammer it with
	// concurrent decrements and verify only one succeeds.
	const workers = 10
	var wg sync.WaitGroup
	successes := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := productRepo.DecrementStock(ctx, "P003")
			if err != nil {
				t.Errorf("decrement failed: %v", err)
				return
			}
			successes <- ok
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for ok := range successes {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent decrement should win")

	var stock int
	err := db.Pool.QueryRow(ctx, "SELECT stock_qty FROM products WHERE product_id = 'P003'").Scan(&stock)
	require.NoError(t, err)
	assert.Equal(t, 0, stock, "stock should never go negative")
}

func TestProductRepository_GetByIDOrBarcode(t *testing.T) {
	db := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	SeedCatalog(t, db.Pool, uuid.New().String())
	defer CleanupDB(t, db.Pool)

	productRepo := repository.NewProductRepository(db.Pool, logger)

	byID, err := productRepo.GetByIDOrBarcode(ctx, "P001")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Test Product 1", byID.Name)

	byBarcode, err := productRepo.GetByIDOrBarcode(ctx, "BAR001")
	require.NoError(t, err)
	require.NotNil(t, byBarcode)
	assert.Equal(t, "P001", byBarcode.ID)

	missing, err := productRepo.GetByIDOrBarcode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCartRepository_AddRemoveLifecycle(t *testing.T) {
	db := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	SeedCatalog(t, db.Pool, uuid.New().String())
	defer CleanupDB(t, db.Pool)

	cartRepo := repository.NewCartRepository(db.Pool, logger)

	const cartID = "9876543210"
	require.NoError(t, cartRepo.Create(ctx, cartID, time.Now()))

	// A second create for the same owner must fail.
	err := cartRepo.Create(ctx, cartID, time.Now())
	require.Error(t, err)

	// Adding the same product twice increments quantity on one line.
	require.NoError(t, cartRepo.AddItem(ctx, cartID, "P001"))
	require.NoError(t, cartRepo.AddItem(ctx, cartID, "P001"))
	require.NoError(t, cartRepo.AddItem(ctx, cartID, "P002"))

	items, err := cartRepo.GetItems(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "P001", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "P002", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	// Removing decrements the quantity, then deletes the line.
	removed, err := cartRepo.RemoveItem(ctx, cartID, "P001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = cartRepo.RemoveItem(ctx, cartID, "P001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = cartRepo.RemoveItem(ctx, cartID, "P001")
	require.NoError(t, err)
	assert.False(t, removed, "removing an absent product reports false")

	items, err = cartRepo.GetItems(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "P002", items[0].ProductID)
}

func TestDiscountRepository_GetActiveByBarcode(t *testing.T) {
	db := SetupTestDB(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	discountID := uuid.New()
	SeedCatalog(t, db.Pool, discountID.String())
	defer CleanupDB(t, db.Pool)

	discountRepo := repository.NewDiscountRepository(db.Pool, logger)

	d, err := discountRepo.GetActiveByBarcode(ctx, "BAR001")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, discountID, d.ID)
	assert.True(t, d.Percentage.Equal(decimal.NewFromInt(10)))

	none, err := discountRepo.GetActiveByBarcode(ctx, "BAR002")
	require.NoError(t, err)
	assert.Nil(t, none)
}
