package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fruit-order-service/internal/order"
	"fruit-order-service/internal/order/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database and migrates the orders table.
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open in-memory DB")

	require.NoError(t, repository.AutoMigrate(db), "failed to migrate orders table")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newOrder(client, fruit string, kilos, daysAhead int) *order.Order {
	return &order.Order{
		ClientName:   client,
		DeliveryDate: order.DateOf(time.Now()).AddDays(daysAhead),
		Items:        []order.OrderItem{{FruitName: fruit, QuantityInKilos: kilos}},
	}
}

// repositories runs the same contract against every store implementation.
func repositories(t *testing.T) map[string]func(t *testing.T) repository.OrderRepository {
	return map[string]func(t *testing.T) repository.OrderRepository{
		"gorm-sqlite": func(t *testing.T) repository.OrderRepository {
			return repository.NewOrderRepository(setupTestDB(t))
		},
		"memory": func(t *testing.T) repository.OrderRepository {
			return repository.NewMemoryOrderRepository()
		},
	}
}

func TestOrderRepository_Save_AssignsID(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()
			o := newOrder("Alice", "Apple", 5, 1)

			saved, err := repo.Save(ctx, o)

			require.NoError(t, err)
			assert.NotEmpty(t, saved.ID, "store should assign an id on first save")

			found, err := repo.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, "Alice", found.ClientName)
			assert.Equal(t, o.DeliveryDate, found.DeliveryDate)
			assert.Equal(t, []order.OrderItem{{FruitName: "Apple", QuantityInKilos: 5}}, found.Items)
		})
	}
}

func TestOrderRepository_Save_ReplacesExisting(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()
			saved, err := repo.Save(ctx, newOrder("John", "Apple", 2, 1))
			require.NoError(t, err)

			replacement := newOrder("Updated Client", "Orange", 5, 2)
			replacement.ID = saved.ID
			replacement.CreatedAt = saved.CreatedAt
			_, err = repo.Save(ctx, replacement)
			require.NoError(t, err)

			found, err := repo.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, "Updated Client", found.ClientName)
			assert.Equal(t, []order.OrderItem{{FruitName: "Orange", QuantityInKilos: 5}}, found.Items)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)

			found, err := repo.FindByID(context.Background(), "unknown-id-123")

			assert.Nil(t, found)
			assert.ErrorIs(t, err, order.ErrOrderNotFound)
		})
	}
}

func TestOrderRepository_FindAll(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()

			empty, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			_, err = repo.Save(ctx, newOrder("John", "Apple", 2, 1))
			require.NoError(t, err)
			_, err = repo.Save(ctx, newOrder("Anna", "Banana", 3, 2))
			require.NoError(t, err)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "John", all[0].ClientName, "insertion order should be preserved")
			assert.Equal(t, "Anna", all[1].ClientName)
		})
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()
			saved, err := repo.Save(ctx, newOrder("John", "Apple", 2, 1))
			require.NoError(t, err)

			require.NoError(t, repo.DeleteByID(ctx, saved.ID))
			_, err = repo.FindByID(ctx, saved.ID)
			assert.ErrorIs(t, err, order.ErrOrderNotFound)

			assert.NoError(t, repo.DeleteByID(ctx, saved.ID), "deleting twice is not an error")
		})
	}
}

func TestOrderRepository_DeleteAll(t *testing.T) {
	for name, build := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			repo := build(t)
			ctx := context.Background()
			_, err := repo.Save(ctx, newOrder("John", "Apple", 2, 1))
			require.NoError(t, err)
			_, err = repo.Save(ctx, newOrder("Anna", "Banana", 3, 2))
			require.NoError(t, err)

			require.NoError(t, repo.DeleteAll(ctx))

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := repository.NewMemoryOrderRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newOrder("John", "Apple", 2, 1))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	found.Items[0].FruitName = "Mutated"

	again, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", again.Items[0].FruitName)
}
