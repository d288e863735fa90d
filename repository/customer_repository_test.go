package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"customer-service/config"
	"customer-service/models"
	"customer-service/repository"
)

func setupRepository(t *testing.T) (repository.CustomerRepository, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		DBDriver:        "sqlite",
		DatabaseURI:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	}
	db, err := config.ConnectDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDB(db) })

	return repository.NewCustomerRepository(db, zap.NewNop()), db
}

func newCustomer(name string, available bool) *models.Customer {
	phone := "555-" + name
	return &models.Customer{
		Name:        name,
		Address:     name + " street",
		Email:       name + "@example.com",
		Password:    "pw-" + name,
		PhoneNumber: &phone,
		Available:   available,
	}
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&n).Error)
	return n
}

func TestCreateAssignsFreshID(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	first := newCustomer("alice", true)
	first.ID = 999
	require.NoError(t, repo.Create(ctx, first))
	second := newCustomer("bob", false)
	require.NoError(t, repo.Create(ctx, second))

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, uint(999), first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(2), countRows(t, db))

	found, err := repo.Find(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.Serialize(), found.Serialize())
}

func TestFind(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	missing, err := repo.Find(ctx, 12345)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.FindOrNotFound(ctx, 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	customer := newCustomer("carol", true)
	require.NoError(t, repo.Create(ctx, customer))
	found, err := repo.FindOrNotFound(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", found.Name)
}

func TestUpdate(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	t.Run("transient customer is rejected", func(t *testing.T) {
		err := repo.Update(ctx, newCustomer("dave", true))
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})

	t.Run("persisted customer is saved including zero values", func(t *testing.T) {
		customer := newCustomer("erin", true)
		require.NoError(t, repo.Create(ctx, customer))

		customer.Name = "erin2"
		customer.Available = false
		customer.PhoneNumber = nil
		require.NoError(t, repo.Update(ctx, customer))

		found, err := repo.FindOrNotFound(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "erin2", found.Name)
		assert.False(t, found.Available)
		assert.Nil(t, found.PhoneNumber)
	})

	t.Run("deleted customer is not resurrected", func(t *testing.T) {
		customer := newCustomer("frank", true)
		require.NoError(t, repo.Create(ctx, customer))
		require.NoError(t, repo.Delete(ctx, customer))

		err := repo.Update(ctx, customer)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		missing, err := repo.Find(ctx, customer.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestDelete(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	keep := newCustomer("gina", true)
	drop := newCustomer("hank", true)
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))

	require.NoError(t, repo.Delete(ctx, drop))
	assert.Equal(t, int64(1), countRows(t, db))

	// already gone
	require.NoError(t, repo.Delete(ctx, drop))
	assert.Equal(t, int64(1), countRows(t, db))
}

func TestQueries(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	seed := []*models.Customer{
		newCustomer("ivy", true),
		newCustomer("ivy", false),
		newCustomer("ivy", true),
		newCustomer("jack", false),
		newCustomer("kate", true),
	}
	for _, c := range seed {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	byName, err := repo.FindByName(ctx, "ivy")
	require.NoError(t, err)
	assert.Len(t, byName, 3)
	for _, c := range byName {
		assert.Equal(t, "ivy", c.Name)
	}

	byName, err = repo.FindByName(ctx, "IVY")
	require.NoError(t, err)
	assert.Empty(t, byName, "name match is case-sensitive")

	byAddress, err := repo.FindByAddress(ctx, "jack street")
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "jack", byAddress[0].Name)

	byEmail, err := repo.FindByEmail(ctx, "kate@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "kate", byEmail[0].Name)

	byPhone, err := repo.FindByPhoneNumber(ctx, "555-jack")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "jack", byPhone[0].Name)

	active, err := repo.FindByAvailability(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 3)
	for _, c := range active {
		assert.True(t, c.Available)
	}

	suspended, err := repo.FindByAvailability(ctx, false)
	require.NoError(t, err)
	assert.Len(t, suspended, 2)
	for _, c := range suspended {
		assert.False(t, c.Available)
	}

	activeCount, err := repo.CountByAvailability(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), activeCount)
	suspendedCount, err := repo.CountByAvailability(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), suspendedCount)
}

func TestPing(t *testing.T) {
	repo, db := setupRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))

	require.NoError(t, config.CloseDB(db))
	assert.Error(t, repo.Ping(context.Background()))
}
