package product_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid product", func(t *testing.T) {
		p, err := product.NewProduct(validID, 5)

		require.NoError(t, err)
		assert.NotNil(t, p)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(validID))
		assert.Equal(t, 5, p.Inventory())
	})

	t.Run("should accept zero inventory", func(t *testing.T) {
		p, err := product.NewProduct(validID, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, p.Inventory())
		assert.False(t, p.IsAvailable())
	})

	t.Run("should fail with negative inventory", func(t *testing.T) {
		p, err := product.NewProduct(validID, -1)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "inventory is invalid")
		assert.Contains(t, err.Error(), "-1 is negative")
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := product.NewProduct(invalidID, 5)

		require.Error(t, err)
		assert.Nil(t, p)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestRestoreProduct(t *testing.T) {
	t.Run("should restore product with positive inventory", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), 3)

		require.NoError(t, err)
		assert.Equal(t, 3, p.Inventory())
	})

	t.Run("should restore product with negative inventory", func(t *testing.T) {
		p, err := product.RestoreProduct(kernel.NewUUID(), -2)

		require.NoError(t, err)
		assert.Equal(t, -2, p.Inventory())
		assert.False(t, p.IsAvailable())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		p, err := product.RestoreProduct(invalidID, 3)

		require.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestProduct_Validate(t *testing.T) {
	t.Run("should reject zero value product", func(t *testing.T) {
		var p product.Product

		err := p.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, product.ErrProductIsNotConstructed)
	})

	t.Run("should reject nil product", func(t *testing.T) {
		var p *product.Product

		err := p.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, product.ErrProductIsNotConstructed)
	})
}

func TestProduct_IsAvailable(t *testing.T) {
	testCases := []struct {
		name      string
		inventory int
		available bool
	}{
		{"positive inventory is available", 1, true},
		{"large inventory is available", 1000, true},
		{"zero inventory is not available", 0, false},
		{"negative inventory is not available", -1, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := product.RestoreProduct(kernel.NewUUID(), tc.inventory)
			require.NoError(t, err)

			assert.Equal(t, tc.available, p.IsAvailable())
		})
	}
}

func TestProduct_DecrementInventory(t *testing.T) {
	t.Run("should reduce inventory by one", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), 3)
		require.NoError(t, err)

		p.DecrementInventory()

		assert.Equal(t, 2, p.Inventory())
	})

	t.Run("should decrement below zero without clamping", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), 0)
		require.NoError(t, err)

		p.DecrementInventory()

		assert.Equal(t, -1, p.Inventory())
	})

	t.Run("should decrement once per call", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), 5)
		require.NoError(t, err)

		p.DecrementInventory()
		p.DecrementInventory()
		p.DecrementInventory()

		assert.Equal(t, 2, p.Inventory())
	})
}
