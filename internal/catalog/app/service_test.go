package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordiclux/storefront/internal/catalog/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
	"github.com/nordiclux/storefront/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	// Pre-write an empty list so Load does not install seed data.
	require.NoError(t, store.Put(storageKey, []byte(`[]`)))
	svc := NewService(store, logger.Nop())
	require.NoError(t, svc.Load())
	return svc, store
}

func serum() domain.Product {
	return domain.Product{
		Name:     "Vitamin C Serum",
		Brand:    "TruSkin",
		Category: "Serum",
		Price:    21.99,
		Image:    "https://example.com/serum.jpg",
		Stock:    40,
		SKU:      "TRU-VIT-001",
		Rating:   5,
		Country:  "USA",
	}
}

func TestAddAssignsIdentifierAndStamps(t *testing.T) {
	svc, store := newTestService(t)

	p, err := svc.Add(serum())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	raw, err := store.Get(storageKey)
	require.NoError(t, err)
	var persisted []domain.Product
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "TRU-VIT-001", persisted[0].SKU)
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("empty name -> invalid", func(t *testing.T) {
		p := serum()
		p.Name = "   "
		_, err := svc.Add(p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		p := serum()
		p.Price = -1
		_, err := svc.Add(p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		p := serum()
		p.Stock = -5
		_, err := svc.Add(p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAddRejectsDuplicateSKUCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(serum())
	require.NoError(t, err)

	dup := serum()
	dup.SKU = "tru-vit-001"
	_, err = svc.Add(dup)
	assert.ErrorIs(t, err, ErrDuplicateSKU)
	assert.Len(t, svc.List(), 1)
}

func TestUpdateMergesPatchAndRefreshesStamp(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Add(serum())
	require.NoError(t, err)

	price := 18.50
	updated, err := svc.Update(p.ID, domain.Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 18.50, updated.Price)
	assert.Equal(t, p.Name, updated.Name, "unpatched fields survive")
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt) || updated.UpdatedAt.Equal(p.UpdatedAt))

	_, err = svc.Update("missing", domain.Patch{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFiltersRecordOut(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Add(serum())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(p.ID))
	assert.Empty(t, svc.List())

	// Unknown ids are filtered with no effect.
	require.NoError(t, svc.Delete("missing"))
}

func TestSearchMatchesNameBrandSKU(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(serum())
	require.NoError(t, err)
	other := serum()
	other.Name = "Night Cream"
	other.Brand = "CeraVe"
	other.SKU = "CER-NIG-001"
	_, err = svc.Add(other)
	require.NoError(t, err)

	assert.Len(t, svc.Search("cerave"), 1)
	assert.Len(t, svc.Search("TRU-VIT"), 1)
	assert.Len(t, svc.Search("serum"), 1)
	assert.Len(t, svc.Search(""), 2)
	assert.Empty(t, svc.Search("lipstick"))
}

func TestLoadInstallsSeedWhenKeyAbsent(t *testing.T) {
	store := kvstore.NewMemory()
	svc := NewService(store, logger.Nop())
	require.NoError(t, svc.Load())

	products := svc.List()
	require.Len(t, products, 2)
	assert.Equal(t, "ORD-NIA-001", products[0].SKU)

	_, err := store.Get(storageKey)
	assert.NoError(t, err, "seed is mirrored to the durable store")
}

func TestLoadRecoversFromUnreadableState(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Put(storageKey, []byte(`{"oops":`)))
	svc := NewService(store, logger.Nop())
	require.NoError(t, svc.Load())
	assert.Len(t, svc.List(), 2, "falls back to the seed catalog")
}

func TestLoadWithoutStoreIsNoop(t *testing.T) {
	svc := NewService(nil, logger.Nop())
	require.NoError(t, svc.Load())
	assert.Empty(t, svc.List())

	_, err := svc.Add(serum())
	assert.NoError(t, err, "mutations work without a durable store")
}
