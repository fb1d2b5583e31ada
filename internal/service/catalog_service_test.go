package service

import (
	"testing"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() *model.CreateProductInput {
	return &model.CreateProductInput{
		Name:        "Wool Scarf",
		Price:       "29.90",
		Weight:      "0.25",
		Description: "A warm scarf.",
		Images:      []string{"https://cdn.example.com/assets/scarf.jpg"},
		Variants: []model.VariantInput{
			{Name: "Red", ImageSrc: "https://cdn.example.com/assets/scarf-red.jpg"},
		},
	}
}

func TestCreateProduct(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*model.CreateProductInput)
		wantErr string
	}{
		{
			name:   "valid input",
			mutate: func(in *model.CreateProductInput) {},
		},
		{
			name:    "missing name",
			mutate:  func(in *model.CreateProductInput) { in.Name = "" },
			wantErr: "validation failed",
		},
		{
			name:    "name over 100 chars",
			mutate:  func(in *model.CreateProductInput) { in.Name = string(make([]byte, 101)) },
			wantErr: "validation failed",
		},
		{
			name:    "price is not a number",
			mutate:  func(in *model.CreateProductInput) { in.Price = "abc" },
			wantErr: "validation failed",
		},
		{
			name:    "weight is not a number",
			mutate:  func(in *model.CreateProductInput) { in.Weight = "1,5kg" },
			wantErr: "validation failed",
		},
		{
			name:    "empty description",
			mutate:  func(in *model.CreateProductInput) { in.Description = "" },
			wantErr: "validation failed",
		},
		{
			name:    "no images",
			mutate:  func(in *model.CreateProductInput) { in.Images = nil },
			wantErr: "validation failed",
		},
		{
			name: "variant without image",
			mutate: func(in *model.CreateProductInput) {
				in.Variants = []model.VariantInput{{Name: "Blue"}}
			},
			wantErr: "validation failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockProductRepo()
			svc := NewCatalogService(repo, newMockVariantRepo(), nil)

			input := validCreateInput()
			tc.mutate(input)

			product, err := svc.CreateProduct(input, "admin-1")
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				assert.Empty(t, repo.created, "nothing should be persisted on validation failure")
				return
			}

			require.NoError(t, err)
			require.Len(t, repo.created, 1)
			assert.True(t, product.Price.Equal(decimal.RequireFromString("29.90")))
			assert.True(t, product.Weight.Equal(decimal.RequireFromString("0.25")))
			assert.True(t, product.IsActive)
			assert.Equal(t, "admin-1", product.CreatedBy)
			require.Len(t, product.Images, 1)
			assert.Equal(t, input.Images[0], product.Images[0].Src)
			require.Len(t, product.Variants, 1)
			assert.Equal(t, model.VariantTypeColor, product.Variants[0].Type)
		})
	}
}

func TestToggleProductStatusTwiceRestoresOriginal(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, newMockVariantRepo(), nil)

	product := &model.Product{Name: "Candle", IsActive: true}
	require.NoError(t, repo.Create(product))

	first, err := svc.ToggleProductStatus(product.ID, "admin-1")
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := svc.ToggleProductStatus(product.ID, "admin-1")
	require.NoError(t, err)
	assert.True(t, second.IsActive)
}

func TestToggleProductStatusUnknownID(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), newMockVariantRepo(), nil)

	_, err := svc.ToggleProductStatus(uuid.New(), "admin-1")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestSetProductCategoryReplacesMembership(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, newMockVariantRepo(), nil)

	product := &model.Product{Name: "Mug", IsActive: true}
	require.NoError(t, repo.Create(product))

	categoryA := uuid.New()
	categoryB := uuid.New()

	require.NoError(t, svc.SetProductCategory(product.ID, categoryA))
	require.NoError(t, svc.SetProductCategory(product.ID, categoryB))

	assert.Equal(t, []uuid.UUID{categoryB}, repo.membership[product.ID],
		"membership must contain only the most recently attached category")
}

func TestGetActiveProductsByCategory(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, newMockVariantRepo(), nil)

	active := &model.Product{Name: "Active", IsActive: true}
	inactive := &model.Product{Name: "Inactive", IsActive: false}
	require.NoError(t, repo.Create(active))
	require.NoError(t, repo.Create(inactive))

	t.Run("all sentinel returns the unfiltered active set", func(t *testing.T) {
		fromSentinel, err := svc.GetActiveProductsByCategory(CategoryAll)
		require.NoError(t, err)

		fromList, err := svc.GetActiveProducts()
		require.NoError(t, err)

		assert.ElementsMatch(t, fromSentinel, fromList)
		assert.Len(t, fromSentinel, 1)
	})

	t.Run("category id filters by membership", func(t *testing.T) {
		category := uuid.New()
		require.NoError(t, svc.SetProductCategory(active.ID, category))

		products, err := svc.GetActiveProductsByCategory(category.String())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Active", products[0].Name)
	})

	t.Run("garbage id is rejected", func(t *testing.T) {
		_, err := svc.GetActiveProductsByCategory("not-a-uuid")
		assert.ErrorIs(t, err, ErrInvalidCategoryID)
	})
}

func TestUpdateProduct(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, newMockVariantRepo(), nil)

	product := &model.Product{Name: "Old Name", IsActive: true}
	require.NoError(t, repo.Create(product))

	input := &model.UpdateProductInput{
		Name:        "New Name",
		Price:       "12.00",
		Weight:      "1.5",
		Description: "Updated.",
	}
	updated, err := svc.UpdateProduct(product.ID, input, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "admin-2", repo.lastUpdates["updated_by"])

	// scalar update only: images/variants/categories are untouched keys
	for key := range repo.lastUpdates {
		assert.NotContains(t, []string{"images", "variants", "categories"}, key)
	}

	_, err = svc.UpdateProduct(uuid.New(), input, "admin-2")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestUpsertVariantsIsNotAtomic(t *testing.T) {
	productRepo := newMockProductRepo()
	variantRepo := newMockVariantRepo()
	svc := NewCatalogService(productRepo, variantRepo, nil)

	product := &model.Product{Name: "Shirt", IsActive: true}
	require.NoError(t, productRepo.Create(product))

	entries := []model.VariantBatchEntry{
		{ID: uuid.New(), ProductID: product.ID, Name: "Ghost", ImageSrc: "https://cdn.example.com/g.jpg"}, // unknown id, update fails
		{ProductID: product.ID, Name: "Green", ImageSrc: "https://cdn.example.com/green.jpg", Add: true},
	}

	results := svc.UpsertVariants(entries, "admin-1")
	require.Len(t, results, 2)

	assert.Contains(t, results[0].Error, "variant not found")
	assert.Empty(t, results[1].Error)

	// the valid create persisted despite the earlier failure
	require.Len(t, variantRepo.variants, 1)
	for _, v := range variantRepo.variants {
		assert.Equal(t, "Green", v.Name)
		assert.Equal(t, model.VariantTypeColor, v.Type)
	}
}

func TestUpsertVariantsValidatesEntries(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), newMockVariantRepo(), nil)

	results := svc.UpsertVariants([]model.VariantBatchEntry{
		{ProductID: uuid.New(), Name: "", ImageSrc: "x", Add: true},
	}, "admin-1")

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Error, "validation failed")
}

func TestDeleteVariantUnknownIDFails(t *testing.T) {
	svc := NewCatalogService(newMockProductRepo(), newMockVariantRepo(), nil)

	err := svc.DeleteVariant(uuid.New())
	assert.ErrorIs(t, err, repository.ErrVariantNotFound)
}

func TestDeleteProductImage(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewCatalogService(repo, newMockVariantRepo(), nil)

	product := &model.Product{Name: "Vase", IsActive: true}
	require.NoError(t, repo.Create(product))

	image, err := svc.AddProductImage(product.ID, &model.AddImageInput{Src: "https://cdn.example.com/v.jpg", Alt: "vase"}, "admin-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProductImage(product.ID, image.ID))
	err = svc.DeleteProductImage(product.ID, image.ID)
	assert.ErrorIs(t, err, repository.ErrImageNotFound)
}
