package service

import (
	"context"
	"fmt"
	"io"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// --- Product repository mock ---

type mockProductRepo struct {
	products   map[uuid.UUID]*model.Product
	membership map[uuid.UUID][]uuid.UUID // product id -> attached category ids

	createErr error
	created   []*model.Product

	lastUpdates         map[string]interface{}
	findActiveCalls     int
	findByCategoryCalls []uuid.UUID
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products:   make(map[uuid.UUID]*model.Product),
		membership: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *mockProductRepo) Create(product *model.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for i := range product.Images {
		product.Images[i].ID = uuid.New()
		product.Images[i].ProductID = product.ID
	}
	for i := range product.Variants {
		product.Variants[i].ID = uuid.New()
		product.Variants[i].ProductID = product.ID
	}
	m.products[product.ID] = product
	m.created = append(m.created, product)
	return nil
}

func (m *mockProductRepo) FindAll() ([]model.Product, error) {
	var out []model.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindActive() ([]model.Product, error) {
	m.findActiveCalls++
	var out []model.Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) FindActiveByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	m.findByCategoryCalls = append(m.findByCategoryCalls, categoryID)
	var out []model.Product
	for pid, cats := range m.membership {
		for _, cid := range cats {
			if cid == categoryID {
				if p, ok := m.products[pid]; ok && p.IsActive {
					out = append(out, *p)
				}
			}
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetImages(productID uuid.UUID) (*repository.ProductImages, error) {
	p, ok := m.products[productID]
	if !ok {
		return &repository.ProductImages{}, nil
	}
	return &repository.ProductImages{Images: p.Images, VariantImages: p.Variants}, nil
}

func (m *mockProductRepo) UpdateScalars(id uuid.UUID, updates map[string]interface{}) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	m.lastUpdates = updates
	if name, ok := updates["name"].(string); ok {
		m.products[id].Name = name
	}
	return nil
}

func (m *mockProductRepo) ToggleActive(id uuid.UUID, updatedBy string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	p.IsActive = !p.IsActive
	p.UpdatedBy = updatedBy
	snapshot := *p
	return &snapshot, nil
}

func (m *mockProductRepo) AddImage(image *model.Image) error {
	p, ok := m.products[image.ProductID]
	if !ok {
		return repository.ErrProductNotFound
	}
	image.ID = uuid.New()
	p.Images = append(p.Images, *image)
	return nil
}

func (m *mockProductRepo) DeleteImage(productID, imageID uuid.UUID) error {
	p, ok := m.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	for i, img := range p.Images {
		if img.ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			return nil
		}
	}
	return repository.ErrImageNotFound
}

func (m *mockProductRepo) SetCategory(productID, categoryID uuid.UUID) error {
	if _, ok := m.products[productID]; !ok {
		return repository.ErrProductNotFound
	}
	// clear-then-attach, same as the real repository
	m.membership[productID] = []uuid.UUID{categoryID}
	return nil
}

func (m *mockProductRepo) ClearCategories(productID uuid.UUID) error {
	if _, ok := m.products[productID]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.membership, productID)
	return nil
}

func (m *mockProductRepo) Delete(id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	delete(m.membership, id)
	return nil
}

// --- Variant repository mock ---

type mockVariantRepo struct {
	variants  map[uuid.UUID]*model.Variant
	createErr error
}

func newMockVariantRepo() *mockVariantRepo {
	return &mockVariantRepo{variants: make(map[uuid.UUID]*model.Variant)}
}

func (m *mockVariantRepo) Create(variant *model.Variant) error {
	if m.createErr != nil {
		return m.createErr
	}
	variant.ID = uuid.New()
	m.variants[variant.ID] = variant
	return nil
}

func (m *mockVariantRepo) UpdateNameAndImage(id uuid.UUID, name, imageSrc, updatedBy string) error {
	v, ok := m.variants[id]
	if !ok {
		return repository.ErrVariantNotFound
	}
	v.Name = name
	v.ImageSrc = imageSrc
	v.UpdatedBy = updatedBy
	return nil
}

func (m *mockVariantRepo) Delete(id uuid.UUID) error {
	if _, ok := m.variants[id]; !ok {
		return repository.ErrVariantNotFound
	}
	delete(m.variants, id)
	return nil
}

// --- Category repository mock ---

type mockCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (m *mockCategoryRepo) Create(category *model.Category) error {
	category.ID = uuid.New()
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) FindActiveWithProducts() ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepo) UpdateName(id uuid.UUID, name, updatedBy string) error {
	c, ok := m.categories[id]
	if !ok {
		return repository.ErrCategoryNotFound
	}
	c.Name = name
	c.UpdatedBy = updatedBy
	return nil
}

func (m *mockCategoryRepo) ToggleActive(id uuid.UUID, updatedBy string) (*model.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	c.IsActive = !c.IsActive
	c.UpdatedBy = updatedBy
	snapshot := *c
	return &snapshot, nil
}

func (m *mockCategoryRepo) Delete(id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// --- Setting repository mock ---

type mockSettingRepo struct {
	values  map[string]string
	readErr error
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{values: make(map[string]string)}
}

func (m *mockSettingRepo) Upsert(name, value string) error {
	m.values[name] = value
	return nil
}

func (m *mockSettingRepo) FindByName(name string) (*model.Setting, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	v, ok := m.values[name]
	if !ok {
		return nil, repository.ErrSettingNotFound
	}
	return &model.Setting{Name: name, Value: v}, nil
}

// --- Object storage fake ---

type fakeUploader struct {
	baseURL string
	keys    []string // keys in upload order
	failAt  int      // 0-based upload index that fails, -1 for never
}

func newFakeUploader(baseURL string) *fakeUploader {
	return &fakeUploader{baseURL: baseURL, failAt: -1}
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.failAt >= 0 && len(f.keys) == f.failAt {
		return "", fmt.Errorf("storage unavailable")
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return f.baseURL + "/" + key, nil
}
