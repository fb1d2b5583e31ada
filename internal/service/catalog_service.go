package service

import (
	"errors"
	"fmt"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/ws"
	"go-catalog-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel category id meaning "no category filter".
const CategoryAll = "all"

var ErrInvalidCategoryID = errors.New("invalid category id")

// VariantBatchResult reports the outcome of one batch entry. Entries are
// applied independently; earlier successes stay applied when a later entry
// fails.
type VariantBatchResult struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Added bool      `json:"added"`
	Error string    `json:"error,omitempty"`
}

type CatalogService interface {
	GetProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetActiveProducts() ([]model.Product, error)
	GetActiveProductsByCategory(category string) ([]model.Product, error)
	GetProductImages(id uuid.UUID) (*repository.ProductImages, error)
	CreateProduct(input *model.CreateProductInput, actor string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *model.UpdateProductInput, actor string) (*model.Product, error)
	ToggleProductStatus(id uuid.UUID, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
	AddProductImage(productID uuid.UUID, input *model.AddImageInput, actor string) (*model.Image, error)
	DeleteProductImage(productID, imageID uuid.UUID) error
	SetProductCategory(productID, categoryID uuid.UUID) error
	ClearProductCategories(productID uuid.UUID) error
	UpsertVariants(entries []model.VariantBatchEntry, actor string) []VariantBatchResult
	DeleteVariant(id uuid.UUID) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, vRepo repository.VariantRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		variantRepo: vRepo,
		wsHub:       hub,
	}
}

// validationError flattens the first field failure into one error, same shape
// the handlers already return to the client.
func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *catalogService) GetProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *catalogService) GetActiveProducts() ([]model.Product, error) {
	return s.productRepo.FindActive()
}

// GetActiveProductsByCategory accepts either a category uuid or the "all"
// sentinel, which returns the unfiltered active set.
func (s *catalogService) GetActiveProductsByCategory(category string) ([]model.Product, error) {
	if category == CategoryAll {
		return s.productRepo.FindActive()
	}
	categoryID, err := uuid.Parse(category)
	if err != nil {
		return nil, ErrInvalidCategoryID
	}
	return s.productRepo.FindActiveByCategory(categoryID)
}

func (s *catalogService) GetProductImages(id uuid.UUID) (*repository.ProductImages, error) {
	return s.productRepo.GetImages(id)
}

func (s *catalogService) CreateProduct(input *model.CreateProductInput, actor string) (*model.Product, error) {
	// 1. Schema validation
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	// 2. Re-parse the numeric strings. The decimal_string tag already vetted
	// them, the parse here produces the persisted values.
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	weight, err := decimal.NewFromString(input.Weight)
	if err != nil {
		return nil, fmt.Errorf("invalid weight: %w", err)
	}

	// 3. Build the product with nested images and variants. Variant type is
	// always color today.
	product := &model.Product{
		Name:        input.Name,
		Price:       price,
		Weight:      weight,
		Description: input.Description,
		IsActive:    true,
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	for _, src := range input.Images {
		img := model.Image{Src: src}
		img.CreatedBy = actor
		img.UpdatedBy = actor
		product.Images = append(product.Images, img)
	}
	for _, v := range input.Variants {
		variant := model.Variant{
			Name:     v.Name,
			ImageSrc: v.ImageSrc,
			Type:     model.VariantTypeColor,
		}
		variant.CreatedBy = actor
		variant.UpdatedBy = actor
		product.Variants = append(product.Variants, variant)
	}

	// 4. One create, nested writes share its transaction
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:   ws.EventCatalog,
		Action: "product_created",
		Payload: map[string]interface{}{
			"id":   product.ID,
			"name": product.Name,
		},
		Message: fmt.Sprintf("%s created product '%s'", actor, product.Name),
	})

	return product, nil
}

// UpdateProduct touches scalar fields only. Images, variants and categories
// each have their own operations.
func (s *catalogService) UpdateProduct(id uuid.UUID, input *model.UpdateProductInput, actor string) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	weight, err := decimal.NewFromString(input.Weight)
	if err != nil {
		return nil, fmt.Errorf("invalid weight: %w", err)
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"price":       price,
		"weight":      weight,
		"description": input.Description,
		"updated_by":  actor,
	}
	if err := s.productRepo.UpdateScalars(id, updates); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:   ws.EventCatalog,
		Action: "product_updated",
		Payload: map[string]interface{}{
			"id":   product.ID,
			"name": product.Name,
		},
		Message: fmt.Sprintf("%s updated product '%s'", actor, product.Name),
	})

	return product, nil
}

func (s *catalogService) ToggleProductStatus(id uuid.UUID, actor string) (*model.Product, error) {
	product, err := s.productRepo.ToggleActive(id, actor)
	if err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:   ws.EventCatalog,
		Action: "product_status_toggled",
		Payload: map[string]interface{}{
			"id":        product.ID,
			"is_active": product.IsActive,
		},
	})

	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor string) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	go s.wsHub.Notify(ws.Event{
		Type:    ws.EventCatalog,
		Action:  "product_deleted",
		Payload: map[string]interface{}{"id": id},
	})

	return nil
}

func (s *catalogService) AddProductImage(productID uuid.UUID, input *model.AddImageInput, actor string) (*model.Image, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	image := &model.Image{
		ProductID: productID,
		Src:       input.Src,
		Alt:       input.Alt,
	}
	image.CreatedBy = actor
	image.UpdatedBy = actor

	if err := s.productRepo.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *catalogService) DeleteProductImage(productID, imageID uuid.UUID) error {
	return s.productRepo.DeleteImage(productID, imageID)
}

// SetProductCategory keeps effective membership singular: every existing link
// is cleared before the new one is attached.
func (s *catalogService) SetProductCategory(productID, categoryID uuid.UUID) error {
	return s.productRepo.SetCategory(productID, categoryID)
}

func (s *catalogService) ClearProductCategories(productID uuid.UUID) error {
	return s.productRepo.ClearCategories(productID)
}

// UpsertVariants applies each entry on its own: add-flagged entries become
// new variants, the rest update name and image by id. There is no batch
// atomicity; a failed entry is reported in its result and the rest proceed.
func (s *catalogService) UpsertVariants(entries []model.VariantBatchEntry, actor string) []VariantBatchResult {
	results := make([]VariantBatchResult, 0, len(entries))

	for _, entry := range entries {
		result := VariantBatchResult{ID: entry.ID, Name: entry.Name, Added: entry.Add}

		if errs := validator.ValidateStruct(&entry); len(errs) > 0 {
			result.Error = validationError(errs).Error()
			results = append(results, result)
			continue
		}

		if entry.Add {
			variant := &model.Variant{
				ProductID: entry.ProductID,
				Name:      entry.Name,
				ImageSrc:  entry.ImageSrc,
				Type:      model.VariantTypeColor,
			}
			variant.CreatedBy = actor
			variant.UpdatedBy = actor
			if err := s.variantRepo.Create(variant); err != nil {
				result.Error = err.Error()
			} else {
				result.ID = variant.ID
			}
		} else {
			if err := s.variantRepo.UpdateNameAndImage(entry.ID, entry.Name, entry.ImageSrc, actor); err != nil {
				result.Error = err.Error()
			}
		}

		results = append(results, result)
	}

	return results
}

func (s *catalogService) DeleteVariant(id uuid.UUID) error {
	return s.variantRepo.Delete(id)
}
