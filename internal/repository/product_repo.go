package repository

import (
	"errors"

	"go-catalog-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductImages is the projected image listing for one product: its own
// images plus the images of its variants, nothing else.
type ProductImages struct {
	Images        []model.Image   `json:"images"`
	VariantImages []model.Variant `json:"variant_images"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindActive() ([]model.Product, error)
	FindActiveByCategory(categoryID uuid.UUID) ([]model.Product, error)
	GetImages(productID uuid.UUID) (*ProductImages, error)
	UpdateScalars(id uuid.UUID, updates map[string]interface{}) error
	ToggleActive(id uuid.UUID, updatedBy string) (*model.Product, error)
	AddImage(image *model.Image) error
	DeleteImage(productID, imageID uuid.UUID) error
	SetCategory(productID, categoryID uuid.UUID) error
	ClearCategories(productID uuid.UUID) error
	Delete(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create persists the product together with its nested images and variants.
// GORM wraps the nested writes in a single transaction.
func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Preload("Images").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.
		Preload("Images").
		Preload("Categories").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("variants.name DESC")
		}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Preload("Images").
		Preload("Categories").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindActiveByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Preload("Images").
		Preload("Categories").
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ? AND products.is_active = ?", categoryID, true).
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) GetImages(productID uuid.UUID) (*ProductImages, error) {
	result := &ProductImages{
		Images:        []model.Image{},
		VariantImages: []model.Variant{},
	}

	if err := r.db.
		Select("id", "product_id", "src", "alt").
		Where("product_id = ?", productID).
		Find(&result.Images).Error; err != nil {
		return nil, err
	}

	if err := r.db.
		Select("id", "product_id", "image_src").
		Where("product_id = ?", productID).
		Find(&result.VariantImages).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *productRepo) UpdateScalars(id uuid.UUID, updates map[string]interface{}) error {
	res := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ToggleActive does a find-or-fail lookup before flipping the flag so an
// unknown id surfaces as ErrProductNotFound instead of a silent no-op.
func (r *productRepo) ToggleActive(id uuid.UUID, updatedBy string) (*model.Product, error) {
	var product model.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		product.IsActive = !product.IsActive
		product.UpdatedBy = updatedBy
		return tx.Model(&product).Updates(map[string]interface{}{
			"is_active":  product.IsActive,
			"updated_by": updatedBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) AddImage(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *productRepo) DeleteImage(productID, imageID uuid.UUID) error {
	res := r.db.Where("product_id = ?", productID).Delete(&model.Image{}, "id = ?", imageID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

// SetCategory clears every existing category link before attaching the new
// one. Effective membership is singular even though the schema allows many.
func (r *productRepo) SetCategory(productID, categoryID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var category model.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Model(&product).Association("Categories").Append(&category)
	})
}

func (r *productRepo) ClearCategories(productID uuid.UUID) error {
	var product model.Product
	if err := r.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return r.db.Model(&product).Association("Categories").Clear()
}

// Delete removes the product and its owned images and variants. Category
// links are cleared explicitly since soft delete never reaches the join table.
func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Select("Images", "Variants").Delete(&product).Error
	})
}
