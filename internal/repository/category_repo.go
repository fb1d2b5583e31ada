package repository

import (
	"errors"

	"go-catalog-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	FindActiveWithProducts() ([]model.Category, error)
	UpdateName(id uuid.UUID, name, updatedBy string) error
	ToggleActive(id uuid.UUID, updatedBy string) (*model.Category, error)
	Delete(id uuid.UUID) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindActiveWithProducts lists active categories carrying their active
// products (with images) for the storefront navigation.
func (r *categoryRepo) FindActiveWithProducts() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.
		Preload("Products", "is_active = ?", true).
		Preload("Products.Images").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) UpdateName(id uuid.UUID, name, updatedBy string) error {
	res := r.db.Model(&model.Category{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepo) ToggleActive(id uuid.UUID, updatedBy string) (*model.Category, error) {
	var category model.Category
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		category.IsActive = !category.IsActive
		category.UpdatedBy = updatedBy
		return tx.Model(&category).Updates(map[string]interface{}{
			"is_active":  category.IsActive,
			"updated_by": updatedBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Model(&category).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
