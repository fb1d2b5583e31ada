package repository

import (
	"errors"

	"go-catalog-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVariantNotFound = errors.New("variant not found")

type VariantRepository interface {
	Create(variant *model.Variant) error
	UpdateNameAndImage(id uuid.UUID, name, imageSrc, updatedBy string) error
	Delete(id uuid.UUID) error
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(variant *model.Variant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepo) UpdateNameAndImage(id uuid.UUID, name, imageSrc, updatedBy string) error {
	res := r.db.Model(&model.Variant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"image_src":  imageSrc,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

// Delete fails loudly on an unknown id rather than silently affecting zero rows.
func (r *variantRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Variant{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}
