package repository

import (
	"errors"

	"go-catalog-admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingRepository interface {
	Upsert(name, value string) error
	FindByName(name string) (*model.Setting, error)
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Upsert(name, value string) error {
	setting := model.Setting{Name: name, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

func (r *settingRepo) FindByName(name string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.First(&setting, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
