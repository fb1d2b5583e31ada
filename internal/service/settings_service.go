package service

import (
	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/validator"
)

type SettingsService interface {
	SetBanner(input *model.BannerInput) error
	GetBanner() *string
}

type settingsService struct {
	settingRepo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{settingRepo: repo}
}

func (s *settingsService) SetBanner(input *model.BannerInput) error {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return validationError(errs)
	}
	return s.settingRepo.Upsert(model.SettingBanner, input.Value)
}

// GetBanner swallows read failures: a missing or unreadable banner row is a
// null banner, never an error to the storefront.
func (s *settingsService) GetBanner() *string {
	setting, err := s.settingRepo.FindByName(model.SettingBanner)
	if err != nil {
		return nil
	}
	return &setting.Value
}
