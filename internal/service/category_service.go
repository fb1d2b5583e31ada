package service

import (
	"fmt"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/ws"

	"go-catalog-admin/pkg/validator"

	"github.com/google/uuid"
)

type CategoryService interface {
	GetCategories() ([]model.Category, error)
	GetActiveCategoriesWithProducts() ([]model.Category, error)
	CreateCategory(input *model.CategoryInput, actor string) (*model.Category, error)
	UpdateCategory(id uuid.UUID, input *model.CategoryInput, actor string) (*model.Category, error)
	ToggleCategoryStatus(id uuid.UUID, actor string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	wsHub        *ws.Hub
}

func NewCategoryService(repo repository.CategoryRepository, hub *ws.Hub) CategoryService {
	return &categoryService{categoryRepo: repo, wsHub: hub}
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetActiveCategoriesWithProducts() ([]model.Category, error) {
	return s.categoryRepo.FindActiveWithProducts()
}

func (s *categoryService) CreateCategory(input *model.CategoryInput, actor string) (*model.Category, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	category := &model.Category{Name: input.Name, IsActive: true}
	category.CreatedBy = actor
	category.UpdatedBy = actor

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:    ws.EventCatalog,
		Action:  "category_created",
		Payload: map[string]interface{}{"id": category.ID, "name": category.Name},
		Message: fmt.Sprintf("%s created category '%s'", actor, category.Name),
	})

	return category, nil
}

func (s *categoryService) UpdateCategory(id uuid.UUID, input *model.CategoryInput, actor string) (*model.Category, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := s.categoryRepo.UpdateName(id, input.Name, actor); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:    ws.EventCatalog,
		Action:  "category_updated",
		Payload: map[string]interface{}{"id": category.ID, "name": category.Name},
	})

	return category, nil
}

func (s *categoryService) ToggleCategoryStatus(id uuid.UUID, actor string) (*model.Category, error) {
	category, err := s.categoryRepo.ToggleActive(id, actor)
	if err != nil {
		return nil, err
	}

	go s.wsHub.Notify(ws.Event{
		Type:    ws.EventCatalog,
		Action:  "category_status_toggled",
		Payload: map[string]interface{}{"id": category.ID, "is_active": category.IsActive},
	})

	return category, nil
}

func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	go s.wsHub.Notify(ws.Event{
		Type:    ws.EventCatalog,
		Action:  "category_deleted",
		Payload: map[string]interface{}{"id": id},
	})

	return nil
}
