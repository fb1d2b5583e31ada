package main

import (
	"log"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/database"

	"github.com/joho/godotenv"
)

// Idempotent starter data: a banner and a couple of categories so a fresh
// install has something to show.
var defaultCategories = []string{"New Arrivals", "Sale"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Image{}, &model.Variant{}, &model.Category{}, &model.Setting{})

	settingRepo := repository.NewSettingRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	if _, err := settingRepo.FindByName(model.SettingBanner); err != nil {
		if err := settingRepo.Upsert(model.SettingBanner, "Welcome to the store"); err != nil {
			log.Printf("Warning: Failed to seed banner: %v", err)
		} else {
			log.Println("Banner seeded")
		}
	}

	existing, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to list categories: ", err)
	}
	if len(existing) > 0 {
		log.Println("Categories already present, nothing to do")
		return
	}

	for _, name := range defaultCategories {
		category := &model.Category{Name: name, IsActive: true}
		category.CreatedBy = "seed"
		category.UpdatedBy = "seed"
		if err := categoryRepo.Create(category); err != nil {
			log.Printf("Warning: Failed to seed category %q: %v", name, err)
		} else {
			log.Printf("Category %q seeded", name)
		}
	}
}
