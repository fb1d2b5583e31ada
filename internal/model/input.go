package model

import "github.com/google/uuid"

// CreateProductInput is the finalized creation payload. Image URLs are
// expected to already live on the CDN host (the submission workflow or the
// upload endpoint produced them).
type CreateProductInput struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	Price       string         `json:"price" validate:"required,min=1,max=100,decimal_string"`
	Weight      string         `json:"weight" validate:"required,min=1,max=100,decimal_string"`
	Description string         `json:"description" validate:"required"`
	Images      []string       `json:"images" validate:"required,min=1,dive,required"`
	Variants    []VariantInput `json:"variants" validate:"dive"`
}

type VariantInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	ImageSrc string `json:"image_src" validate:"required"`
}

// UpdateProductInput carries scalar fields only. Images, variants and
// categories have their own endpoints.
type UpdateProductInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Price       string `json:"price" validate:"required,min=1,max=100,decimal_string"`
	Weight      string `json:"weight" validate:"required,min=1,max=100,decimal_string"`
	Description string `json:"description" validate:"required"`
}

type AddImageInput struct {
	Src string `json:"src" validate:"required"`
	Alt string `json:"alt"`
}

type AttachCategoryInput struct {
	CategoryID uuid.UUID `json:"category_id" validate:"uuid_required"`
}

// VariantBatchEntry drives the batched variant upsert. Entries are processed
// independently: a failed entry does not roll back the ones before it.
type VariantBatchEntry struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	ImageSrc  string    `json:"image_src" validate:"required"`
	Add       bool      `json:"add"`
}

type CategoryInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type BannerInput struct {
	Value string `json:"value" validate:"required"`
}

// SubmissionFields are the scalar fields of the multipart product submission.
// Files (product images, per-variant images) travel alongside in the form.
type SubmissionFields struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	Price       string         `json:"price" validate:"required,min=1,max=100,decimal_string"`
	Weight      string         `json:"weight" validate:"required,min=1,max=100,decimal_string"`
	Description string         `json:"description" validate:"required"`
	Variants    []VariantField `json:"variants" validate:"dive"`
}

type VariantField struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
