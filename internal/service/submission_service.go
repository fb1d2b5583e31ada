package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/storage"
	"go-catalog-admin/pkg/validator"
)

var (
	ErrNoProductImage      = errors.New("at least one product image is required")
	ErrVariantImageMissing = errors.New("every variant requires an image")
	ErrUnsupportedFileType = errors.New("unsupported file type, images only")
)

// allowed upload content types, same set the catalog UI accepts
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// File is one uploadable form file, already opened by the handler.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Submission is a full product submission: scalar fields, the initial image
// batch, and one image per variant (index-aligned with Fields.Variants).
type Submission struct {
	Fields        model.SubmissionFields
	Images        []*File
	VariantImages []*File
}

type SubmissionService interface {
	Submit(ctx context.Context, sub *Submission, actor string) (*model.Product, error)
	UploadImage(ctx context.Context, file *File) (string, error)
}

type submissionService struct {
	uploader storage.Uploader
	rewriter *storage.Rewriter
	catalog  CatalogService
}

func NewSubmissionService(uploader storage.Uploader, rewriter *storage.Rewriter, catalog CatalogService) SubmissionService {
	return &submissionService{
		uploader: uploader,
		rewriter: rewriter,
		catalog:  catalog,
	}
}

// UploadImage pushes one file to object storage and returns its CDN URL.
// The raw storage URL never leaves this package.
func (s *submissionService) UploadImage(ctx context.Context, file *File) (string, error) {
	if !allowedImageTypes[file.ContentType] {
		return "", ErrUnsupportedFileType
	}

	key := storage.ObjectKey("products", file.Name)
	rawURL, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return s.rewriter.Rewrite(rawURL)
}

// Submit runs the whole creation workflow: validate the fields, upload each
// file one at a time (each awaited before the next starts), rewrite every
// URL onto the CDN host, then hand the finalized payload to the catalog.
// There is no rollback: files uploaded before a later failure stay in the
// bucket, the product is simply not created.
func (s *submissionService) Submit(ctx context.Context, sub *Submission, actor string) (*model.Product, error) {
	// 1. Validation first, nothing is uploaded for an invalid form
	if errs := validator.ValidateStruct(&sub.Fields); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if len(sub.Images) == 0 {
		return nil, ErrNoProductImage
	}
	if len(sub.VariantImages) != len(sub.Fields.Variants) {
		return nil, ErrVariantImageMissing
	}
	for _, f := range sub.VariantImages {
		if f == nil {
			return nil, ErrVariantImageMissing
		}
	}

	// 2. Product images, sequential
	imageURLs := make([]string, 0, len(sub.Images))
	for _, file := range sub.Images {
		url, err := s.UploadImage(ctx, file)
		if err != nil {
			return nil, err
		}
		imageURLs = append(imageURLs, url)
	}

	// 3. Variant images, index-scoped to their variant row
	variants := make([]model.VariantInput, 0, len(sub.Fields.Variants))
	for i, field := range sub.Fields.Variants {
		url, err := s.UploadImage(ctx, sub.VariantImages[i])
		if err != nil {
			return nil, err
		}
		variants = append(variants, model.VariantInput{Name: field.Name, ImageSrc: url})
	}

	// 4. Finalized payload to the catalog
	input := &model.CreateProductInput{
		Name:        sub.Fields.Name,
		Price:       sub.Fields.Price,
		Weight:      sub.Fields.Weight,
		Description: sub.Fields.Description,
		Images:      imageURLs,
		Variants:    variants,
	}
	return s.catalog.CreateProduct(input, actor)
}
