package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalog    service.CatalogService
	submission service.SubmissionService
}

func NewProductHandler(catalog service.CatalogService, submission service.SubmissionService) *ProductHandler {
	return &ProductHandler{catalog: catalog, submission: submission}
}

// Helpers to read the shell-token identity set by the auth middleware
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps repository sentinels onto HTTP statuses; anything else from
// a mutation is treated as a bad request, matching the validation-first flow.
func errStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrImageNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrVariantNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalog.GetProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(product)
}

func (h *ProductHandler) GetActiveProducts(c *fiber.Ctx) error {
	products, err := h.catalog.GetActiveProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetActiveProductsByCategory accepts a category uuid or the literal "all".
func (h *ProductHandler) GetActiveProductsByCategory(c *fiber.Ctx) error {
	products, err := h.catalog.GetActiveProductsByCategory(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategoryID) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProductImages(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	images, err := h.catalog.GetProductImages(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(images)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input model.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalog.CreateProduct(&input, getUserID(c))
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": fmt.Sprintf("Product '%s' created", product.Name),
		"data":    product,
	})
}

// SubmitProduct is the multipart submission workflow: form fields plus the
// image files, uploaded here rather than by the client.
func (h *ProductHandler) SubmitProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	sub := service.Submission{
		Fields: model.SubmissionFields{
			Name:        c.FormValue("name"),
			Price:       c.FormValue("price"),
			Weight:      c.FormValue("weight"),
			Description: c.FormValue("description"),
		},
	}

	if raw := c.FormValue("variants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sub.Fields.Variants); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid variants payload"})
		}
	}

	var closers []func()
	defer func() {
		for _, cleanup := range closers {
			cleanup()
		}
	}()

	for _, fh := range form.File["images"] {
		file, cleanup, err := openFormFile(fh)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		closers = append(closers, cleanup)
		sub.Images = append(sub.Images, file)
	}

	// Variant images are index-scoped form fields: variant_image_0, _1, ...
	for i := range sub.Fields.Variants {
		headers := form.File[fmt.Sprintf("variant_image_%d", i)]
		if len(headers) == 0 {
			sub.VariantImages = append(sub.VariantImages, nil)
			continue
		}
		file, cleanup, err := openFormFile(headers[0])
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		closers = append(closers, cleanup)
		sub.VariantImages = append(sub.VariantImages, file)
	}

	product, err := h.submission.Submit(c.UserContext(), &sub, getUserID(c))
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": fmt.Sprintf("Product '%s' created", product.Name),
		"data":    product,
	})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input model.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalog.UpdateProduct(id, &input, getUserID(c))
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) ToggleProductStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.ToggleProductStatus(id, getUserID(c))
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product status updated", "data": product})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(id, getUserID(c)); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) AddProductImage(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input model.AddImageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	image, err := h.catalog.AddProductImage(id, &input, getUserID(c))
	if err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Image added", "data": image})
}

func (h *ProductHandler) DeleteProductImage(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	imageID, err := parseUUID(c.Params("imageId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid image ID"})
	}

	if err := h.catalog.DeleteProductImage(productID, imageID); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Image removed"})
}

func (h *ProductHandler) SetProductCategory(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input model.AttachCategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.catalog.SetProductCategory(productID, input.CategoryID); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Category attached"})
}

func (h *ProductHandler) ClearProductCategories(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.ClearProductCategories(productID); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Categories cleared"})
}

// UpsertVariants applies the batch entry by entry; the response carries one
// result per entry so the client can see partial failures.
func (h *ProductHandler) UpsertVariants(c *fiber.Ctx) error {
	var entries []model.VariantBatchEntry
	if err := c.BodyParser(&entries); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	results := h.catalog.UpsertVariants(entries, getUserID(c))
	return c.JSON(fiber.Map{"data": results})
}

func (h *ProductHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}

	if err := h.catalog.DeleteVariant(id); err != nil {
		return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Variant removed"})
}
