package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps a single image file at 10MB.
const maxUploadSize = 10 * 1024 * 1024

type UploadHandler struct {
	submission service.SubmissionService
}

func NewUploadHandler(submission service.SubmissionService) *UploadHandler {
	return &UploadHandler{submission: submission}
}

// Upload pushes one file to object storage and returns its CDN URL. Used for
// appending images to an existing product and for single variant images.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing 'file' form field"})
	}

	file, cleanup, err := openFormFile(fh)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	defer cleanup()

	url, err := h.submission.UploadImage(c.UserContext(), file)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to upload file"})
	}

	return c.Status(201).JSON(fiber.Map{"url": url})
}

// openFormFile opens a multipart file, enforces the size cap and sniffs the
// real content type from the first bytes rather than trusting the header.
func openFormFile(fh *multipart.FileHeader) (*service.File, func(), error) {
	if fh.Size > maxUploadSize {
		return nil, nil, errors.New("file exceeds the 10MB limit")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, errors.New("failed to open uploaded file")
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, nil, errors.New("failed to read uploaded file")
	}

	file := &service.File{
		Name:        fh.Filename,
		ContentType: http.DetectContentType(head[:n]),
		Reader:      io.MultiReader(bytes.NewReader(head[:n]), f),
	}
	return file, func() { f.Close() }, nil
}
