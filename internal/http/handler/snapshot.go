package handler

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"procdocs/internal/service"
)

// ComposeSnapshot paginates a client-captured page image into an A4 PDF and
// streams it back. The image arrives as multipart/form-data, field name:
// image; an optional name field controls the download filename.
func ComposeSnapshot(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_REQUIRED", "image is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_OPEN_ERROR", "cannot open uploaded image")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_READ_ERROR", "cannot read uploaded image")
		}

		file, err := svc.ComposeSnapshotPDF(c.UserContext(), c.FormValue("name"), data)
		if err != nil {
			return mapServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
		return c.Send(file.Data)
	}
}
