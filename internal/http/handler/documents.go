package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"procdocs/internal/docmodel"
	"procdocs/internal/render"
	"procdocs/internal/service"
)

// buildOptions parses the document derivation flags shared by the document
// endpoints. Vendor split and purchase-order visibility both default to on;
// purchase orders are still withheld by the service until the request has
// passed manager approval.
func buildOptions(c *fiber.Ctx) (docmodel.BuildOptions, string) {
	split, err := strconv.ParseBool(c.Query("split", "true"))
	if err != nil {
		return docmodel.BuildOptions{}, "split"
	}
	po, err := strconv.ParseBool(c.Query("po", "true"))
	if err != nil {
		return docmodel.BuildOptions{}, "po"
	}
	return docmodel.BuildOptions{VendorSplit: split, ShowPurchaseOrder: po}, ""
}

// mapServiceError translates service sentinel errors into the standard error
// envelope.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrRequestNotFound):
		return writeError(c, fiber.StatusNotFound, "REQUEST_NOT_FOUND", "request not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found for request")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "export not found")
	case errors.Is(err, service.ErrSnapshotInvalid):
		return writeError(c, fiber.StatusBadRequest, "INVALID_IMAGE", "snapshot image cannot be decoded")
	case errors.Is(err, render.ErrUnsupportedType):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNSUPPORTED_DOCUMENT", "document has no printable layout; download the original file")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ListRequestDocuments lists the printable documents derivable from one
// procurement request.
func ListRequestDocuments(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, bad := buildOptions(c)
		if bad != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", fmt.Sprintf("invalid %s flag", bad))
		}
		docs, err := svc.Documents(c.UserContext(), c.Params("id"), opts)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
	}
}

// PreviewDocument returns the renderable layout for one named document.
func PreviewDocument(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, bad := buildOptions(c)
		if bad != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", fmt.Sprintf("invalid %s flag", bad))
		}
		layout, err := svc.Preview(c.UserContext(), c.Params("id"), c.Params("name"), opts)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(layout)
	}
}

// DownloadDocumentPDF composes and streams the PDF for one named document.
func DownloadDocumentPDF(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, bad := buildOptions(c)
		if bad != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", fmt.Sprintf("invalid %s flag", bad))
		}
		file, err := svc.ExportPDF(c.UserContext(), c.Params("id"), c.Params("name"), opts)
		if err != nil {
			return mapServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
		return c.Send(file.Data)
	}
}

// ExportDocument composes a PDF and delivers it according to mode:
// store (object storage + DB record), backend (attach to the request on the
// procurement backend) or email.
func ExportDocument(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, bad := buildOptions(c)
		if bad != "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", fmt.Sprintf("invalid %s flag", bad))
		}
		id, name := c.Params("id"), c.Params("name")

		switch mode := c.Query("mode", "store"); mode {
		case "store":
			rec, err := svc.ExportAndStore(c.UserContext(), id, name, opts)
			if err != nil {
				return mapServiceError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(rec)
		case "backend":
			file, err := svc.ExportToBackend(c.UserContext(), id, name, opts)
			if err != nil {
				return mapServiceError(c, err)
			}
			return c.JSON(file)
		case "email":
			file, err := svc.EmailExport(c.UserContext(), id, name, opts)
			if err != nil {
				return mapServiceError(c, err)
			}
			return c.JSON(file)
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_MODE", "mode must be store, backend or email")
		}
	}
}
