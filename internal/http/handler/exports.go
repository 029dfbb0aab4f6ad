package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"procdocs/internal/service"
)

// ListExports lists stored export records with limit & offset, optionally
// narrowed to one request via ?request_id=.
func ListExports(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListExports(c.UserContext(), c.Query("request_id"), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetExport returns one export record by ID.
func GetExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.GetExport(c.UserContext(), id)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// ExportDownloadURL returns a time-limited download URL for a stored export.
func ExportDownloadURL(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		expiryMin, err := strconv.Atoi(c.Query("expiry_min", "15"))
		if err != nil || expiryMin <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "invalid expiry_min")
		}
		url, err := svc.ExportDownloadURL(c.UserContext(), id, time.Duration(expiryMin)*time.Minute)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteExport removes a stored export by ID.
func DeleteExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.DeleteExport(c.UserContext(), id); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
