// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"procdocs/internal/model"
)

// ExportRepository defines data access for export records using SQL queries
// only. No business logic here — strictly persistence operations.
type ExportRepository interface {
	// Create inserts a new export record.
	Create(ctx context.Context, rec *model.ExportRecord) (*model.ExportRecord, error)

	// FindByID returns an export record by its ID.
	FindByID(ctx context.Context, id string) (*model.ExportRecord, error)

	// List returns a paginated list of export records and the total row count.
	// An empty requestID lists across all requests.
	List(ctx context.Context, requestID string, pq PageQuery) (*PageResult[model.ExportRecord], error)

	// Delete removes an export record by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
