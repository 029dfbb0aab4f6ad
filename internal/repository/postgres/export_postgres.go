package postgres

import (
	"context"
	"database/sql"

	"procdocs/internal/model"
	"procdocs/internal/repository"
)

// ExportPostgres is a PostgreSQL implementation of repository.ExportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ExportPostgres struct {
	db *sql.DB
}

// NewExportPostgres creates a new ExportPostgres repository.
func NewExportPostgres(db *sql.DB) *ExportPostgres {
	return &ExportPostgres{db: db}
}

var _ repository.ExportRepository = (*ExportPostgres)(nil)

const exportColumns = `id, request_id, document_name, document_type, filename, storage_path, size, content_type, pages, created_at`

func scanExport(row interface{ Scan(...any) error }) (*model.ExportRecord, error) {
	var r model.ExportRecord
	if err := row.Scan(
		&r.ID,
		&r.RequestID,
		&r.DocumentName,
		&r.DocumentType,
		&r.Filename,
		&r.StoragePath,
		&r.Size,
		&r.ContentType,
		&r.Pages,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new export row and returns the stored record.
func (r *ExportPostgres) Create(ctx context.Context, rec *model.ExportRecord) (*model.ExportRecord, error) {
	const q = `
		INSERT INTO exports (id, request_id, document_name, document_type, filename, storage_path, size, content_type, pages, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + exportColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.RequestID,
		rec.DocumentName,
		rec.DocumentType,
		rec.Filename,
		rec.StoragePath,
		rec.Size,
		rec.ContentType,
		rec.Pages,
		rec.CreatedAt,
	)
	return scanExport(row)
}

// FindByID fetches a single export record by its ID.
func (r *ExportPostgres) FindByID(ctx context.Context, id string) (*model.ExportRecord, error) {
	const q = `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`
	return scanExport(r.db.QueryRowContext(ctx, q, id))
}

// List returns export records using LIMIT/OFFSET pagination and a total
// count, optionally narrowed to one request.
func (r *ExportPostgres) List(ctx context.Context, requestID string, pq repository.PageQuery) (*repository.PageResult[model.ExportRecord], error) {
	var (
		total int
		rows  *sql.Rows
		err   error
	)
	if requestID != "" {
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports WHERE request_id = $1`, requestID).Scan(&total); err != nil {
			return nil, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+exportColumns+` FROM exports WHERE request_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
			requestID, pq.Limit, pq.Offset)
	} else {
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports`).Scan(&total); err != nil {
			return nil, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+exportColumns+` FROM exports ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
			pq.Limit, pq.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ExportRecord, 0)
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ExportRecord]{Items: items, Total: total}, nil
}

// Delete removes an export record by ID. It does not return an error if the
// row does not exist.
func (r *ExportPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM exports WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
