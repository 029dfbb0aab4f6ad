package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"procdocs/internal/backend"
	"procdocs/internal/docmodel"
	"procdocs/internal/mailer"
	"procdocs/internal/model"
	"procdocs/internal/pdf"
	"procdocs/internal/render"
	"procdocs/internal/repository"
	"procdocs/internal/storage"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("export not found")
	ErrRequestNotFound  = errors.New("request not found")
	ErrDocumentNotFound = errors.New("document not found for request")
	ErrSnapshotInvalid  = errors.New("snapshot image cannot be decoded")
)

// ExportFile is a composed PDF ready to be sent to a client, object storage,
// the procurement backend, or email.
type ExportFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Pages       int    `json:"pages"`
	Data        []byte `json:"-"`
}

// ExportListResult is the service-level DTO for paginated export records.
type ExportListResult struct {
	Items []model.ExportRecord `json:"data"`
	Total int                  `json:"total"`
}

// ExportService defines the use cases for turning procurement requests into
// printable documents and recording the artifacts.
type ExportService interface {
	// Documents lists the printable documents derivable from a request.
	Documents(ctx context.Context, requestID string, opts docmodel.BuildOptions) ([]model.DocumentDescriptor, error)

	// Preview builds the renderable layout for one named document, with the
	// vendor resolved and signature images inlined.
	Preview(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*render.Layout, error)

	// ExportPDF composes a paginated PDF for one named document.
	ExportPDF(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error)

	// ExportAndStore composes a PDF, uploads it to object storage and records
	// it. Storage is rolled back if the record cannot be saved.
	ExportAndStore(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*model.ExportRecord, error)

	// ExportToBackend composes a PDF and attaches it to the request on the
	// procurement backend.
	ExportToBackend(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error)

	// EmailExport composes a PDF and mails it to the configured recipients.
	EmailExport(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error)

	// ComposeSnapshotPDF paginates a client-captured page image into an A4
	// PDF. This is the alternate path for documents whose on-screen rendering
	// must be preserved exactly.
	ComposeSnapshotPDF(ctx context.Context, name string, img []byte) (*ExportFile, error)

	// ListExports returns stored export records, optionally narrowed to one
	// request.
	ListExports(ctx context.Context, requestID string, limit, offset int) (*ExportListResult, error)

	// GetExport returns a single export record by ID.
	GetExport(ctx context.Context, id string) (*model.ExportRecord, error)

	// ExportDownloadURL returns a time-limited download URL for a stored
	// export.
	ExportDownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// DeleteExport removes a stored export from storage and the database.
	DeleteExport(ctx context.Context, id string) error
}

// exportService is a concrete implementation of ExportService.
type exportService struct {
	api   backend.API
	store storage.Storage
	repo  repository.ExportRepository
	mail  mailer.Composer
}

// NewExportService constructs a new ExportService.
func NewExportService(api backend.API, store storage.Storage, repo repository.ExportRepository, mail mailer.Composer) ExportService {
	return &exportService{api: api, store: store, repo: repo, mail: mail}
}

func (s *exportService) Documents(ctx context.Context, requestID string, opts docmodel.BuildOptions) ([]model.DocumentDescriptor, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return docmodel.BuildDocuments(req, opts), nil
}

func (s *exportService) Preview(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*render.Layout, error) {
	req, desc, err := s.findDocument(ctx, requestID, name, opts)
	if err != nil {
		return nil, err
	}
	return s.layoutFor(ctx, req, desc)
}

func (s *exportService) ExportPDF(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error) {
	req, desc, err := s.findDocument(ctx, requestID, name, opts)
	if err != nil {
		return nil, err
	}
	return s.composeFile(ctx, req, desc)
}

// composeFile renders one descriptor into a finished PDF.
func (s *exportService) composeFile(ctx context.Context, req *model.Request, desc model.DocumentDescriptor) (*ExportFile, error) {
	layout, err := s.layoutFor(ctx, req, desc)
	if err != nil {
		return nil, err
	}
	data, pages, err := pdf.Compose(layout)
	if err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}
	return &ExportFile{
		Filename:    exportFilename(req.Number, desc.Name),
		ContentType: "application/pdf",
		Pages:       pages,
		Data:        data,
	}, nil
}

func (s *exportService) ExportAndStore(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*model.ExportRecord, error) {
	req, desc, err := s.findDocument(ctx, requestID, name, opts)
	if err != nil {
		return nil, err
	}
	file, err := s.composeFile(ctx, req, desc)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("exports", id+".pdf"))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(file.Data), storage.PutObjectOptions{
		Size:        int64(len(file.Data)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"request-id":    req.ID,
			"document-name": desc.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.ExportRecord{
		ID:           id,
		RequestID:    req.ID,
		DocumentName: desc.Name,
		DocumentType: desc.Type,
		Filename:     file.Filename,
		StoragePath:  objInfo.Key,
		Size:         objInfo.Size,
		ContentType:  "application/pdf",
		Pages:        file.Pages,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *exportService) ExportToBackend(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error) {
	req, desc, err := s.findDocument(ctx, requestID, name, opts)
	if err != nil {
		return nil, err
	}
	file, err := s.composeFile(ctx, req, desc)
	if err != nil {
		return nil, err
	}
	if err := s.api.UploadDocument(ctx, req.ID, desc.Type, file.Filename, file.Data); err != nil {
		return nil, fmt.Errorf("upload to backend: %w", err)
	}
	return file, nil
}

func (s *exportService) EmailExport(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*ExportFile, error) {
	req, desc, err := s.findDocument(ctx, requestID, name, opts)
	if err != nil {
		return nil, err
	}
	file, err := s.composeFile(ctx, req, desc)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("%s for %s", desc.DisplayName, req.Number)
	body := fmt.Sprintf("Please find attached the %s for request %s (%s).", desc.DisplayName, req.Number, req.Title)
	if err := s.mail.Compose(ctx, subject, body, []mailer.Attachment{{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}}); err != nil {
		return nil, fmt.Errorf("compose mail: %w", err)
	}
	return file, nil
}

func (s *exportService) ComposeSnapshotPDF(ctx context.Context, name string, img []byte) (*ExportFile, error) {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, ErrSnapshotInvalid
	}
	data, pages, err := pdf.ComposeFromImage(src)
	if err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}
	if name == "" {
		name = "snapshot"
	}
	return &ExportFile{
		Filename:    sanitizeFilename(name) + ".pdf",
		ContentType: "application/pdf",
		Pages:       pages,
		Data:        data,
	}, nil
}

func (s *exportService) ListExports(ctx context.Context, requestID string, limit, offset int) (*ExportListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, requestID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ExportListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *exportService) GetExport(ctx context.Context, id string) (*model.ExportRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *exportService) ExportDownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	rec, err := s.GetExport(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, rec.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

// DeleteExport removes the object from storage first, then the record. A
// failed storage delete keeps the DB row so the object is not orphaned.
func (s *exportService) DeleteExport(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *exportService) getRequest(ctx context.Context, requestID string) (*model.Request, error) {
	if requestID == "" {
		return nil, ErrIDRequired
	}
	req, err := s.api.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// findDocument resolves one descriptor by its stable name.
func (s *exportService) findDocument(ctx context.Context, requestID, name string, opts docmodel.BuildOptions) (*model.Request, model.DocumentDescriptor, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, model.DocumentDescriptor{}, err
	}
	for _, d := range docmodel.BuildDocuments(req, opts) {
		if d.Name == name {
			return req, d, nil
		}
	}
	return nil, model.DocumentDescriptor{}, ErrDocumentNotFound
}

// layoutFor resolves the vendor and inlines signature images before building
// the layout. Vendor lookup failures fall back to the names already embedded
// in the descriptor.
func (s *exportService) layoutFor(ctx context.Context, req *model.Request, desc model.DocumentDescriptor) (*render.Layout, error) {
	var vendor *model.Vendor
	if desc.VendorID != "" {
		if v, err := s.api.GetVendor(ctx, desc.VendorID); err == nil {
			vendor = v
		}
	}
	req.Signatures = s.api.InlineSignatureImages(ctx, req.Signatures)
	return render.Build(desc, req, vendor)
}

// exportFilename builds "<number>_<name>.pdf" with unsafe characters
// stripped; request numbers commonly contain slashes.
func exportFilename(number, name string) string {
	if number == "" {
		number = "request"
	}
	return fmt.Sprintf("%s_%s.pdf", sanitizeFilename(number), sanitizeFilename(name))
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '-'
		case ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)
}
