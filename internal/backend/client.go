// Package backend is the outbound client for the procurement REST API, the
// system of record this service renders documents from. All calls carry
// bearer auth via an injected TokenProvider; an empty token means the request
// goes out without an Authorization header (reads may still be allowed,
// uploads will be rejected server-side).
package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"golang.org/x/sync/errgroup"

	"procdocs/internal/config"
	"procdocs/internal/model"
)

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("resource not found")

// TokenProvider supplies the current bearer token. Injected rather than read
// from a global so the client is testable and token refresh stays the
// caller's concern.
type TokenProvider func() string

// StaticToken wraps a fixed token string as a TokenProvider.
func StaticToken(token string) TokenProvider {
	return func() string { return token }
}

// API is the surface of the procurement backend consumed by this service.
type API interface {
	// GetRequest fetches and normalizes a procurement request with its items,
	// signatures and attached files.
	GetRequest(ctx context.Context, id string) (*model.Request, error)

	// GetVendor resolves a vendor's display name and address by id.
	GetVendor(ctx context.Context, id string) (*model.Vendor, error)

	// FetchSignatureImage downloads a signature image and returns it as a
	// base64 data URI, so generated documents do not depend on live access to
	// the asset.
	FetchSignatureImage(ctx context.Context, url string) (string, error)

	// InlineSignatureImages resolves ImageData for every signature that has a
	// SignatureURL. Failures are swallowed; the raw URL stays as fallback.
	InlineSignatureImages(ctx context.Context, sigs []model.Signature) []model.Signature

	// UploadDocument posts a generated PDF to the request's per-document-type
	// file endpoint.
	UploadDocument(ctx context.Context, requestID string, docType model.DocumentType, filename string, data []byte) error
}

// Client implements API over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenProvider
}

var _ API = (*Client)(nil)

// New creates a backend client. A nil token provider behaves like an empty
// token.
func New(cfg config.BackendConfig, token TokenProvider) *Client {
	if token == nil {
		token = StaticToken("")
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		token:   token,
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/requests/"+id, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read request payload: %w", err)
	}
	return model.NormalizeRequest(raw)
}

func (c *Client) GetVendor(ctx context.Context, id string) (*model.Vendor, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/vendors/"+id, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch vendor %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var v model.Vendor
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode vendor payload: %w", err)
	}
	if v.ID == "" {
		v.ID = id
	}
	return &v, nil
}

func (c *Client) FetchSignatureImage(ctx context.Context, url string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch signature image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch signature image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read signature image: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// InlineSignatureImages fetches each signature's image concurrently and
// returns a copy of the slice with ImageData filled in where the fetch
// succeeded. A failed fetch leaves ImageData empty; rendering then falls back
// to the raw URL.
func (c *Client) InlineSignatureImages(ctx context.Context, sigs []model.Signature) []model.Signature {
	if len(sigs) == 0 {
		return sigs
	}
	out := make([]model.Signature, len(sigs))
	copy(out, sigs)

	g, ctx := errgroup.WithContext(ctx)
	for i := range out {
		if out[i].SignatureURL == "" {
			continue
		}
		i := i
		g.Go(func() error {
			uri, err := c.FetchSignatureImage(ctx, out[i].SignatureURL)
			if err == nil {
				out[i].ImageData = uri
			}
			// Best effort only.
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Per-document-type upload endpoints on the backend.
var uploadPaths = map[model.DocumentType]string{
	model.DocumentRequestForm:   "request-form-files",
	model.DocumentRequisition:   "requisition-files",
	model.DocumentPurchaseOrder: "purchase-order-files",
}

func (c *Client) UploadDocument(ctx context.Context, requestID string, docType model.DocumentType, filename string, data []byte) error {
	path, ok := uploadPaths[docType]
	if !ok {
		return fmt.Errorf("document type %q has no upload endpoint", docType)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/requests/"+requestID+"/"+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// apiError surfaces the backend's own error message when the response body
// carries one, with a generic status fallback.
func apiError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Errorf("backend: %s (HTTP %d)", payload.Message, resp.StatusCode)
	}
	return fmt.Errorf("backend: HTTP %d", resp.StatusCode)
}
