package backend

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"procdocs/internal/config"
	"procdocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, token string) *Client {
	return New(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, StaticToken(token))
}

func TestGetRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/req-1", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id": "req-1", "number": "PR-1", "items": [{"name": "Hose", "unitPrice": "125.50"}]}`))
	}))
	defer srv.Close()

	req, err := newTestClient(srv, "tok-1").GetRequest(context.Background(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, "PR-1", req.Number)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 125.50, req.Items[0].UnitPrice)
}

func TestGetRequest_NoTokenOmitsAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.Write([]byte(`{"id": "req-1"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").GetRequest(context.Background(), "req-1")
	assert.NoError(t, err)
}

func TestGetRequest_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "t").GetRequest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRequest_BackendMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "t").GetRequest(context.Background(), "req-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestGetVendor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vendors/V1", r.URL.Path)
		w.Write([]byte(`{"name": "Apex Marine Ltd", "address": "3 Wharf Rd, Apapa"}`))
	}))
	defer srv.Close()

	v, err := newTestClient(srv, "t").GetVendor(context.Background(), "V1")
	require.NoError(t, err)

	assert.Equal(t, "V1", v.ID)
	assert.Equal(t, "Apex Marine Ltd", v.Name)
	assert.Equal(t, "3 Wharf Rd, Apapa", v.Address)
}

func TestFetchSignatureImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer srv.Close()

	uri, err := newTestClient(srv, "t").FetchSignatureImage(context.Background(), srv.URL+"/sig.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestFetchSignatureImage_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "t").FetchSignatureImage(context.Background(), srv.URL+"/gone.png")
	assert.Error(t, err)
}

func TestInlineSignatureImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{1, 2, 3})
	}))
	defer srv.Close()

	sigs := []model.Signature{
		{Name: "A", SignatureURL: srv.URL + "/sig/a.png"},
		{Name: "B", SignatureURL: srv.URL + "/sig/broken.png"},
		{Name: "C"},
	}

	got := newTestClient(srv, "t").InlineSignatureImages(context.Background(), sigs)
	require.Len(t, got, 3)

	assert.True(t, strings.HasPrefix(got[0].ImageData, "data:image/png;base64,"))
	// Failed fetch keeps the raw URL as fallback, no inlined data.
	assert.Empty(t, got[1].ImageData)
	assert.Equal(t, srv.URL+"/sig/broken.png", got[1].SignatureURL)
	assert.Empty(t, got[2].ImageData)

	// The input slice is untouched.
	assert.Empty(t, sigs[0].ImageData)
}

func TestUploadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/requests/req-1/requisition-files", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "PR-1_requisition.pdf", fh.Filename)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv, "tok-1").UploadDocument(
		context.Background(), "req-1", model.DocumentRequisition, "PR-1_requisition.pdf", []byte("%PDF-fake"))
	assert.NoError(t, err)
}

func TestUploadDocument_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "file too large"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv, "t").UploadDocument(
		context.Background(), "req-1", model.DocumentPurchaseOrder, "x.pdf", []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestUploadDocument_UnsupportedType(t *testing.T) {
	c := New(config.BackendConfig{BaseURL: "http://unused", Timeout: time.Second}, nil)
	err := c.UploadDocument(context.Background(), "req-1", model.DocumentOther, "x.pdf", nil)
	assert.Error(t, err)
}
