package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfintake/intakecli/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestNewHTTPClient_NormalizesAddress(t *testing.T) {
	c, err := NewHTTPClient("localhost:8000/", time.Second, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.baseURL)

	_, err = NewHTTPClient("", time.Second, nil)
	require.Error(t, err)
}

func TestProcessInput_SendsMultipartAndDecodesResult(t *testing.T) {
	var gotInputType, gotFilename, gotPartType, gotRequestID string
	var gotContent []byte

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/frontend/process-input", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-Id")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotInputType = r.FormValue("input_type")

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFilename = fh.Filename
		gotPartType = fh.Header.Get("Content-Type")
		gotContent, err = io.ReadAll(f)
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"file_id":        "abc123",
			"filename":       fh.Filename,
			"classification": map[string]any{"intent": "invoice"},
		})
	}))

	file := models.SelectedFile{Name: "scan.pdf", MimeType: "application/pdf", Content: []byte("%PDF-1.4")}
	res, err := c.ProcessInput(context.Background(), file, models.InputTypeFile)
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.FileID)
	assert.Equal(t, "scan.pdf", res.Filename)
	assert.Equal(t, "invoice", res.Classification["intent"])

	assert.Equal(t, "file", gotInputType)
	assert.Equal(t, "scan.pdf", gotFilename)
	assert.Equal(t, "application/pdf", gotPartType)
	assert.Equal(t, []byte("%PDF-1.4"), gotContent)
	assert.NotEmpty(t, gotRequestID)
}

func TestProcessInput_DefaultsPartContentType(t *testing.T) {
	var gotPartType string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, fh, err := r.FormFile("file")
		require.NoError(t, err)
		gotPartType = fh.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "file_id": "x"})
	}))

	file := models.SelectedFile{Name: "thread.eml", Content: []byte("From: a@b")}
	_, err := c.ProcessInput(context.Background(), file, models.InputTypeEmail)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", gotPartType)
}

func TestProcessInput_SuccessFalseBecomesAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "detail": "bad pdf"})
	}))

	_, err := c.ProcessInput(context.Background(), models.SelectedFile{Name: "a.pdf"}, models.InputTypeFile)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad pdf", apiErr.Detail)
}

func TestProcessInput_Non2xxDetailBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"detail": "Unsupported file type."})
	}))

	_, err := c.ProcessInput(context.Background(), models.SelectedFile{Name: "a.pdf"}, models.InputTypeFile)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Unsupported file type.", apiErr.Detail)
}

func TestProcessInput_TransportFailureWrapsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	c, err := NewHTTPClient(srv.URL, 500*time.Millisecond, nil)
	require.NoError(t, err)

	_, err = c.ProcessInput(context.Background(), models.SelectedFile{Name: "a.pdf"}, models.InputTypeFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGetProfile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/user/profile", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"username": "Admin User",
			"email":    "admin@example.com",
			"role":     "Administrator",
		})
	}))

	p, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Admin User", p.Username)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.Equal(t, "Administrator", p.Role)
}

func TestUpdateProfile_SendsFullRecord(t *testing.T) {
	var got models.Profile

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/user/profile", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := c.UpdateProfile(context.Background(), models.Profile{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUpdateProfile_ServerErrorBecomesAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"detail": "boom"})
	}))

	err := c.UpdateProfile(context.Background(), models.Profile{Username: "alice"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Detail)
}

func TestSaveDataset(t *testing.T) {
	var got map[string]any

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/save-dataset", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Saved to dataset."})
	}))

	err := c.SaveDataset(context.Background(), "abc123", map[string]any{"total": 42.0})
	require.NoError(t, err)
	assert.Equal(t, "abc123", got["file_id"])
	assert.Equal(t, map[string]any{"total": 42.0}, got["extracted_data"])
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"status": "healthy"})
	}))

	require.NoError(t, c.Ping(context.Background()))
}

func TestExtractPath(t *testing.T) {
	assert.Equal(t, "/api/extract/abc123", ExtractPath("abc123"))
}
