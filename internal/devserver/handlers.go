package devserver

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mfintake/intakecli/internal/logging"
)

// allowedExtensions mirrors the backend's intake allow-list.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".json": {},
	".txt":  {},
	".eml":  {},
}

// Handler serves the intake wire contract over an in-memory store.
type Handler struct {
	store *Store
	log   logging.Logger
}

func NewHandler(store *Store, log logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Handler{store: store, log: log}
}

// RegisterRoutes attaches the backend surface the CLI depends on.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/frontend/process-input", h.HandleProcessInput)
	e.GET("/api/extract/:id", h.HandleExtract)
	e.POST("/api/save-dataset", h.HandleSaveDataset)
	e.GET("/api/user/profile", h.HandleGetProfile)
	e.PUT("/api/user/profile", h.HandleUpdateProfile)
	e.GET("/health", h.HandleHealth)
}

// detail reproduces the backend's error body shape.
func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

// HandleProcessInput accepts a multipart upload with a declared input type
// and returns a canned classification and extraction.
func (h *Handler) HandleProcessInput(c echo.Context) error {
	inputType := strings.ToLower(c.FormValue("input_type"))
	switch inputType {
	case "file", "json", "email":
	default:
		return detail(c, http.StatusBadRequest, "Invalid input type.")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return detail(c, http.StatusBadRequest, "No file provided.")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return detail(c, http.StatusBadRequest, "Unsupported file type.")
	}

	src, err := fh.Open()
	if err != nil {
		return detail(c, http.StatusInternalServerError, "Cannot open upload.")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "Cannot read upload.")
	}

	rec := &Record{
		FileID:         uuid.NewString(),
		Filename:       filepath.Base(fh.Filename),
		InputType:      inputType,
		Classification: classify(inputType),
		ExtractedData:  extract(inputType, content),
		UploadedAt:     time.Now().UTC(),
	}
	h.store.Put(rec)

	h.log.Info(c.Request().Context(), "processed upload",
		"file_id", rec.FileID, "filename", rec.Filename, "input_type", inputType)

	return c.JSON(http.StatusOK, map[string]any{
		"success":        true,
		"file_id":        rec.FileID,
		"filename":       rec.Filename,
		"classification": rec.Classification,
		"extracted_data": rec.ExtractedData,
	})
}

// HandleExtract returns the stored record for a processed upload.
func (h *Handler) HandleExtract(c echo.Context) error {
	rec, ok := h.store.Get(c.Param("id"))
	if !ok {
		return detail(c, http.StatusNotFound, "Not found")
	}
	return c.JSON(http.StatusOK, rec)
}

type saveDatasetRequest struct {
	FileID        string         `json:"file_id"`
	ExtractedData map[string]any `json:"extracted_data"`
}

func (h *Handler) HandleSaveDataset(c echo.Context) error {
	var req saveDatasetRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body.")
	}
	if !h.store.MarkSaved(req.FileID) {
		return detail(c, http.StatusNotFound, "File not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Saved to dataset."})
}

func (h *Handler) HandleGetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Profile())
}

func (h *Handler) HandleUpdateProfile(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return detail(c, http.StatusBadRequest, "Invalid request body.")
	}
	if p.Username == "" || p.Email == "" {
		return detail(c, http.StatusBadRequest, "Username and email are required.")
	}
	h.store.SetProfile(p)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Profile updated successfully"})
}

func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// classify is the dev stand-in for the real classifier agent.
func classify(inputType string) map[string]any {
	intent := map[string]string{
		"file":  "document",
		"json":  "structured_data",
		"email": "correspondence",
	}[inputType]
	return map[string]any{"intent": intent, "confidence": 1.0}
}

// extract is the dev stand-in for the real extraction pipeline.
func extract(inputType string, content []byte) map[string]any {
	switch inputType {
	case "json":
		var data map[string]any
		if err := json.Unmarshal(content, &data); err != nil {
			return map[string]any{"error": "invalid JSON", "size": len(content)}
		}
		return data
	case "email":
		return map[string]any{"body": string(content)}
	default:
		return map[string]any{"size": len(content)}
	}
}
