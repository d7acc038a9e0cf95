package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfintake/intakecli/internal/logging"
	"github.com/mfintake/intakecli/internal/models"
)

const requestIDHeader = "X-Request-Id"

// HTTPClient implements Client over the backend's REST surface.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("empty server address")
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// processInputResponse mirrors the intake endpoint's success body.
type processInputResponse struct {
	Success        bool           `json:"success"`
	FileID         string         `json:"file_id"`
	Filename       string         `json:"filename"`
	Classification map[string]any `json:"classification"`
	ExtractedData  map[string]any `json:"extracted_data"`
	Detail         string         `json:"detail"`
}

// detailResponse is the error body the backend produces for non-2xx statuses.
type detailResponse struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) ProcessInput(ctx context.Context, file models.SelectedFile, inputType models.InputType) (*models.UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := mw.WriteField("input_type", string(inputType)); err != nil {
		return nil, fmt.Errorf("writing input_type field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/frontend/process-input", &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp.StatusCode, data)
	}

	var pr processInputResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if !pr.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: pr.Detail}
	}

	c.log.Debug(ctx, "file processed", "file_id", pr.FileID, "filename", pr.Filename)

	return &models.UploadResult{
		FileID:         pr.FileID,
		Filename:       pr.Filename,
		Classification: pr.Classification,
		ExtractedData:  pr.ExtractedData,
	}, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	data, err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, profile models.Profile) error {
	_, err := c.doJSON(ctx, http.MethodPut, "/api/user/profile", profile)
	return err
}

func (c *HTTPClient) SaveDataset(ctx context.Context, fileID string, extracted map[string]any) error {
	payload := map[string]any{
		"file_id":        fileID,
		"extracted_data": extracted,
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/api/save-dataset", payload)
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, "/health", nil)
	return err
}

// doJSON issues a request with an optional JSON body and returns the raw
// response body for 2xx statuses. Non-2xx statuses become *APIError;
// failures to reach the server wrap ErrUnavailable.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *HTTPClient) apiError(status int, body []byte) error {
	var dr detailResponse
	_ = json.Unmarshal(body, &dr)
	return &APIError{StatusCode: status, Detail: dr.Detail}
}

func escapeQuotes(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}
