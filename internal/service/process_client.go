package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"pdf-upload-form/internal/domain"
)

// ProcessClient posts documents to the process endpoint.
type ProcessClient struct {
	endpoint       string
	healthEndpoint string
	httpClient     *http.Client
	logger         domain.Logger
}

// NewProcessClient creates a client for endpoint. The client has no timeout;
// a submission lasts as long as the caller's context allows.
func NewProcessClient(endpoint, healthEndpoint string, logger domain.Logger) *ProcessClient {
	return NewProcessClientWithHTTP(endpoint, healthEndpoint, &http.Client{}, logger)
}

// NewProcessClientWithHTTP is NewProcessClient with a caller supplied http.Client.
func NewProcessClientWithHTTP(endpoint, healthEndpoint string, httpClient *http.Client, logger domain.Logger) *ProcessClient {
	return &ProcessClient{
		endpoint:       endpoint,
		healthEndpoint: healthEndpoint,
		httpClient:     httpClient,
		logger:         logger,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Send issues exactly one multipart POST carrying file under the "file" part.
// Any status code is returned as a response; only failures to get one are errors.
func (c *ProcessClient) Send(ctx context.Context, file *domain.SelectedFile) (*domain.ProcessResponse, error) {
	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Process endpoint answered",
		"endpoint", c.endpoint,
		"status", resp.StatusCode,
		"bytes", len(payload),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return &domain.ProcessResponse{StatusCode: resp.StatusCode, Body: payload}, nil
}

func encodeMultipart(file *domain.SelectedFile) (*bytes.Buffer, string, error) {
	if err := file.Validate(); err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partType := file.Hint.DetectedMIME
	if partType == "" {
		partType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		domain.FileFieldName, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", partType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// Ping checks the upstream health endpoint. A missing endpoint is not an error.
func (c *ProcessClient) Ping(ctx context.Context) error {
	if c.healthEndpoint == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthEndpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
