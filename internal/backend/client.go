// Package backend is the typed client for the REST API that owns all
// business logic. Every fetch and mutation this site performs goes through
// the one request wrapper here, so bearer injection, timeouts and 401
// handling are not re-implemented per page.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"etiket-museum/internal/config"
	"etiket-museum/internal/logger"
)

// ErrSessionExpired is returned for any 401 from the backend. The web layer
// reacts by clearing the session cookie and sending the user to /login.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

func New(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  log,
	}
}

// UploadsBase is the root URL for server-hosted photos.
func (c *Client) UploadsBase() string {
	return c.baseURL + "/uploads"
}

// PhotoURL composes the public URL of a server-hosted upload.
func (c *Client) PhotoURL(filename string) string {
	if filename == "" {
		return ""
	}
	return c.baseURL + "/uploads/" + filename
}

// GoogleAuthURL is where the login page sends the browser to start the
// OAuth flow. The backend completes it and redirects back with a token.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/api/auth/google"
}

// doJSON issues one JSON request. A non-nil payload is sent as the body;
// a non-nil out receives the decoded response.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogBackend(method, path, resp.StatusCode)
	return c.handle(resp, out)
}

// doMultipart issues a multipart form request, used by the venue forms
// which carry a photo upload.
func (c *Client) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, fileField, fileName string, file []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if len(file) > 0 {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file); err != nil {
			return fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogBackend(method, path, resp.StatusCode)
	return c.handle(resp, out)
}

// doRaw issues a request and returns the raw body and content type, used
// to pass backend file downloads through to the browser.
func (c *Client) doRaw(ctx context.Context, method, path, token string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.LogBackend(method, path, resp.StatusCode)
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, "", ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// handle maps the response to an error or decodes it into out. The backend
// reports errors as {"message": ...} or, on some endpoints, {"msg": ...}.
func (c *Client) handle(resp *http.Response, out interface{}) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
			Msg     string `json:"msg"`
		}
		message := http.StatusText(resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			if envelope.Message != "" {
				message = envelope.Message
			} else if envelope.Msg != "" {
				message = envelope.Msg
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
