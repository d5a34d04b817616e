package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

// APIError is the error object the Graph API returns in its response body.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// Client is a thin wrapper over the Facebook Graph API shared by the
// Facebook and Instagram publishers and the connection exchange.
type Client struct {
	baseURL string
	version string
	http    *http.Client
	logger  logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *Client {
	return &Client{
		baseURL: strings.TrimRight(opts.Config.Facebook.GraphBaseURL, "/"),
		version: opts.Config.Facebook.GraphVersion,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  opts.Logger.WithComponent("GraphClient"),
	}
}

// NewWithBaseURL builds a client against an explicit endpoint. Tests point it
// at an httptest server.
func NewWithBaseURL(baseURL, version string, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  log.WithComponent("GraphClient"),
	}
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimLeft(path, "/"))
}

// GetJSON performs a GET against a Graph path and decodes the response into
// out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// PostForm performs a form-encoded POST against a Graph path.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// PostMultipart uploads a binary part (fileField/fileName) together with
// plain form fields, as the /photos endpoint requires.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write multipart field %s: %w", k, err)
		}
	}

	fw, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("failed to create multipart file part: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("failed to write multipart payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// Delete performs a DELETE against a Graph path.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	endpoint := c.endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("Failed to close graph response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read graph response: %w", err)
	}

	if apiErr := extractAPIError(body); apiErr != nil {
		c.logger.Debug("Graph API returned an error",
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"message", apiErr.Message)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode graph response: %w", err)
	}
	return nil
}

// extractAPIError pulls the {"error":{...}} envelope out of a response body,
// if present.
func extractAPIError(body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error
	}
	return nil
}
