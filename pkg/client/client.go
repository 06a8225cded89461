// Package client talks to the CV studio HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artem13815/cvstudio/pkg/cv"
)

const maxErrorBody = 64 << 10

// ErrMalformedResponse is returned when a 2xx answer cannot be decoded.
var ErrMalformedResponse = errors.New("malformed server response")

// APIError is a non-2xx answer. Detail comes from the {"detail": ...} body
// when the server sent one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

type ParseResponse struct {
	Source        string              `json:"source"`
	Language      string              `json:"language"`
	RawText       string              `json:"raw_text"`
	CV            cv.Record           `json:"cv"`
	DebugSections map[string][]string `json:"debug_sections"`
}

type SaveRequest struct {
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Language string    `json:"language"`
	RawText  string    `json:"raw_text"`
	CV       cv.Record `json:"cv"`
}

type ExportRequest struct {
	CV       cv.Record `json:"cv"`
	Template string    `json:"template"`
	Title    string    `json:"title"`
	Language string    `json:"language,omitempty"`
}

type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	httpDo  *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpDo = h
	return c
}

// Parse uploads a document to /api/parse-cv.
func (c *Client) Parse(ctx context.Context, filename string, data []byte, languageHint string) (ParseResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return ParseResponse{}, err
	}
	if _, err := part.Write(data); err != nil {
		return ParseResponse{}, err
	}
	if languageHint != "" {
		if err := w.WriteField("language_hint", languageHint); err != nil {
			return ParseResponse{}, err
		}
	}
	if err := w.Close(); err != nil {
		return ParseResponse{}, err
	}

	var out ParseResponse
	err = c.do(ctx, http.MethodPost, "/api/parse-cv", w.FormDataContentType(), &body, &out)
	return out, err
}

func (c *Client) Save(ctx context.Context, req SaveRequest) (cv.Summary, error) {
	var out cv.Summary
	err := c.doJSON(ctx, http.MethodPost, "/api/save-cv", req, &out)
	return out, err
}

func (c *Client) List(ctx context.Context) ([]cv.Summary, error) {
	var out []cv.Summary
	err := c.doJSON(ctx, http.MethodGet, "/api/cv-list", nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id string) (cv.Saved, error) {
	var out cv.Saved
	err := c.doJSON(ctx, http.MethodGet, "/api/cv/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) Templates(ctx context.Context) ([]Template, error) {
	var out []Template
	err := c.doJSON(ctx, http.MethodGet, "/api/templates", nil, &out)
	return out, err
}

// Preview returns the HTML fragment of a CV rendered with a template.
func (c *Client) Preview(ctx context.Context, req ExportRequest) (string, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/api/preview", req)
	return string(raw), err
}

// ExportPDF returns the PDF bytes. On failure no bytes are returned and the
// error carries the server's detail message.
func (c *Client) ExportPDF(ctx context.Context, req ExportRequest) ([]byte, error) {
	return c.doRaw(ctx, http.MethodPost, "/api/export-pdf", req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, in any) ([]byte, error) {
	var raw []byte
	if err := c.doJSON(ctx, method, path, in, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else if text := strings.TrimSpace(string(data)); text != "" && len(text) <= 200 {
		apiErr.Detail = text
	}
	return apiErr
}
