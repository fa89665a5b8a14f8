package api

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

	"go.uber.org/zap"
)

// Client wraps outbound calls to the PolicyDesk API at a fixed base URL.
// There is no retry or backoff: every failure is returned to the caller as is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт в тестах).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout задаёт таймаут запроса. Ноль оставляет поведение транспорта по умолчанию.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger задаёт логгер для отладочных записей о запросах.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for baseURL (scheme://host[:port], trailing slash optional).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает базовый адрес API.
func (c *Client) BaseURL() string { return c.baseURL }

// FilePart — файл для multipart-загрузки.
type FilePart struct {
	Name string
	Data []byte
}

// GetJSON sends a GET request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON sends a JSON POST request.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, payload, out)
}

// PutJSON sends a JSON PUT request.
func (c *Client) PutJSON(ctx context.Context, path string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, payload, out)
}

// DeleteJSON sends a DELETE request; payload may be nil or a JSON body naming the target.
func (c *Client) DeleteJSON(ctx context.Context, path string, query url.Values, payload, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, query, payload, out)
}

// PostMultipart отправляет multipart/form-data: текстовые поля и файлы под именем fileField.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField string, files []FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(fileField, f.Name)
		if err != nil {
			return fmt.Errorf("multipart file %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("multipart file %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("multipart close: %w", err)
	}
	resp, body, err := c.send(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	return decode(resp, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var (
		reader      io.Reader
		contentType string
	)
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, body, err := c.send(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	return decode(resp, body, out)
}

// send выполняет запрос и полностью читает тело ответа.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugw("api request failed", "method", method, "url", u, "error", err)
		return nil, nil, &TransportError{Op: method, URL: u, Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: u, Err: err}
	}
	c.logger.Debugw("api request",
		"method", method,
		"url", u,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	return resp, bytes.TrimSpace(b), nil
}

func decode(resp *http.Response, body []byte, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}

// errorMessage извлекает поле error (или message) из JSON-тела ошибки.
func errorMessage(body []byte) string {
	var eb struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}
