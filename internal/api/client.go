package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Client wraps outbound calls to the backend REST API. Every call is one-shot:
// no retries, no queueing, no implicit auth header.
type Client struct {
	base string
	hc   *http.Client
	log  *zap.SugaredLogger
}

// FilePart is an optional file attachment for multipart submissions.
type FilePart struct {
	FieldName string // form field, e.g. "image"
	FileName  string
	Reader    io.Reader
}

// FilePartFromPath opens path and returns it as an "image" part.
// The caller owns closing via the returned closer.
func FilePartFromPath(path string) (*FilePart, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &FilePart{FieldName: "image", FileName: filepath.Base(path), Reader: f}, f.Close, nil
}

// NewClient builds a client for the given base URL (including the /api prefix).
// A nil logger disables request logging.
func NewClient(base string, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   http.DefaultClient,
		log:  log,
	}
}

// Get issues a GET and decodes the 2xx JSON body into out (skipped when out is nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a JSON POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a JSON PUT.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch issues a JSON PATCH.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// PostMultipart submits fields (plus an optional file part) as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FilePart, out any) error {
	return c.doMultipart(ctx, http.MethodPost, path, fields, file, out)
}

// PutMultipart is PostMultipart with the PUT method, used by update endpoints.
func (c *Client) PutMultipart(ctx context.Context, path string, fields map[string]string, file *FilePart, out any) error {
	return c.doMultipart(ctx, http.MethodPut, path, fields, file, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.log.Debugw("request", "method", req.Method, "url", req.URL.String())
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", req.Method, "url", req.URL.String(), "err", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	c.log.Debugw("response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: backendMessage(body)}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// backendMessage digs the human-readable message out of an error body.
// The backend answers either {"error": "..."} or {"message": "..."}.
func backendMessage(body []byte) string {
	var m struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil {
		if m.Error != "" {
			return m.Error
		}
		if m.Message != "" {
			return m.Message
		}
	}
	return strings.TrimSpace(string(body))
}
