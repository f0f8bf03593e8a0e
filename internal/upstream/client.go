// Package upstream talks to the remote employee service and interprets its
// response envelopes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON
)

// HTTPError carries status/body for non-2xx responses that did not contain an envelope.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// PublicMessage reports the status only; the body stays in logs.
func (e *HTTPError) PublicMessage() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// TransportError reports that the upstream could not be reached or the
// response could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PublicMessage names the failed operation without the dialled address.
func (e *TransportError) PublicMessage() string {
	return fmt.Sprintf("upstream %s unreachable", e.Op)
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Client is the HTTP implementation of domain.EmployeeClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ domain.EmployeeClient = (*Client)(nil)

// New builds a client for the upstream service rooted at baseURL.
func New(baseURL string, timeout time.Duration, maxIdleConns int) *Client {
	tr := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// FindAll lists every employee.
func (c *Client) FindAll(ctx context.Context) (*domain.Envelope[[]domain.Employee], error) {
	return doEnvelope[[]domain.Employee](ctx, c, "find_all", http.MethodGet, c.BaseURL, nil)
}

// Create creates an employee from in.
func (c *Client) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Envelope[domain.Employee], error) {
	return doEnvelope[domain.Employee](ctx, c, "create", http.MethodPost, c.BaseURL, in)
}

// DeleteByName deletes the employee named in req.
func (c *Client) DeleteByName(ctx context.Context, req domain.DeleteRequest) (*domain.Envelope[bool], error) {
	return doEnvelope[bool](ctx, c, "delete_by_name", http.MethodDelete, c.BaseURL, req)
}

// FindByID fetches one employee. A 404 yields an envelope without data.
func (c *Client) FindByID(ctx context.Context, id string) (*domain.Envelope[domain.Employee], error) {
	return doEnvelope[domain.Employee](ctx, c, "find_by_id", http.MethodGet, c.BaseURL+"/"+url.PathEscape(id), nil)
}

func doEnvelope[T any](ctx context.Context, c *Client, op, method, u string, body any) (*domain.Envelope[T], error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream %s: encode body: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", acceptJSON)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	raw, err := readAndClose(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	env, decodeErr := decodeEnvelope[T](raw)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if decodeErr != nil {
			return nil, fmt.Errorf("upstream %s: json parse error: %w body=%s", op, decodeErr, snippet(raw, 300))
		}
		return env, nil
	case resp.StatusCode == http.StatusNotFound:
		if decodeErr != nil || env == nil || env.Status == "" {
			env = &domain.Envelope[T]{Status: http.StatusText(http.StatusNotFound)}
		}
		env.Data = nil
		return env, nil
	default:
		// Failure envelopes are passed through so the status text reaches the caller.
		if decodeErr == nil && env != nil && env.Status != "" {
			return env, nil
		}
		return nil, &HTTPError{Method: method, URL: u, StatusCode: resp.StatusCode, Body: raw}
	}
}

// decodeEnvelope returns a nil envelope for an empty or null body.
func decodeEnvelope[T any](raw []byte) (*domain.Envelope[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var env domain.Envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

// IsTransport reports whether err means the upstream could not be reached.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
