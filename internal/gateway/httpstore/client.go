// Package httpstore is the editor's record store: the employees API of the
// hrform server, reached over HTTP with a bearer token.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrform/internal/domain/employee"
	"hrform/internal/requestctx"
	"hrform/internal/transport/http/api"
)

// APIError is a failure reported by the server in its envelope. Its message
// is the server's message so the editor can show it as-is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == employee.ErrNotFound && e.Code == "not_found"
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (time.Time, error) {
	var out loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return time.Time{}, employee.WrapStoreError("login", err)
	}
	c.Token = out.Token
	return out.ExpiresAt, nil
}

func (c *Client) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	if err := c.do(ctx, http.MethodGet, "/api/v1/employees", nil, &out); err != nil {
		return nil, employee.WrapStoreError("list", err)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*employee.Employee, error) {
	var out employee.Employee
	if err := c.do(ctx, http.MethodGet, "/api/v1/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, employee.WrapStoreError("get", err)
	}
	return &out, nil
}

// Create adds a record; the server assigns the identifier.
func (c *Client) Create(ctx context.Context, emp employee.Employee) error {
	if emp.ID != "" {
		return employee.WrapStoreError("create", employee.ErrIDAssigned)
	}
	var out map[string]string
	if err := c.do(ctx, http.MethodPost, "/api/v1/employees", emp, &out); err != nil {
		return employee.WrapStoreError("create", err)
	}
	return nil
}

// Update replaces the record stored under emp.ID.
func (c *Client) Update(ctx context.Context, emp employee.Employee) error {
	if emp.ID == "" {
		return employee.WrapStoreError("update", employee.ErrIDRequired)
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/employees/"+url.PathEscape(emp.ID), emp, nil); err != nil {
		return employee.WrapStoreError("update", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := requestctx.GetRequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(requestctx.HeaderRequestID, reqID)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *api.Error      `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("%s %s: %s", method, path, resp.Status)}
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
