// Package client talks to the table ordering REST API and holds the
// client-side state of the ordering and staff screens: the cart, the
// session and the polling watchers.
package client

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
	"sync"
	"time"

	"github.com/yeremiapane/table-order/models"
)

// TransportError covers network failures and responses the error taxonomy
// does not name.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return "transport: " + e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("transport: status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("transport: status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// OrderRequest is the body sent to place an order.
type OrderRequest struct {
	TableNumber string             `json:"tableNumber"`
	Items       []models.OrderLine `json:"items"`
	TotalPrice  *float64           `json:"totalPrice,omitempty"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id), nil, patch, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus changes only the status of an order.
func (c *Client) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	return c.UpdateOrder(ctx, id, models.OrderPatch{Status: &status})
}

func (c *Client) ListMenu(ctx context.Context, category string) ([]models.MenuItem, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := c.do(ctx, http.MethodGet, "/api/tables", nil, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Login exchanges staff credentials for a token and uses it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, body, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/logout", nil, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.OrderSummary, error) {
	var summary models.OrderSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeError maps an error response back onto the model error taxonomy.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = strings.TrimSpace(string(raw))
	}
	msg := payload.Error

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, models.ErrNotFound)
	case http.StatusBadRequest:
		return models.NewValidationError("", msg)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, models.ErrInvalidTransition)
	default:
		return &TransportError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// IsTransport reports whether err is a network or unexpected server failure.
func IsTransport(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
