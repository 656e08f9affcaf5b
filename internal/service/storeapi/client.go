package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fsanano/storefront/internal/model"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// TokenHeader carries the session token on authenticated calls.
	TokenHeader     = "token"
	RequestIDHeader = "X-Request-ID"
)

type Config struct {
	APIURL string
	// Timeout bounds each call. Zero means no timeout.
	Timeout time.Duration
}

type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &Client{
		client: &http.Client{
			Transport: otelhttp.NewTransport(&HeaderTransport{
				Base: http.DefaultTransport,
			}),
			Timeout: cfg.Timeout,
		},
		config: cfg,
	}
}

// HeaderTransport adds the headers every backend call carries.
type HeaderTransport struct {
	Base http.RoundTripper
}

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.Base.RoundTrip(req)
}

// GetItems fetches the full item catalog.
func (c *Client) GetItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, "/items", "", nil, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	return items, nil
}

// Login exchanges credentials for a session token and user id.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if resp.Token == "" {
		return nil, errors.New("failed to login: response carried no token")
	}
	return &resp, nil
}

// AddToCart adds itemID to the cart of the user owning token.
func (c *Client) AddToCart(ctx context.Context, token string, itemID int) error {
	if err := c.do(ctx, http.MethodPost, "/carts", token, model.AddToCartRequest{ItemID: itemID}, nil); err != nil {
		return fmt.Errorf("failed to add item %d to cart: %w", itemID, err)
	}
	return nil
}

// GetCarts fetches the carts of every user.
func (c *Client) GetCarts(ctx context.Context) ([]model.Cart, error) {
	var carts []model.Cart
	if err := c.do(ctx, http.MethodGet, "/carts", "", nil, &carts); err != nil {
		return nil, fmt.Errorf("failed to fetch carts: %w", err)
	}
	return carts, nil
}

// GetOrders fetches the orders of every user.
func (c *Client) GetOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", "", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// CreateOrder places an order for cartID on behalf of the user owning token.
func (c *Client) CreateOrder(ctx context.Context, token string, cartID int) error {
	if err := c.do(ctx, http.MethodPost, "/orders", token, model.CreateOrderRequest{CartID: cartID}, nil); err != nil {
		return fmt.Errorf("failed to create order for cart %d: %w", cartID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		apiErr := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
