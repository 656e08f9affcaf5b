package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fsanano/storefront/internal/model"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItems_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]model.Item{
			{ID: 1, Name: "Widget", Status: "available"},
			{ID: 2, Name: "Gadget", Status: "sold out"},
		})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	items, err := client.GetItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Item{
		{ID: 1, Name: "Widget", Status: "available"},
		{ID: 2, Name: "Gadget", Status: "sold out"},
	}, items)
}

func TestGetItems_Brotli(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "br", r.Header.Get("Accept-Encoding"))

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		json.NewEncoder(bw).Encode([]model.Item{{ID: 7, Name: "Compressed", Status: "available"}})
		bw.Close()
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL + "/"})

	items, err := client.GetItems(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Compressed", items[0].Name)
}

func TestLogin_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)

		var req model.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "secret", req.Password)

		w.Write([]byte(`{"token":"abcDEFghij","user_id":7}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	resp, err := client.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "abcDEFghij", resp.Token)
	assert.Equal(t, 7, resp.UserID)
}

func TestLogin_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid creds"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	var apiErr *ErrorResponse
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid creds", apiErr.Message)
}

func TestLogin_MissingToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user_id":7}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.Login(context.Background(), "alice", "secret")

	assert.Error(t, err)
}

func TestAddToCart_SendsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/carts", r.URL.Path)
		assert.Equal(t, "tok123", r.Header.Get(TokenHeader))

		var req model.AddToCartRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 9, req.ItemID)

		w.Write([]byte(`{"message":"item added","cart_id":2}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	err := client.AddToCart(context.Background(), "tok123", 9)

	assert.NoError(t, err)
}

func TestAddToCart_NoTokenOmitsHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header[http.CanonicalHeaderKey(TokenHeader)]; ok {
			t.Errorf("token header should be absent")
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"please login"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	err := client.AddToCart(context.Background(), "", 9)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "please login")
}

func TestGetCarts_DecodesCapitalizedItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":2,"user_id":7,"name":"My Cart","status":"active","Items":[{"id":9,"name":"Widget","status":"available"}]}]`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	carts, err := client.GetCarts(context.Background())

	require.NoError(t, err)
	require.Len(t, carts, 1)
	assert.Equal(t, 2, carts[0].ID)
	assert.Equal(t, 7, carts[0].UserID)
	assert.Equal(t, []model.Item{{ID: 9, Name: "Widget", Status: "available"}}, carts[0].Items)
}

func TestGetOrders_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		w.Write([]byte(`[{"id":1,"user_id":2,"cart_id":4},{"id":2,"user_id":7,"cart_id":5}]`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	orders, err := client.GetOrders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Order{{ID: 1, UserID: 2, CartID: 4}, {ID: 2, UserID: 7, CartID: 5}}, orders)
}

func TestCreateOrder_SendsCartID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "tok123", r.Header.Get(TokenHeader))

		var req model.CreateOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.CartID)

		w.Write([]byte(`{"message":"Order successful","order_id":11}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	assert.NoError(t, client.CreateOrder(context.Background(), "tok123", 2))
}

func TestDo_PlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.GetOrders(context.Background())

	require.Error(t, err)
	var apiErr *ErrorResponse
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestGetItems_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`invalid-json`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.GetItems(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestGetItems_NetworkError(t *testing.T) {
	client := NewClient(Config{APIURL: "http://localhost:99999"})

	_, err := client.GetItems(context.Background())

	assert.Error(t, err)
}
