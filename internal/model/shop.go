package model

type Item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Cart is a user's cart as returned by GET /carts. The backend serializes the
// item list under "Items"; JSON field matching is case-insensitive so both
// spellings decode.
type Cart struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Items  []Item `json:"items"`
}

type Order struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	CartID int `json:"cart_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
}

type AddToCartRequest struct {
	ItemID int `json:"item_id"`
}

type CreateOrderRequest struct {
	CartID int `json:"cart_id"`
}
