package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/samvad-hq/storefront-client/internal/domain"
)

// DefaultQuantity is used by AddItem when no quantity is given.
const DefaultQuantity = 1

// CartAPI operates on the authenticated user's cart.
type CartAPI struct {
	c *Client
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (ca *CartAPI) GetCart(ctx context.Context) (domain.Cart, error) {
	var out domain.Cart
	if err := ca.c.Do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return domain.Cart{}, err
	}
	return out, nil
}

// AddItem puts productID in the cart. Only the first quantity is used; none means DefaultQuantity.
func (ca *CartAPI) AddItem(ctx context.Context, productID int64, quantity ...int) (domain.CartItem, error) {
	qty := DefaultQuantity
	if len(quantity) > 0 {
		qty = quantity[0]
	}

	var out domain.CartItem
	body := addItemRequest{ProductID: productID, Quantity: qty}
	if err := ca.c.Do(ctx, http.MethodPost, "/cart/add", body, &out); err != nil {
		return domain.CartItem{}, err
	}
	return out, nil
}

func (ca *CartAPI) UpdateItem(ctx context.Context, itemID int64, quantity int) (domain.CartItem, error) {
	var out domain.CartItem
	endpoint := "/cart/update/" + strconv.FormatInt(itemID, 10)
	if err := ca.c.Do(ctx, http.MethodPut, endpoint, updateItemRequest{Quantity: quantity}, &out); err != nil {
		return domain.CartItem{}, err
	}
	return out, nil
}

func (ca *CartAPI) RemoveItem(ctx context.Context, itemID int64) (domain.Message, error) {
	var out domain.Message
	endpoint := "/cart/remove/" + strconv.FormatInt(itemID, 10)
	if err := ca.c.Do(ctx, http.MethodDelete, endpoint, nil, &out); err != nil {
		return domain.Message{}, err
	}
	return out, nil
}
