package models

// CartItem is one dish line of the delivery-flow cart. Within a cart,
// dish names are unique under case-insensitive comparison and quantity
// is always positive; lines that would drop to zero are removed.
type CartItem struct {
	DishName string `json:"dishName"`
	Quantity int    `json:"quantity"`
}
