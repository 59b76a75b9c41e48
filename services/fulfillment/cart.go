package fulfillment

import (
	"fmt"
	"strings"

	"dinebot/models"
)

// Cart operations. Dish names are matched case-insensitively; the
// first-seen casing is kept. No operation ever leaves a line with a
// non-positive quantity or two lines for the same dish.

const emptyCartMessage = "Your cart is empty."

func findCartLine(cart []models.CartItem, dishName string) int {
	for i := range cart {
		if strings.EqualFold(cart[i].DishName, dishName) {
			return i
		}
	}
	return -1
}

// addOrMerge adds qty of a dish, merging into an existing line when
// one matches.
func addOrMerge(cart []models.CartItem, dishName string, qty int) []models.CartItem {
	if qty <= 0 {
		qty = 1
	}
	if i := findCartLine(cart, dishName); i >= 0 {
		cart[i].Quantity += qty
		return cart
	}
	return append(cart, models.CartItem{DishName: dishName, Quantity: qty})
}

// updateOrInsert applies a signed quantity delta with the same merge
// semantics as addOrMerge, then drops any line at or below zero.
func updateOrInsert(cart []models.CartItem, dishName string, delta int) []models.CartItem {
	if i := findCartLine(cart, dishName); i >= 0 {
		cart[i].Quantity += delta
	} else {
		cart = append(cart, models.CartItem{DishName: dishName, Quantity: delta})
	}

	pruned := cart[:0]
	for _, line := range cart {
		if line.Quantity > 0 {
			pruned = append(pruned, line)
		}
	}
	return pruned
}

// removeFromCart removes qty of a dish; qty <= 0 means remove the whole
// line, as does any qty at or above the held quantity. The second
// return reports whether the dish was in the cart at all.
func removeFromCart(cart []models.CartItem, dishName string, qty int) ([]models.CartItem, bool) {
	i := findCartLine(cart, dishName)
	if i < 0 {
		return cart, false
	}
	if qty > 0 && qty < cart[i].Quantity {
		cart[i].Quantity -= qty
		return cart, true
	}
	return append(cart[:i], cart[i+1:]...), true
}

// summarizeCart renders "2 × Pizza, 1 × Coke" or the empty-cart line.
func summarizeCart(cart []models.CartItem) string {
	if len(cart) == 0 {
		return emptyCartMessage
	}
	parts := make([]string, 0, len(cart))
	for _, line := range cart {
		parts = append(parts, fmt.Sprintf("%d × %s", line.Quantity, line.DishName))
	}
	return strings.Join(parts, ", ")
}
