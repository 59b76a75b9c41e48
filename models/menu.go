package models

// MenuItem mirrors a row of the menus table.
type MenuItem struct {
	ID           int     `json:"id"`
	RestaurantID int     `json:"restaurant_id"`
	ItemName     string  `json:"item_name"`
	Price        float64 `json:"price"`
	IsVeg        bool    `json:"is_veg"`
	Category     string  `json:"category"`
}

// NewMenuItem is the payload for adding a menu item.
type NewMenuItem struct {
	RestaurantID int     `json:"restaurant_id" binding:"required"`
	ItemName     string  `json:"item_name" binding:"required"`
	Price        float64 `json:"price" binding:"required"`
	IsVeg        bool    `json:"is_veg"`
	Category     string  `json:"category" binding:"required"`
}
