package models

// Restaurant mirrors a row of the restaurants table.
type Restaurant struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Cuisines       string  `json:"cuisines"`
	Area           string  `json:"area"`
	Timing         string  `json:"timing"`
	FullAddress    string  `json:"full_address"`
	PhoneNumber    string  `json:"phone_number"`
	IsHomeDelivery bool    `json:"is_home_delivery"`
	TakeAway       bool    `json:"take_away"`
	IsIndoorSeating bool   `json:"is_indoor_seating"`
	IsVegOnly      bool    `json:"is_veg_only"`
	DinnerRating   float64 `json:"dinner_rating"`
	DinnerReviews  int     `json:"dinner_reviews"`
	DeliveryRating float64 `json:"delivery_rating"`
	DeliveryReviews int    `json:"delivery_reviews"`
	KnownFor       string  `json:"known_for"`
	PopularDishes  string  `json:"popular_dishes"`
	PeopleKnownFor string  `json:"people_known_for"`
	AverageCost    float64 `json:"average_cost"`
}

// RestaurantFilter holds the optional criteria for an advanced restaurant search.
type RestaurantFilter struct {
	Cuisine      string   `json:"cuisine,omitempty"`
	Area         string   `json:"area,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	MaxCost      *float64 `json:"maxCost,omitempty"`
	VegOnly      bool     `json:"vegOnly,omitempty"`
	DineInOnly   bool     `json:"dineInOnly,omitempty"`
	HomeDelivery bool     `json:"homeDelivery,omitempty"`
}
