package model

// Recipe is a search result from the external recipe API.
type Recipe struct {
	Label       string   `json:"label"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredientLines"`
	URL         string   `json:"url"`
	Yield       float64  `json:"yield"`
}
