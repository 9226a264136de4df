package domain

// Product is a catalog record. Amount is only set once the product is a cart line item.
type Product struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
