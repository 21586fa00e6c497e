package stock

// Product is a catalog row as served by the product endpoint.
type Product struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Availability is the stock snapshot served by the stock endpoint.
type Availability struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}
