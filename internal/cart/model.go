package cart

// Product is a single cart entry: the catalog attributes the UI needs
// plus the quantity currently in the cart.
type Product struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}
