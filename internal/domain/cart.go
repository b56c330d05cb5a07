package domain

// CartItem is a denormalized snapshot of a product taken at the moment
// it was added to the cart. Catalog price changes after that moment do
// not affect an item already in the cart.
type CartItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}
