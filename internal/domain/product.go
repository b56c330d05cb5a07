package domain

// Product is a catalog entry as fetched from the catalog service.
// Products are immutable once fetched. A nil Price marks the item as
// unavailable for purchase.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price"`
}

// Available reports whether the product can be added to a cart.
func (p Product) Available() bool {
	return p.Price != nil
}
