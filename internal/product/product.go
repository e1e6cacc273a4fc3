package product

// Product is one catalog entry as returned by the inventory service.
// Quantity is the available stock; the storefront never owns or changes it.
type Product struct {
	ID          int    `json:"id" validate:"gte=0"`
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// LoadFailedMessage is shown whenever the catalog cannot be loaded.
const LoadFailedMessage = "Failed to load products. Is the inventory service running?"

// Listing is the outcome of one catalog load.
type Listing struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Error    string    `json:"error,omitempty"`
}

// Failed reports whether the load ended in an error.
func (l Listing) Failed() bool {
	return l.Error != ""
}

// At returns the product at the 1-based catalog position n.
func (l Listing) At(n int) (Product, bool) {
	if n < 1 || n > len(l.Products) {
		return Product{}, false
	}
	return l.Products[n-1], true
}
