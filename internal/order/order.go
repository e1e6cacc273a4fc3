package order

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/wichananm65/chaosshop-storefront/internal/product"
)

// ScenarioHeader carries the optional chaos scenario label to the order service.
const ScenarioHeader = "X-Chaos-Scenario"

// GenericFailureMessage is used when a failure carries no better description.
const GenericFailureMessage = "Checkout failed"

var (
	ErrEmptyCart          = errors.New("Cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Request is the body POSTed to the order service. UserID is nil when the
// shopper typed something that is not a number, and is sent as null.
type Request struct {
	UserID      *int   `json:"user_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Address     string `json:"address"`
}

// Form is the checkout form as the shopper filled it in.
type Form struct {
	UserID   string `json:"user_id"`
	Address  string `json:"address"`
	Scenario string `json:"chaos_scenario"`
}

// Result is the outcome of one submission. Body is the order service
// response, verbatim, on success and failure alike.
type Result struct {
	OK         bool            `json:"ok"`
	StatusCode int             `json:"status_code,omitempty"`
	Body       json.RawMessage `json:"result,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// ParseUserID reads the leading integer of s: surrounding whitespace and a
// sign are allowed, anything after the digits is ignored. It returns nil when
// there are no digits.
func ParseUserID(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// Aggregate counts cart entries by product name and returns only the first
// name in insertion order with its count. Every other product is dropped:
// the order service accepts one product per order.
func Aggregate(items []product.Product) (name string, quantity int, ok bool) {
	if len(items) == 0 {
		return "", 0, false
	}
	name = items[0].ProductName
	for _, it := range items {
		if it.ProductName == name {
			quantity++
		}
	}
	return name, quantity, true
}

// BuildRequest turns the cart and form into the order request.
func BuildRequest(items []product.Product, form Form) (Request, error) {
	name, qty, ok := Aggregate(items)
	if !ok {
		return Request{}, ErrEmptyCart
	}
	return Request{
		UserID:      ParseUserID(form.UserID),
		ProductName: name,
		Quantity:    qty,
		Address:     form.Address,
	}, nil
}
