// Package terminal is the line-oriented storefront: one shopper, one cart,
// one checkout form, driven by commands read from an io.Reader.
package terminal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wichananm65/chaosshop-storefront/internal/cart"
	"github.com/wichananm65/chaosshop-storefront/internal/order"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
)

const (
	DefaultUserID  = "1"
	DefaultAddress = "123 Main St"
)

const helpText = `Commands:
  products            reload and list the catalog
  add <n>             add catalog item n to the cart
  cart                show the cart
  clear               empty the cart
  user <id>           set the checkout user id
  address <text>      set the shipping address
  scenario <label>    set the chaos scenario, "none" to unset
  checkout            place the order
  help                show this help
  quit                leave the shop
`

// Shop holds the state of one terminal session.
type Shop struct {
	products *product.Service
	carts    *cart.Service
	orders   *order.Service

	sessionID string
	form      order.Form
	listing   product.Listing

	out io.Writer
}

func NewShop(products *product.Service, carts *cart.Service, orders *order.Service, out io.Writer) *Shop {
	return &Shop{
		products:  products,
		carts:     carts,
		orders:    orders,
		sessionID: uuid.NewString(),
		form:      order.Form{UserID: DefaultUserID, Address: DefaultAddress},
		out:       out,
	}
}

// Run loads the catalog once, then executes commands from in until quit or EOF.
func (s *Shop) Run(ctx context.Context, in io.Reader) error {
	s.loadProducts(ctx)
	fmt.Fprint(s.out, "Type \"help\" for commands.\n")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if quit := s.Exec(ctx, scanner.Text()); quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Exec runs one command line and reports whether the shopper quit.
func (s *Shop) Exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "products":
		s.loadProducts(ctx)
	case "add":
		s.add(arg)
	case "cart":
		s.showCart()
	case "clear":
		if err := s.carts.ClearCart(s.sessionID); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(s.out, "Cart cleared.")
	case "user":
		s.form.UserID = arg
		fmt.Fprintf(s.out, "User ID: %s\n", arg)
	case "address":
		s.form.Address = arg
		fmt.Fprintf(s.out, "Address: %s\n", arg)
	case "scenario":
		if strings.EqualFold(arg, "none") {
			arg = ""
		}
		s.form.Scenario = arg
		fmt.Fprintf(s.out, "Chaos scenario: %s\n", displayScenario(arg))
	case "checkout":
		s.checkout(ctx)
	case "help":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for commands.\n", cmd)
	}
	return false
}

func (s *Shop) loadProducts(ctx context.Context) {
	s.listing = s.products.Load(ctx)
	PrintListing(s.out, s.listing)
}

// PrintListing writes a catalog load outcome, numbered from 1.
func PrintListing(w io.Writer, l product.Listing) {
	if l.Failed() {
		fmt.Fprintln(w, l.Error)
		return
	}
	fmt.Fprintln(w, "Products:")
	if len(l.Products) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, p := range l.Products {
		fmt.Fprintf(w, "  %d. %s (Available: %d)\n", i+1, p.ProductName, p.Quantity)
	}
}

func (s *Shop) add(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(s.out, "Usage: add <n>")
		return
	}
	p, ok := s.listing.At(n)
	if !ok {
		fmt.Fprintf(s.out, "No product at position %d.\n", n)
		return
	}
	items, err := s.carts.AddToCart(s.sessionID, p)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Added %s. Cart has %d item(s).\n", p.ProductName, len(items))
}

func (s *Shop) showCart() {
	items, err := s.carts.GetCart(s.sessionID)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}
	fmt.Fprintln(s.out, "Shopping Cart:")
	for _, it := range items {
		fmt.Fprintf(s.out, "  %s  1\n", it.ProductName)
	}
}

func (s *Shop) checkout(ctx context.Context) {
	fmt.Fprintln(s.out, "Processing...")
	res, err := s.orders.Checkout(ctx, s.sessionID, s.form)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if !res.OK {
		fmt.Fprintf(s.out, "Error: %s\n", res.Message)
	}
	if len(res.Body) > 0 {
		fmt.Fprintln(s.out, "Order Result:")
		fmt.Fprintln(s.out, prettyJSON(res.Body))
	}
}

func displayScenario(label string) string {
	if label == "" {
		return "None"
	}
	return label
}

func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
