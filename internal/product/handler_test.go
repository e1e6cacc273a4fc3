package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/chaosshop-storefront/internal/metrics"
)

type failingRepo struct{}

func (failingRepo) List(ctx context.Context) ([]Product, error) {
	return nil, errors.New("connection refused")
}

func makeApp(repo Repository) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(repo, metrics.New())).RegisterPublicRoutes(app)
	return app
}

func TestGetProducts_CountMatchesInventory(t *testing.T) {
	seed := []Product{
		{ID: 1, ProductName: "Laptop", Quantity: 10},
		{ID: 2, ProductName: "Mouse", Quantity: 0},
		{ID: 3, ProductName: "Keyboard", Quantity: 4},
	}
	app := makeApp(NewInMemoryRepository(seed))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	var listing Listing
	if err := json.NewDecoder(res.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listing.Count != len(seed) || len(listing.Products) != len(seed) {
		t.Fatalf("expected %d products, got count=%d len=%d", len(seed), listing.Count, len(listing.Products))
	}
	// out-of-stock products are still listed
	if listing.Products[1].ProductName != "Mouse" || listing.Products[1].Quantity != 0 {
		t.Fatalf("unexpected second product: %+v", listing.Products[1])
	}
}

func TestGetProducts_EmptyInventory(t *testing.T) {
	app := makeApp(NewInMemoryRepository(nil))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var listing Listing
	json.NewDecoder(res.Body).Decode(&listing)
	if listing.Count != 0 || listing.Products == nil {
		t.Fatalf("expected empty non-nil product list, got %+v", listing)
	}
}

func TestGetProducts_FailureUsesFixedMessage(t *testing.T) {
	app := makeApp(failingRepo{})

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if res.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502 got %d", res.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(res.Body).Decode(&body)
	if body["message"] != LoadFailedMessage {
		t.Fatalf("unexpected message %q", body["message"])
	}
}
