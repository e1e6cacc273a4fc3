package product

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wichananm65/chaosshop-storefront/internal/upstream"
)

type inventoryResponse struct {
	Inventory []Product `json:"inventory"`
}

// InventoryRepository reads the catalog from the inventory service with a
// single GET {base}/inventory per call.
type InventoryRepository struct {
	client *upstream.Client
}

func NewInventoryRepository(client *upstream.Client) *InventoryRepository {
	return &InventoryRepository{client: client}
}

func (r *InventoryRepository) List(ctx context.Context) ([]Product, error) {
	resp, err := r.client.Get(ctx, "/inventory")
	if err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}

	var payload inventoryResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decoding inventory: %w", err)
	}
	if payload.Inventory == nil {
		return []Product{}, nil
	}
	return payload.Inventory, nil
}
