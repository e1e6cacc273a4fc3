package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"github.com/wichananm65/chaosshop-storefront/internal/terminal"
)

var errCatalogUnavailable = errors.New("catalog unavailable")

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Load and print the catalog once",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func runProducts(cmd *cobra.Command, args []string) error {
	inventory, _, log, err := clients()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithContext(cmd.Context(), log)
	listing := product.NewService(product.NewInventoryRepository(inventory), nil).Load(ctx)
	terminal.PrintListing(cmd.OutOrStdout(), listing)
	if listing.Failed() {
		return errCatalogUnavailable
	}
	return nil
}
