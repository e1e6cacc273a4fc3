package cli

import (
	"github.com/spf13/cobra"
	"github.com/wichananm65/chaosshop-storefront/internal/cart"
	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/order"
	"github.com/wichananm65/chaosshop-storefront/internal/product"
	"github.com/wichananm65/chaosshop-storefront/internal/terminal"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Start an interactive shopping session",
	Long: `shop loads the catalog and reads commands from stdin. Type "help" inside
the session for the command list.`,
	Args: cobra.NoArgs,
	RunE: runShop,
}

func runShop(cmd *cobra.Command, args []string) error {
	inventory, orders, log, err := clients()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	carts := cart.NewService(cart.NewInMemoryRepository())
	shop := terminal.NewShop(
		product.NewService(product.NewInventoryRepository(inventory), nil),
		carts,
		order.NewService(carts, order.NewHTTPSubmitter(orders), nil),
		cmd.OutOrStdout(),
	)
	return shop.Run(logger.WithContext(cmd.Context(), log), cmd.InOrStdin())
}
