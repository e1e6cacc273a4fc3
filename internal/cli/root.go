// Package cli implements the shopctl command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wichananm65/chaosshop-storefront/internal/config"
	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"github.com/wichananm65/chaosshop-storefront/internal/upstream"
	"go.uber.org/zap"
)

var (
	verbose      bool
	inventoryURL string
	orderURL     string
	rootCmd      *cobra.Command
)

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopctl",
		Short: "ChaosShop terminal storefront",
		Long: `shopctl browses the ChaosShop catalog and places orders against the
inventory and order services, one shopper per run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream requests to stderr")
	cmd.PersistentFlags().StringVar(&inventoryURL, "inventory-url", "", "Inventory service base URL (default from config)")
	cmd.PersistentFlags().StringVar(&orderURL, "order-url", "", "Order service base URL (default from config)")
	return cmd
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(shopCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// clients resolves the service URLs, flags first, and builds both upstream
// clients plus a stderr logger.
func clients() (inventory, orders *upstream.Client, log *zap.Logger, err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if inventoryURL != "" {
		cfg.InventoryURL = inventoryURL
	}
	if orderURL != "" {
		cfg.OrderURL = orderURL
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	log, err = logger.New(logger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, nil, nil, err
	}

	inventory, err = upstream.NewClient(upstream.Config{Service: "inventory", BaseURL: cfg.InventoryURL, Timeout: cfg.UpstreamTimeout})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("inventory client: %w", err)
	}
	orders, err = upstream.NewClient(upstream.Config{Service: "order", BaseURL: cfg.OrderURL, Timeout: cfg.UpstreamTimeout})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("order client: %w", err)
	}
	return inventory, orders, log, nil
}
