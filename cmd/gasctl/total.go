package main

import (
	"fmt"

	"github.com/nando-os/ghost-gas/gas"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newTotalCmd() *cobra.Command {
	var (
		limit     uint64
		priceGwei string
	)
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Compute gas total (price * limit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := gas.DecGweiToWei(priceGwei)
			if err != nil {
				return fmt.Errorf("invalid --price-gwei: %w", err)
			}
			total, err := gas.CalcGasTotal(limit, price)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"limit": limit, "price_wei": price.String()}).Debug("Computed gas total")
			printSettings(cmd, gas.Settings{Price: price, Limit: limit, Total: total})
			return nil
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 21000, "gas limit")
	cmd.Flags().StringVar(&priceGwei, "price-gwei", "", "gas price in gwei")
	_ = cmd.MarkFlagRequired("price-gwei")
	return cmd
}
