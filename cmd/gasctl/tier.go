package main

import (
	"fmt"

	"github.com/nando-os/ghost-gas/gas"
	"github.com/spf13/cobra"
)

func newTierCmd() *cobra.Command {
	var (
		tiersFlag string
		priceGwei string
	)
	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Show fee tiers and which one the current price matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers, err := parseTiers(tiersFlag)
			if err != nil {
				return err
			}
			recommended, err := gas.DefaultTierIndex(tiers)
			if err != nil {
				return err
			}

			active, matched := -1, false
			if priceGwei != "" {
				price, err := gas.DecGweiToWei(priceGwei)
				if err != nil {
					return fmt.Errorf("invalid --price-gwei: %w", err)
				}
				active, matched = gas.SelectActiveTier(tiers, price)
			} else {
				active, matched = recommended, true
			}

			out := cmd.OutOrStdout()
			for i, t := range gas.RenderTiers(tiers) {
				marker := " "
				if matched && i == active {
					marker = "*"
				}
				suffix := ""
				if i == recommended {
					suffix = " (recommended)"
				}
				fmt.Fprintf(out, "%s %d %s: %s gwei%s\n", marker, i, t.Label, t.PriceGwei, suffix)
			}
			if !matched {
				fmt.Fprintln(out, "active: custom")
			} else {
				fmt.Fprintf(out, "active: %d\n", active)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tiersFlag, "tiers", "", "fee tiers as label=gwei, ascending, e.g. low=1,medium=2,high=3")
	cmd.Flags().StringVar(&priceGwei, "price-gwei", "", "current gas price in gwei")
	_ = cmd.MarkFlagRequired("tiers")
	return cmd
}
