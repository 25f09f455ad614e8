package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/nando-os/ghost-gas/gas"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "gasctl",
		Short:         "Gas price, limit and balance calculations for transaction drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
				log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelDebug, false)))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newTotalCmd())
	root.AddCommand(newTierCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// parseTiers reads "low=1,medium=2,high=3" with prices in gwei, keeping the given order
func parseTiers(s string) ([]gas.FeeTier, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var tiers []gas.FeeTier
	for _, part := range strings.Split(s, ",") {
		label, price, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || label == "" {
			return nil, fmt.Errorf("invalid tier %q, expected label=gwei", part)
		}
		wei, err := gas.DecGweiToWei(price)
		if err != nil {
			return nil, fmt.Errorf("invalid tier %q: %w", label, err)
		}
		tiers = append(tiers, gas.FeeTier{Label: label, PriceWei: wei})
	}
	return tiers, nil
}

func printSettings(cmd *cobra.Command, s gas.Settings) {
	fmt.Fprintf(cmd.OutOrStdout(), "gas price: %s gwei (%s)\n", s.PriceGwei(), s.PriceHex())
	fmt.Fprintf(cmd.OutOrStdout(), "gas limit: %d (%s)\n", s.Limit, s.LimitHex())
	fmt.Fprintf(cmd.OutOrStdout(), "gas total: %s wei (%s, %s gwei)\n", s.Total.String(), s.TotalHex(), s.TotalGwei())
}
