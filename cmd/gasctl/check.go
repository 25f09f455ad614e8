package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nando-os/ghost-gas/eth"
	"github.com/nando-os/ghost-gas/gas"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// dialGasClient connects to the RPC node for --account; replaced in tests
var dialGasClient = eth.NewGasClient

type checkOptions struct {
	tiers      string
	priceGwei  string
	limit      string
	amountWei  string
	balanceWei string
	account    string
	to         string
	data       string
	rate       string
	timeout    time.Duration
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a balance covers amount plus gas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.tiers, "tiers", "", "fee tiers as label=gwei; the price starts at the recommended tier")
	cmd.Flags().StringVar(&opts.priceGwei, "price-gwei", "", "custom gas price in gwei")
	cmd.Flags().StringVar(&opts.limit, "limit", "", "gas limit (default: estimated with --to, else ETH_GAS_LIMIT_DEFAULT or 21000)")
	cmd.Flags().StringVar(&opts.amountWei, "amount-wei", "0", "amount being sent in wei")
	cmd.Flags().StringVar(&opts.balanceWei, "balance-wei", "", "available balance in wei")
	cmd.Flags().StringVar(&opts.account, "account", "", "configured account label whose balance is fetched over RPC")
	cmd.Flags().StringVar(&opts.to, "to", "", "recipient address; with --account the starting gas limit is estimated over RPC")
	cmd.Flags().StringVar(&opts.data, "data", "", "0x-prefixed call data for the gas estimate")
	cmd.Flags().StringVar(&opts.rate, "rate", "1", "conversion rate of the native currency")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "RPC timeout for --account")
	cmd.MarkFlagsMutuallyExclusive("balance-wei", "account")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	if opts.balanceWei == "" && opts.account == "" {
		return errors.New("one of --balance-wei or --account is required")
	}
	if opts.to != "" && opts.account == "" {
		return errors.New("--to needs --account to estimate the gas limit")
	}

	amount, err := gas.ParseDecimalInt(opts.amountWei)
	if err != nil {
		return fmt.Errorf("invalid --amount-wei: %w", err)
	}
	rate, err := decimal.NewFromString(opts.rate)
	if err != nil {
		return fmt.Errorf("invalid --rate: %w", err)
	}

	var (
		cfg     eth.Config
		acc     *eth.Account
		client  eth.GasClient
		balance *big.Int
		limit   = uint64(eth.DEFAULT_GAS_LIMIT)
	)
	if opts.balanceWei != "" {
		if balance, err = gas.ParseDecimalInt(opts.balanceWei); err != nil {
			return fmt.Errorf("invalid --balance-wei: %w", err)
		}
	} else {
		c, err := eth.NewConfiguration()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = c
		limit = cfg.DefaultGasLimit()
		if acc, err = cfg.Account(opts.account); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
		defer cancel()
		client, err = dialGasClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		if balance, err = client.GetBalance(ctx, acc.Address); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"account": acc.Label, "balance_wei": balance.String()}).Debug("Fetched balance")

		if opts.to != "" && opts.limit == "" {
			if limit, err = estimateLimit(ctx, client, acc, amount, opts); err != nil {
				return err
			}
		}
	}

	settings, err := draftSettings(opts, limit)
	if err != nil {
		return err
	}
	if cfg != nil && settings.Price.Cmp(cfg.MaxFeePerGas()) > 0 {
		logrus.WithFields(logrus.Fields{
			"price_wei": settings.Price.String(),
			"max_wei":   cfg.MaxFeePerGas().String(),
		}).Warn("Gas price is above the configured maximum")
	}

	printSettings(cmd, settings)
	out := cmd.OutOrStdout()
	switch err := gas.CheckBalance(amount, settings.Total, balance, rate); {
	case err == nil:
		fmt.Fprintln(out, "balance: sufficient")
	case errors.Is(err, gas.ErrInsufficientBalance), errors.Is(err, gas.ErrRateUnavailable):
		fmt.Fprintf(out, "balance: insufficient (%v)\n", err)
	default:
		return err
	}
	return nil
}

// estimateLimit asks the node for the gas a transfer from acc would use
func estimateLimit(ctx context.Context, client eth.GasClient, acc *eth.Account, amount *big.Int, opts *checkOptions) (uint64, error) {
	if !common.IsHexAddress(opts.to) {
		return 0, fmt.Errorf("invalid --to address %q", opts.to)
	}
	to := common.HexToAddress(opts.to)
	var data []byte
	if opts.data != "" {
		d, err := hexutil.Decode(opts.data)
		if err != nil {
			return 0, fmt.Errorf("invalid --data: %w", err)
		}
		data = d
	}

	limit, err := client.EstimateGasLimit(ctx, ethereum.CallMsg{
		From:  acc.Address,
		To:    &to,
		Value: amount,
		Data:  data,
	})
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"to": to.Hex(), "gas_limit": limit}).Debug("Estimated gas limit")
	return limit, nil
}

// draftSettings builds the gas configuration the way a send form does: start at the
// recommended tier with the starting limit, then apply user edits for price and limit
func draftSettings(opts *checkOptions, limit uint64) (gas.Settings, error) {
	tiers, err := parseTiers(opts.tiers)
	if err != nil {
		return gas.Settings{}, err
	}
	if len(tiers) == 0 {
		return customSettings(opts, limit)
	}

	draft, err := gas.NewConfiguration(tiers, limit)
	if err != nil {
		return gas.Settings{}, err
	}
	settings := draft.Snapshot()
	if opts.priceGwei != "" {
		if settings, err = draft.SetPriceGwei(opts.priceGwei); err != nil {
			return gas.Settings{}, err
		}
	}
	if opts.limit != "" {
		if settings, err = draft.SetLimitDecimal(opts.limit); err != nil {
			return gas.Settings{}, err
		}
	}
	if i, ok := settings.ActiveTier(tiers); ok {
		logrus.WithField("tier", tiers[i].Label).Debug("Gas price matches a fee tier")
	} else {
		logrus.Debug("Custom gas price in effect")
	}
	return settings, nil
}

// customSettings is used when no fee estimates are supplied and the price is given directly
func customSettings(opts *checkOptions, limit uint64) (gas.Settings, error) {
	if opts.priceGwei == "" {
		return gas.Settings{}, errors.New("one of --tiers or --price-gwei is required")
	}
	price, err := gas.DecGweiToWei(opts.priceGwei)
	if err != nil {
		return gas.Settings{}, fmt.Errorf("invalid --price-gwei: %w", err)
	}
	if opts.limit != "" {
		l, err := gas.ParseDecimalInt(opts.limit)
		if err != nil {
			return gas.Settings{}, fmt.Errorf("invalid --limit: %w", err)
		}
		if !l.IsUint64() {
			return gas.Settings{}, fmt.Errorf("invalid --limit: %w", gas.ErrOverflow)
		}
		limit = l.Uint64()
	}
	total, err := gas.CalcGasTotal(limit, price)
	if err != nil {
		return gas.Settings{}, err
	}
	return gas.Settings{Price: price, Limit: limit, Total: total, Custom: true}, nil
}
