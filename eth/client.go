package eth

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/shopspring/decimal"
)

// GasClient supplies the on-chain inputs of a transaction draft
type GasClient interface {
	// GetBalance returns the ETH balance of an address in wei
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)

	// EstimateGasLimit estimates gas for a call and applies the configured buffer
	EstimateGasLimit(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	// Close closes the Ethereum client connection
	Close()
}

// EthClient is the subset of ethclient.Client used here, kept small for testability
type EthClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	Close()
}

// Ensure *ethclient.Client implements EthClient
var _ EthClient = (*ethclient.Client)(nil)

type gasClient struct {
	client EthClient
	config Config
}

func NewGasClient(ctx context.Context, cfg Config) (GasClient, error) {
	// Log proxy usage if configured
	if os.Getenv("HTTP_PROXY") != "" || os.Getenv("HTTPS_PROXY") != "" {
		log.Info("Connecting to Ethereum network via proxy",
			"http_proxy", os.Getenv("HTTP_PROXY"),
			"https_proxy", os.Getenv("HTTPS_PROXY"))
	}

	// -- Connect to Ethereum client
	// HTTP_PROXY and HTTPS_PROXY environment variables are automatically used by ethclient.DialContext
	log.Info("Connecting to Ethereum RPC", "url", cfg.RPCURL())
	client, err := ethclient.DialContext(ctx, cfg.RPCURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum network: %w", err)
	}

	gc, err := newGasClient(ctx, client, cfg)
	if err != nil {
		client.Close()
		return nil, err
	}
	return gc, nil
}

// newGasClient verifies the node serves the configured chain
func newGasClient(ctx context.Context, client EthClient, cfg Config) (*gasClient, error) {
	clientChainId, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if clientChainId.Int64() != cfg.ChainID() {
		return nil, fmt.Errorf("expected chain ID %d, got %d", cfg.ChainID(), clientChainId.Int64())
	}

	log.Info("Successfully connected to Ethereum network", "chain_id", clientChainId.Int64())

	return &gasClient{
		client: client,
		config: cfg,
	}, nil
}

// GetBalance returns the ETH balance of an address
func (gc *gasClient) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := gc.client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	log.Debug("Fetched balance", "address", address.Hex(), "wei", balance.String())

	return balance, nil
}

// EstimateGasLimit estimates gas for the call and returns the buffered limit
func (gc *gasClient) EstimateGasLimit(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	estimated, err := gc.client.EstimateGas(ctx, msg)
	if err != nil {
		log.Error("Failed to estimate gas", "error", err)
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}

	// Add dynamic buffer based on transaction complexity
	var buffer float64
	if len(msg.Data) == 0 {
		buffer = gc.config.GasLimitBufferSimple()
	} else {
		buffer = gc.config.GasLimitBufferComplex()
	}
	limit, err := applyBuffer(estimated, buffer)
	if err != nil {
		return 0, err
	}
	log.Info("Gas limit calculated", "estimated", estimated, "buffer", buffer, "with_buffer", limit)

	// Validate against network gas limit, transaction will get blocked if goes above it
	header, err := gc.client.HeaderByNumber(ctx, nil)
	if err == nil && header.GasLimit > 0 {
		maxGas := header.GasLimit * 2 / 3 // Use 2/3 of block gas limit
		if limit > maxGas {
			log.Error("Gas limit too high", "gas_limit", limit, "max_allowed", maxGas)
			return 0, fmt.Errorf("gas limit %d exceeds maximum allowed %d", limit, maxGas)
		}
	}
	return limit, nil
}

// applyBuffer multiplies gas by buffer using decimal arithmetic, truncating to whole gas
func applyBuffer(gas uint64, buffer float64) (uint64, error) {
	g := decimal.NewFromBigInt(new(big.Int).SetUint64(gas), 0)
	buffered := g.Mul(decimal.NewFromFloat(buffer)).Floor().BigInt()
	if !buffered.IsUint64() {
		return 0, fmt.Errorf("buffered gas limit %s does not fit in uint64", buffered.String())
	}
	return buffered.Uint64(), nil
}

// Close closes the Ethereum client connection
func (gc *gasClient) Close() {
	if gc.client != nil {
		gc.client.Close()
	}
}
