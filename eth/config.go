package eth

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

const (
	envRpcURL  = "ETH_RPC_URL"
	envChainID = "ETH_CHAIN_ID"

	// -- accounts
	envAccountsList      = "ETH_ACCOUNTS"
	envAccountAddressFmt = "ETH_ACCOUNT_%s_ADDRESS"

	// -- gas configuration
	// Recommended settings:
	// Development/Testing:
	//   ETH_GAS_LIMIT_BUFFER_SIMPLE=1.2    # Higher buffers for testing
	//   ETH_GAS_LIMIT_BUFFER_COMPLEX=1.4
	// Production - Ethereum Mainnet:
	//   ETH_GAS_LIMIT_BUFFER_SIMPLE=1.1    # Higher costs, more conservative
	//   ETH_GAS_LIMIT_BUFFER_COMPLEX=1.25
	envGasLimitDefault       = "ETH_GAS_LIMIT_DEFAULT"
	envGasLimitBufferSimple  = "ETH_GAS_LIMIT_BUFFER_SIMPLE"  // Buffer for simple ETH transfers
	envGasLimitBufferComplex = "ETH_GAS_LIMIT_BUFFER_COMPLEX" // Buffer for complex transactions

	// -- fee configuration
	// Max gas price in wei (default: 500 gwei)
	envMaxFeePerGas = "ETH_MAX_FEE_PER_GAS"

	// --- Defaults ---
	DEFAULT_GAS_LIMIT             = 21000 // plain ETH transfer
	DEFAULT_GAS_LIMIT_BUFFER      = 1.1
	DEFAULT_GAS_LIMIT_BUFFER_CPLX = 1.2
	DEFAULT_MAX_FEE_PER_GAS       = 500 * params.GWei // 500 gwei
)

// Config is what the gas client and the command line need from the environment
type Config interface {
	ChainID() int64
	RPCURL() string
	Accounts() []*Account
	Account(label string) (*Account, error)
	DefaultGasLimit() uint64
	GasLimitBufferSimple() float64
	GasLimitBufferComplex() float64
	MaxFeePerGas() *big.Int
}

type config struct {
	chainId  int64
	accounts []*Account
	rpcURL   string
}

var _ Config = (*config)(nil)

func NewConfiguration() (*config, error) {

	chainIDStr := os.Getenv(envChainID)
	if chainIDStr == "" {
		return nil, fmt.Errorf("%s environment variable is not set", envChainID)
	}

	chainId, err := strconv.ParseInt(chainIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ETH_CHAIN_ID: %w", err)
	}

	accounts, err := loadAccountsFromEnv(chainId)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts found in %s environment variable", envAccountsList)
	}

	return &config{
		rpcURL:   os.Getenv(envRpcURL),
		chainId:  chainId,
		accounts: accounts,
	}, nil
}

func (c *config) ChainID() int64 {
	return c.chainId
}

func (c *config) Accounts() []*Account {
	return c.accounts
}

// Account looks up a configured account by label, case-insensitively
func (c *config) Account(label string) (*Account, error) {
	for _, a := range c.accounts {
		if strings.EqualFold(a.Label, label) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account %q is not configured in %s", label, envAccountsList)
}

func (c *config) RPCURL() string {
	return c.rpcURL
}

// DefaultGasLimit returns the gas limit a new draft starts with (default: 21000)
func (c *config) DefaultGasLimit() uint64 {
	limitStr := os.Getenv(envGasLimitDefault)
	if limitStr == "" {
		return DEFAULT_GAS_LIMIT
	}
	limit, err := strconv.ParseUint(limitStr, 10, 64)
	if err != nil || limit == 0 {
		return DEFAULT_GAS_LIMIT
	}
	return limit
}

// GasLimitBufferSimple returns the buffer multiplier for simple ETH transfers
func (c *config) GasLimitBufferSimple() float64 {
	return bufferFromEnv(envGasLimitBufferSimple, DEFAULT_GAS_LIMIT_BUFFER)
}

// GasLimitBufferComplex returns the buffer multiplier for complex transactions
func (c *config) GasLimitBufferComplex() float64 {
	return bufferFromEnv(envGasLimitBufferComplex, DEFAULT_GAS_LIMIT_BUFFER_CPLX)
}

func bufferFromEnv(env string, fallback float64) float64 {
	bufferStr := os.Getenv(env)
	if bufferStr == "" {
		return fallback
	}

	buffer, err := strconv.ParseFloat(bufferStr, 64)
	if err != nil {
		return fallback
	}

	// Validate reasonable bounds (0.5 to 3.0)
	if buffer < 0.5 || buffer > 3.0 {
		return fallback
	}

	return buffer
}

// MaxFeePerGas returns the highest gas price in wei that is accepted without warning (default: 500 gwei)
func (c *config) MaxFeePerGas() *big.Int {
	maxFeeStr := os.Getenv(envMaxFeePerGas)
	if maxFeeStr == "" {
		return big.NewInt(DEFAULT_MAX_FEE_PER_GAS)
	}
	maxFee, ok := new(big.Int).SetString(maxFeeStr, 10)
	if !ok || maxFee.Sign() <= 0 {
		return big.NewInt(DEFAULT_MAX_FEE_PER_GAS)
	}
	return maxFee
}

func loadAccountsFromEnv(chainID int64) ([]*Account, error) {
	var accounts []*Account
	accountLabels := os.Getenv(envAccountsList)
	if accountLabels == "" {
		return nil, fmt.Errorf("ETH_ACCOUNTS env variable not set")
	}
	labels := strings.Split(accountLabels, ",")
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		addrEnv := fmt.Sprintf(envAccountAddressFmt, strings.ToUpper(label))
		addrHex := os.Getenv(addrEnv)
		if addrHex == "" {
			return nil, fmt.Errorf("no address found for account[%s] in %s", label, addrEnv)
		}
		if !common.IsHexAddress(addrHex) {
			return nil, fmt.Errorf("invalid address for account[%s]: %s", label, addrHex)
		}
		accounts = append(accounts, &Account{
			Address: common.HexToAddress(addrHex),
			ChainId: chainID,
			Label:   label,
		})
	}
	return accounts, nil
}
