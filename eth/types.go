package eth

import (
	"github.com/ethereum/go-ethereum/common"
)

// Account is a read-only account whose balance funds a transaction draft
type Account struct {
	Address common.Address // Ethereum address
	ChainId int64          // Chain ID the account is used on
	Label   string         // Optional: human-readable label
}
