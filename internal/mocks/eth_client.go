package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

// EthClient is a testify mock of eth.EthClient
type EthClient struct {
	mock.Mock
}

func (m *EthClient) ChainID(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *EthClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, blockNumber)
	return bigOrNil(args.Get(0)), args.Error(1)
}

func (m *EthClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *EthClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	args := m.Called(ctx, number)
	h, _ := args.Get(0).(*types.Header)
	return h, args.Error(1)
}

func (m *EthClient) Close() {
	m.Called()
}

func bigOrNil(v interface{}) *big.Int {
	b, _ := v.(*big.Int)
	return b
}
