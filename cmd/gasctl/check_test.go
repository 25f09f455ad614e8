package main

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/nando-os/ghost-gas/eth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	senderAddress    = "0x00000000000000000000000000000000000000a1"
	recipientAddress = "0x00000000000000000000000000000000000000b2"
)

type fakeGasClient struct {
	balance  *big.Int
	limit    uint64
	estimate error
	calls    []ethereum.CallMsg
	closed   bool
}

func (f *fakeGasClient) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeGasClient) EstimateGasLimit(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.calls = append(f.calls, msg)
	return f.limit, f.estimate
}

func (f *fakeGasClient) Close() {
	f.closed = true
}

func useFakeClient(t *testing.T, fake *fakeGasClient) {
	t.Helper()
	t.Setenv("ETH_CHAIN_ID", "1")
	t.Setenv("ETH_ACCOUNTS", "main")
	t.Setenv("ETH_ACCOUNT_MAIN_ADDRESS", senderAddress)
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")

	orig := dialGasClient
	dialGasClient = func(ctx context.Context, cfg eth.Config) (eth.GasClient, error) {
		return fake, nil
	}
	t.Cleanup(func() { dialGasClient = orig })
}

func TestCheckCommand_EstimatesLimitForAccount(t *testing.T) {
	fake := &fakeGasClient{balance: big.NewInt(1e18), limit: 23100}
	useFakeClient(t, fake)

	out, err := run(t, "check", "--account", "main", "--to", recipientAddress,
		"--data", "0x0102", "--amount-wei", "1000", "--tiers", "low=1,medium=2,high=3")
	require.NoError(t, err)
	assert.Contains(t, out, "gas limit: 23100 (0x5a3c)")
	assert.Contains(t, out, "balance: sufficient")

	require.Len(t, fake.calls, 1)
	msg := fake.calls[0]
	assert.Equal(t, common.HexToAddress(senderAddress), msg.From)
	assert.Equal(t, common.HexToAddress(recipientAddress), *msg.To)
	assert.Equal(t, "1000", msg.Value.String())
	assert.Equal(t, []byte{1, 2}, msg.Data)
	assert.True(t, fake.closed)
}

func TestCheckCommand_AccountWithoutRecipientUsesDefaultLimit(t *testing.T) {
	fake := &fakeGasClient{balance: big.NewInt(1)}
	useFakeClient(t, fake)
	t.Setenv("ETH_GAS_LIMIT_DEFAULT", "30000")

	out, err := run(t, "check", "--account", "main", "--price-gwei", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "gas limit: 30000")
	assert.Contains(t, out, "balance: insufficient")
	assert.Empty(t, fake.calls)
}

func TestCheckCommand_ExplicitLimitSkipsEstimate(t *testing.T) {
	fake := &fakeGasClient{balance: big.NewInt(1e18), limit: 99999}
	useFakeClient(t, fake)

	out, err := run(t, "check", "--account", "main", "--to", recipientAddress, "--price-gwei", "1", "--limit", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "gas limit: 50000")
	assert.Empty(t, fake.calls)
}

func TestCheckCommand_EstimateErrors(t *testing.T) {
	fake := &fakeGasClient{balance: big.NewInt(1e18), estimate: errors.New("execution reverted")}
	useFakeClient(t, fake)

	_, err := run(t, "check", "--account", "main", "--to", recipientAddress, "--price-gwei", "1")
	assert.Error(t, err)

	_, err = run(t, "check", "--account", "main", "--to", "nowhere", "--price-gwei", "1")
	assert.Error(t, err)

	_, err = run(t, "check", "--account", "main", "--to", recipientAddress, "--data", "zz", "--price-gwei", "1")
	assert.Error(t, err)

	_, err = run(t, "check", "--balance-wei", "1", "--to", recipientAddress, "--price-gwei", "1")
	assert.Error(t, err)
}
