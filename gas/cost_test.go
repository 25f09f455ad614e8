package gas

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcGasTotal_ZeroLimit(t *testing.T) {
	price, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	total, err := CalcGasTotal(0, price)
	require.NoError(t, err)
	assert.Equal(t, 0, total.Sign())
}

func TestCalcGasTotal_TwentyGwei(t *testing.T) {
	price, err := DecGweiToWei("20")
	require.NoError(t, err)
	total, err := CalcGasTotal(21000, price)
	require.NoError(t, err)

	want, err := DecimalToHex("420000000000000")
	require.NoError(t, err)
	assert.Equal(t, want, EncodeHex(total))
}

func TestCalcGasTotal_BeyondUint64(t *testing.T) {
	price := new(big.Int).SetUint64(0xFFFFFFFFFFFFFFFF)
	total, err := CalcGasTotal(21000, price)
	require.NoError(t, err)

	want, _ := new(big.Int).SetString("387381625547900583915000", 10)
	assert.Equal(t, 0, want.Cmp(total), "got %s", total.String())
	assert.Equal(t, "0x5207ffffffffffffadf8", EncodeHex(total))
}

func TestCalcGasTotal_Overflow(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err := CalcGasTotal(1, tooBig)
	assert.ErrorIs(t, err, ErrOverflow)

	half := new(big.Int).Lsh(big.NewInt(1), 255)
	_, err = CalcGasTotal(2, half)
	assert.ErrorIs(t, err, ErrOverflow)

	total, err := CalcGasTotal(1, half)
	require.NoError(t, err)
	assert.Equal(t, 0, half.Cmp(total))
}

func TestCalcGasTotal_InvalidPrice(t *testing.T) {
	_, err := CalcGasTotal(21000, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = CalcGasTotal(21000, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestCalcGasTotalHex(t *testing.T) {
	got, err := CalcGasTotalHex("0x5208", "0x4a817c800")
	require.NoError(t, err)
	assert.Equal(t, "0x17dfcdece4000", got)

	_, err = CalcGasTotalHex("0x10000000000000000", "0x1")
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = CalcGasTotalHex("zz", "0x1")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = CalcGasTotalHex("0x5208", "")
	assert.ErrorIs(t, err, ErrMalformedInput)
}
