package amount

import (
	"math/big"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWei(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		wei, err := ToWei("2")
		require.NoError(t, err)
		expected, _ := new(big.Int).SetString("2000000000000000000", 10)
		assert.Equal(t, expected, wei)
	})
	t.Run("fraction", func(t *testing.T) {
		wei, err := ToWei("0.000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1), wei)
	})
	t.Run("too many decimals", func(t *testing.T) {
		_, err := ToWei("0.0000000000000000001")
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ToWei("abc")
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := ToWei("  ")
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestFromWei(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FromWei(wei))
	assert.Equal(t, "0", FromWei(nil))
	assert.Equal(t, "0", FromWei(big.NewInt(0)))
	assert.Equal(t, "100", FromWei(new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))))
}

func TestArithmetic(t *testing.T) {
	sum, err := Add("1", "2")
	require.NoError(t, err)
	assert.Equal(t, "3", sum)

	diff, err := Sub("1", "2.5")
	require.NoError(t, err)
	assert.Equal(t, "-1.5", diff)

	clamped, err := ClampSub("1", "2.5")
	require.NoError(t, err)
	assert.Equal(t, "0", clamped)

	_, err = Add("1", "x")
	require.ErrorIs(t, err, ErrInvalidAmount)

	assert.True(t, IsPositive("0.1"))
	assert.False(t, IsPositive("0"))
	assert.False(t, IsPositive("-1"))
	assert.Equal(t, 1.25, ToFloat("1.25"))
	assert.Equal(t, 0.0, ToFloat("nope"))
}

func TestWeiRoundTrip(t *testing.T) {
	faker := gofakeit.New(42)
	for range 200 {
		f := faker.Float64Range(0, 1e12)
		s := strconv.FormatFloat(f, 'f', 6, 64)

		wei, err := ToWei(s)
		require.NoError(t, err)
		back := FromWei(wei)

		original, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		recovered, err := strconv.ParseFloat(back, 64)
		require.NoError(t, err)
		assert.InEpsilon(t, original+1, recovered+1, 1e-6, "round trip of %s gave %s", s, back)
	}
}
