package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lusitania/vatledger/internal/money"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "10.56", money.FromFloat(10.555).String())
	assert.Equal(t, "10", money.FromFloat(10).String())
}

func TestPercent(t *testing.T) {
	// 20 at 5.4%: no intermediate rounding, the result is exact.
	got := money.Percent(money.FromInt(20), money.MustFromString("5.4"))
	assert.Equal(t, "1.08", got.String())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "1.08", money.Round2(money.MustFromString("1.084")).String())
	assert.Equal(t, "1.09", money.Round2(money.MustFromString("1.085")).String())
}

func TestFromString(t *testing.T) {
	got, err := money.FromString("7.35")
	assert.NoError(t, err)
	assert.Equal(t, "7.35", got.String())

	_, err = money.FromString("sete")
	assert.Error(t, err)
}

func TestClampZero(t *testing.T) {
	assert.True(t, money.ClampZero(money.MustFromString("-3")).Equal(money.Zero))
	assert.Equal(t, "3", money.ClampZero(money.MustFromString("3")).String())
	assert.True(t, money.IsPositive(money.FromInt(1)))
	assert.False(t, money.IsPositive(money.Zero))
}
