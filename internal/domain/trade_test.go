package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	assert.Equal(t, 35, NormalizePrice(SideYes, 35))
	assert.Equal(t, 65, NormalizePrice(SideNo, 35))
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideNo, SideYes.Opposite())
	assert.Equal(t, SideYes, SideNo.Opposite())
}

func TestSettlePayout(t *testing.T) {
	payout, ok := SettlePayout(SideYes, ResultYes)
	assert.True(t, ok)
	assert.Equal(t, 100, payout)

	payout, ok = SettlePayout(SideNo, ResultYes)
	assert.True(t, ok)
	assert.Equal(t, 0, payout)

	_, ok = SettlePayout(SideYes, ResultScalar)
	assert.False(t, ok)

	_, ok = SettlePayout(SideYes, ResultVoid)
	assert.False(t, ok)
}

func TestRealizedPnLCents(t *testing.T) {
	sold := Trade{Outcome: OutcomeSold, BuyPrice: 30, SellPrice: 55, SellSize: 10}
	assert.Equal(t, 250, sold.RealizedPnLCents(""))

	won := Trade{Outcome: OutcomeSettled, Side: SideYes, BuyPrice: 40, SettleSize: 5}
	assert.Equal(t, 300, won.RealizedPnLCents(ResultYes))

	lost := Trade{Outcome: OutcomeSettled, Side: SideYes, BuyPrice: 40, SettleSize: 5}
	assert.Equal(t, -200, lost.RealizedPnLCents(ResultNo))

	// Resultados no binarios no tienen payout definido.
	void := Trade{Outcome: OutcomeSettled, Side: SideYes, BuyPrice: 40, SettleSize: 5}
	assert.Equal(t, 0, void.RealizedPnLCents(ResultVoid))
}

func TestReturnPct(t *testing.T) {
	sold := Trade{Outcome: OutcomeSold, BuyPrice: 20, SellPrice: 50, SellSize: 1}
	assert.InDelta(t, 150.0, sold.ReturnPct(""), 0.01)

	free := Trade{Outcome: OutcomeSold, BuyPrice: 0, SellPrice: 50}
	assert.Zero(t, free.ReturnPct(""))
}

func intp(v int) *int { return &v }

func TestCandlestickClosePrice(t *testing.T) {
	assert.Equal(t, 42, Candlestick{Price: CandlePrice{Close: intp(42), Mean: intp(7)}}.ClosePrice())
	assert.Equal(t, 7, Candlestick{Price: CandlePrice{Mean: intp(7), Previous: intp(3)}}.ClosePrice())
	assert.Equal(t, 3, Candlestick{Price: CandlePrice{Previous: intp(3)}}.ClosePrice())
	assert.Zero(t, Candlestick{}.ClosePrice())
}

func TestFillPriceFallback(t *testing.T) {
	f := Fill{YesPrice: 30, HasYesPrice: true, NoPrice: 70, HasNoPrice: true, Price: 99, HasPrice: true}
	assert.Equal(t, 30, f.FillPrice())

	f = Fill{NoPrice: 70, HasNoPrice: true, Price: 99, HasPrice: true}
	assert.Equal(t, 70, f.FillPrice())

	f = Fill{Price: 99, HasPrice: true}
	assert.Equal(t, 99, f.FillPrice())
}

func TestSettlementFullyExited(t *testing.T) {
	assert.True(t, Settlement{YesCount: 3, NoCount: 3}.FullyExited())
	assert.True(t, Settlement{}.FullyExited())
	assert.False(t, Settlement{YesCount: 3, NoCount: 0}.FullyExited())
}
