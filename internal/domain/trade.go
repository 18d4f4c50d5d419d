package domain

import "time"

// TradeOutcome discrimina cómo se cerró un trade reconstruido.
type TradeOutcome string

const (
	// OutcomeSold: cerrado por un fill contrario (sell).
	OutcomeSold TradeOutcome = "sold"
	// OutcomeSettled: cerrado por la liquidación del mercado.
	OutcomeSettled TradeOutcome = "settled"
)

// Trade es un round-trip completo reconstruido a partir de fills y
// settlements: una apertura (buy) más exactamente un evento de cierre.
// Outcome discrimina la variante: los campos Sell* solo son válidos con
// OutcomeSold y SettleSize solo con OutcomeSettled.
type Trade struct {
	Ticker string
	Side   Side
	Market Market // se rellena en la fase de metadata

	BuySize  int
	BuyPrice int // cents, normalizado al marco del lado comprado
	BuyTime  time.Time

	Outcome TradeOutcome

	SellPrice int // cents, normalizado al mismo marco que BuyPrice
	SellSize  int

	SettleSize int

	// ClosedTime es el timestamp del evento de cierre: el fill de venta
	// si Outcome es sold, o settled_time si Outcome es settled.
	ClosedTime time.Time
}

// Sold devuelve true si el trade se cerró con un fill contrario.
func (t Trade) Sold() bool { return t.Outcome == OutcomeSold }

// Settled devuelve true si el trade se cerró por liquidación.
func (t Trade) Settled() bool { return t.Outcome == OutcomeSettled }

// Size devuelve la cantidad cerrada del trade, igual a BuySize en ambas
// variantes (invariante del reconciliador).
func (t Trade) Size() int { return t.BuySize }

// SettlePayout devuelve el payout en cents de un contrato del lado dado
// cuando el mercado resuelve con result. Solo aplica a binarios.
func SettlePayout(side Side, result MarketResult) (int, bool) {
	switch result {
	case ResultYes, ResultNo:
		if MarketResult(side) == result {
			return 100, true
		}
		return 0, true
	}
	return 0, false
}

// RealizedPnLCents calcula el P&L realizado del trade en cents.
// Para trades settled necesita el resultado del mercado; los resultados
// scalar/void devuelven 0 (solo se soporta payout binario).
func (t Trade) RealizedPnLCents(result MarketResult) int {
	switch t.Outcome {
	case OutcomeSold:
		return (t.SellPrice - t.BuyPrice) * t.SellSize
	case OutcomeSettled:
		if payout, ok := SettlePayout(t.Side, result); ok {
			return (payout - t.BuyPrice) * t.SettleSize
		}
	}
	return 0
}

// ReturnPct calcula el retorno porcentual del trade sobre el precio de
// compra. Devuelve 0 si el precio de compra es 0 o el resultado no aplica.
func (t Trade) ReturnPct(result MarketResult) float64 {
	if t.BuyPrice <= 0 {
		return 0
	}
	switch t.Outcome {
	case OutcomeSold:
		return float64(t.SellPrice-t.BuyPrice) / float64(t.BuyPrice) * 100
	case OutcomeSettled:
		if payout, ok := SettlePayout(t.Side, result); ok {
			return float64(payout-t.BuyPrice) / float64(t.BuyPrice) * 100
		}
	}
	return 0
}
