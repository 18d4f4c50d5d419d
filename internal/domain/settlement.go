package domain

import "time"

// MarketResult es el resultado final de un mercado liquidado.
type MarketResult string

const (
	ResultYes    MarketResult = "yes"
	ResultNo     MarketResult = "no"
	ResultScalar MarketResult = "scalar"
	ResultVoid   MarketResult = "void"
)

// Settlement es el registro terminal de un mercado una vez resuelto:
// fija el resultado y las cantidades finales en cartera.
type Settlement struct {
	Ticker       string
	MarketResult MarketResult
	YesCount     int
	NoCount      int
	YesTotalCost int
	NoTotalCost  int
	Revenue      int
	SettledTime  time.Time
}

// FullyExited devuelve true si la posición estaba completamente cerrada al
// liquidar (yes_count == no_count). Estos settlements no llevan exposición
// sin resolver y se excluyen de la reconciliación.
func (s Settlement) FullyExited() bool {
	return s.YesCount == s.NoCount
}

// SideCount devuelve la cantidad en cartera del lado dado al liquidar.
func (s Settlement) SideCount(side Side) int {
	if side == SideYes {
		return s.YesCount
	}
	return s.NoCount
}
