package domain

import "time"

// Side es uno de los dos lados de un contrato binario.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// Opposite devuelve el lado contrario.
func (s Side) Opposite() Side {
	if s == SideYes {
		return SideNo
	}
	return SideYes
}

// Action indica si un fill abrió o cerró exposición.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Fill representa una ejecución de una orden en Kalshi. Es inmutable:
// los fills son inputs de solo lectura para la reconciliación.
type Fill struct {
	FillID      string
	OrderID     string
	Ticker      string
	Side        Side
	Action      Action
	Count       int
	Price       int // cents, 0-100
	YesPrice    int
	NoPrice     int
	HasPrice    bool
	HasYesPrice bool
	HasNoPrice  bool
	IsTaker     bool
	CreatedTime time.Time
}

// FillPrice devuelve el precio del fill en cents. La API puede devolver el
// precio codificado como yes_price, no_price o price; se prueba en ese orden.
func (f Fill) FillPrice() int {
	switch {
	case f.HasYesPrice:
		return f.YesPrice
	case f.HasNoPrice:
		return f.NoPrice
	case f.HasPrice:
		return f.Price
	}
	return 0
}

// NormalizePrice expresa un precio raw en la escala de cents del lado dado.
// Ambos lados de un contrato binario liquidan en el mismo marco 0-100:
// un precio del lado "no" se expresa como 100 - raw.
func NormalizePrice(side Side, price int) int {
	if side == SideNo {
		return 100 - price
	}
	return price
}

// PriceForSide convierte un precio yes (como los de candlesticks) al lado dado.
func PriceForSide(yesPrice int, side Side) int {
	if side == SideNo {
		return 100 - yesPrice
	}
	return yesPrice
}
