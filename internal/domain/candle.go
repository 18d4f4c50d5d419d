package domain

// CandlePrice agrega los precios yes de un bucket del histórico.
// Los campos son punteros porque la API omite los que no aplican.
type CandlePrice struct {
	Open     *int
	High     *int
	Low      *int
	Close    *int
	Mean     *int
	Previous *int
}

// Candlestick es un bucket del histórico de precios de un mercado.
type Candlestick struct {
	EndPeriodTs  int64 // unix seconds, fin del periodo
	Price        CandlePrice
	Volume       int
	OpenInterest int
}

// ClosePrice devuelve el precio representativo del bucket en cents:
// close, o mean, o previous, en ese orden; 0 si no hay ninguno.
func (c Candlestick) ClosePrice() int {
	switch {
	case c.Price.Close != nil:
		return *c.Price.Close
	case c.Price.Mean != nil:
		return *c.Price.Mean
	case c.Price.Previous != nil:
		return *c.Price.Previous
	}
	return 0
}

// PricePoint es una muestra (timestamp, precio) de una serie ya deduplicada.
type PricePoint struct {
	Ts    int64 // unix seconds
	Price int   // cents
}
