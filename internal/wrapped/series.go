package wrapped

import (
	"context"
	"time"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/ports"
)

// Markers son los puntos destacados que el chart de un trade marca sobre
// la serie de precios: la compra y su cierre (venta o liquidación).
type Markers struct {
	BuyTs    int64
	BuyPrice int

	SellTs    int64
	SellPrice int
	HasSell   bool

	SettledTs    int64
	SettledPrice int
	HasSettled   bool
}

// buildSeriesForTrade obtiene la serie de precios del mercado del trade
// desde la compra hasta el cierre (o hasta ahora si sigue vivo), expresada
// en el lado del trade, junto con sus markers.
func buildSeriesForTrade(ctx context.Context, candles ports.CandleProvider, t domain.Trade, settledAt time.Time, result domain.MarketResult, now time.Time) ([]domain.PricePoint, Markers, error) {
	buyTs := t.BuyTime.Unix()

	m := Markers{BuyTs: buyTs, BuyPrice: t.BuyPrice}
	if t.Sold() {
		m.SellTs = t.ClosedTime.Unix()
		m.SellPrice = t.SellPrice
		m.HasSell = true
	}
	if !settledAt.IsZero() {
		m.SettledTs = settledAt.Unix()
		// SettlePayout ya viene en el frame del lado del trade, igual que
		// la serie ajustada de abajo.
		if payout, ok := domain.SettlePayout(t.Side, result); ok {
			m.SettledPrice = payout
			m.HasSettled = true
		}
	}

	endTs := now.Unix()
	switch {
	case !settledAt.IsZero():
		endTs = settledAt.Unix()
	case t.Sold():
		endTs = t.ClosedTime.Unix()
	}

	raw, err := candles.FetchPriceSeries(ctx, t.Ticker, buyTs, endTs)
	if err != nil {
		return nil, m, err
	}

	// Las series vienen en precios yes; se expresan en el lado del trade.
	series := make([]domain.PricePoint, 0, len(raw))
	for _, p := range raw {
		series = append(series, domain.PricePoint{
			Ts:    p.Ts,
			Price: domain.PriceForSide(p.Price, t.Side),
		})
	}
	return series, m, nil
}
