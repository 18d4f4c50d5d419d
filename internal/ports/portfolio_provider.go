package ports

import (
	"context"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

// PortfolioProvider obtiene la actividad histórica de la cuenta.
type PortfolioProvider interface {
	// FetchAllFills recorre todas las páginas de fills hasta agotar el cursor.
	FetchAllFills(ctx context.Context) ([]domain.Fill, error)
	// FetchAllSettlements recorre todas las páginas de settlements.
	FetchAllSettlements(ctx context.Context) ([]domain.Settlement, error)
}

// CandleProvider obtiene la serie de precios de un mercado en una ventana,
// ya troceada, ordenada y deduplicada.
type CandleProvider interface {
	FetchPriceSeries(ctx context.Context, ticker string, startTs, endTs int64) ([]domain.PricePoint, error)
}
