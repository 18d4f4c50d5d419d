package ports

import (
	"context"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

// MarketLookup resuelve la metadata de un mercado por ticker.
// Debe ser idempotente por ticker; el reconciliador lo llama exactamente
// una vez por ticker distinto.
type MarketLookup interface {
	GetMarket(ctx context.Context, ticker string) (domain.Market, error)
}

// EventLookup resuelve la metadata de un evento por event_ticker.
type EventLookup interface {
	GetEvent(ctx context.Context, eventTicker string) (domain.Event, error)
}
