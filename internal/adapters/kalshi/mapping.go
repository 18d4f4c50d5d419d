package kalshi

import (
	"time"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

// mapFill convierte un rawFill DTO a domain.Fill.
func mapFill(r rawFill) domain.Fill {
	f := domain.Fill{
		FillID:      r.FillID,
		OrderID:     r.OrderID,
		Ticker:      r.Ticker,
		Side:        domain.Side(r.Side),
		Action:      domain.Action(r.Action),
		Count:       r.Count,
		IsTaker:     r.IsTaker,
		CreatedTime: parseAPITime(r.CreatedTime),
	}
	if r.Price != nil {
		f.Price, f.HasPrice = *r.Price, true
	}
	if r.YesPrice != nil {
		f.YesPrice, f.HasYesPrice = *r.YesPrice, true
	}
	if r.NoPrice != nil {
		f.NoPrice, f.HasNoPrice = *r.NoPrice, true
	}
	return f
}

// mapSettlement convierte un rawSettlement DTO a domain.Settlement.
func mapSettlement(r rawSettlement) domain.Settlement {
	return domain.Settlement{
		Ticker:       r.Ticker,
		MarketResult: domain.MarketResult(r.MarketResult),
		YesCount:     r.YesCount,
		YesTotalCost: r.YesTotalCost,
		NoCount:      r.NoCount,
		NoTotalCost:  r.NoTotalCost,
		Revenue:      r.Revenue,
		SettledTime:  parseAPITime(r.SettledTime),
	}
}

// mapMarket convierte un rawMarket DTO a domain.Market.
func mapMarket(r rawMarket) domain.Market {
	return domain.Market{
		Ticker:         r.Ticker,
		EventTicker:    r.EventTicker,
		MarketType:     r.MarketType,
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		YesSubTitle:    r.YesSubTitle,
		NoSubTitle:     r.NoSubTitle,
		Status:         r.Status,
		Result:         r.Result,
		Category:       r.Category,
		YesBid:         r.YesBid,
		YesAsk:         r.YesAsk,
		NoBid:          r.NoBid,
		NoAsk:          r.NoAsk,
		LastPrice:      r.LastPrice,
		Volume:         r.Volume,
		Volume24h:      r.Volume24h,
		OpenInterest:   r.OpenInterest,
		Liquidity:      r.Liquidity,
		OpenTime:       parseAPITime(r.OpenTime),
		CloseTime:      parseAPITime(r.CloseTime),
		ExpirationTime: parseAPITime(r.ExpirationTime),
		TickSize:       r.TickSize,
		CanCloseEarly:  r.CanCloseEarly,
	}
}

// mapEvent convierte un rawEvent DTO a domain.Event.
func mapEvent(r rawEvent) domain.Event {
	return domain.Event{
		Ticker:       r.Ticker,
		SeriesTicker: r.SeriesTicker,
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Category:     r.Category,
	}
}

// mapCandle convierte un rawCandle DTO a domain.Candlestick.
func mapCandle(r rawCandle) domain.Candlestick {
	return domain.Candlestick{
		EndPeriodTs: r.EndPeriodTs,
		Price: domain.CandlePrice{
			Open:     r.Price.Open,
			High:     r.Price.High,
			Low:      r.Price.Low,
			Close:    r.Price.Close,
			Mean:     r.Price.Mean,
			Previous: r.Price.Previous,
		},
		Volume:       r.Volume,
		OpenInterest: r.OpenInterest,
	}
}

// parseAPITime parsea los timestamps RFC3339 de la API.
// Devuelve el zero value si el string está vacío o no parsea.
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
