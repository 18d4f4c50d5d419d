package kalshi

// candles.go — chunked candlestick history fetcher.
//
// The candlesticks endpoint caps every request at 5000 candles, so long
// windows are walked in sequential chunks and merged. Chunks are fetched
// one at a time to keep cursor advancement predictable; a failed chunk is
// logged and skipped so one bad range never kills the whole series.

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

// CandleInterval es el tamaño del bucket en minutos. La API solo acepta
// 1, 60 o 1440.
type CandleInterval int

const (
	IntervalMinute CandleInterval = 1
	IntervalHour   CandleInterval = 60
	IntervalDay    CandleInterval = 1440
)

const (
	maxCandlesPerRequest = 5000
	maxChunkIterations   = 250 // guard contra loops infinitos por cursores rotos
	twoWeeksSeconds      = 14 * 24 * 60 * 60
	backfillRatio        = 0.1 // ventana extra antes del start para contexto del chart
)

// GetCandlesticks devuelve el histórico de precios de un mercado entre
// startTs y endTs (unix seconds), troceado en requests bajo el cap de 5000
// candles y deduplicado por end_period_ts.
//
// El series_ticker se resuelve vía mercado → evento; si el evento no tiene
// series, devuelve una serie vacía en lugar de fallar. El intervalo se
// elige automáticamente por el tamaño de la ventana: 1 minuto para ventanas
// de menos de 14 días, 1 hora para el resto.
func (c *Client) GetCandlesticks(ctx context.Context, ticker string, startTs, endTs int64) ([]domain.Candlestick, error) {
	return c.GetCandlesticksInterval(ctx, ticker, startTs, endTs, 0)
}

// GetCandlesticksInterval es GetCandlesticks con intervalo explícito.
// interval == 0 selecciona el intervalo automáticamente.
func (c *Client) GetCandlesticksInterval(ctx context.Context, ticker string, startTs, endTs int64, interval CandleInterval) ([]domain.Candlestick, error) {
	if ticker == "" {
		return nil, fmt.Errorf("kalshi.GetCandlesticks: ticker is required")
	}

	market, err := c.GetMarket(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("kalshi.GetCandlesticks: resolve market: %w", err)
	}
	event, err := c.GetEvent(ctx, market.EventTicker)
	if err != nil {
		return nil, fmt.Errorf("kalshi.GetCandlesticks: resolve event: %w", err)
	}
	if event.SeriesTicker == "" {
		slog.Warn("missing series_ticker for market, returning empty series",
			"ticker", ticker,
			"event_ticker", market.EventTicker,
		)
		return nil, nil
	}

	if startTs > endTs {
		startTs, endTs = endTs, startTs
	}
	span := endTs - startTs

	if interval == 0 {
		interval = IntervalHour
		if span < twoWeeksSeconds {
			interval = IntervalMinute
		}
	}
	periodSeconds := int64(interval) * 60
	maxSpanSeconds := periodSeconds * maxCandlesPerRequest

	// Ampliar la ventana un 10% antes del start (sin bajar de 0) para dar
	// contexto al chart.
	backfill := int64(float64(span) * backfillRatio)
	cursor := startTs - backfill
	if cursor < 0 {
		cursor = 0
	}

	path := fmt.Sprintf("%s/series/%s/markets/%s/candlesticks",
		apiPrefix, url.PathEscape(event.SeriesTicker), url.PathEscape(ticker))

	var all []domain.Candlestick
	for iter := 0; cursor < endTs && iter < maxChunkIterations; iter++ {
		// Quedarse estrictamente bajo el cap de 5000 candles para evitar
		// off-by-ones en la validación del servidor.
		chunkEnd := cursor + maxSpanSeconds - 1
		if chunkEnd > endTs {
			chunkEnd = endTs
		}

		params := url.Values{}
		params.Set("start_ts", strconv.FormatInt(cursor, 10))
		params.Set("end_ts", strconv.FormatInt(chunkEnd, 10))
		params.Set("period_interval", strconv.Itoa(int(interval)))

		var resp candlesticksResponse
		if err := c.get(ctx, path, params, &resp); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Un chunk fallido no aborta el fetch: se loguea y se sigue
			// escaneando hacia adelante.
			slog.Warn("candlestick chunk failed, continuing",
				"ticker", ticker,
				"series", event.SeriesTicker,
				"start_ts", cursor,
				"end_ts", chunkEnd,
				"err", err,
			)
			cursor = chunkEnd + periodSeconds
			continue
		}

		if len(resp.Candlesticks) == 0 {
			cursor = chunkEnd + periodSeconds
			continue
		}

		for _, r := range resp.Candlesticks {
			all = append(all, mapCandle(r))
		}

		next := resp.Candlesticks[len(resp.Candlesticks)-1].EndPeriodTs + periodSeconds
		if next < chunkEnd {
			next = chunkEnd
		}
		cursor = next

		slog.Debug("fetched candlestick chunk",
			"ticker", ticker,
			"count", len(resp.Candlesticks),
			"total", len(all),
			"cursor", cursor,
		)
	}

	return dedupeCandles(all), nil
}

// dedupeCandles elimina duplicados por end_period_ts, conservando la
// primera aparición y el orden de llegada.
func dedupeCandles(candles []domain.Candlestick) []domain.Candlestick {
	if len(candles) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(candles))
	out := make([]domain.Candlestick, 0, len(candles))
	for _, c := range candles {
		if _, ok := seen[c.EndPeriodTs]; ok {
			continue
		}
		seen[c.EndPeriodTs] = struct{}{}
		out = append(out, c)
	}
	return out
}

// FetchPriceSeries implementa ports.CandleProvider: devuelve la serie de
// precios yes (cents) del mercado, una muestra por timestamp.
func (c *Client) FetchPriceSeries(ctx context.Context, ticker string, startTs, endTs int64) ([]domain.PricePoint, error) {
	candles, err := c.GetCandlesticks(ctx, ticker, startTs, endTs)
	if err != nil {
		return nil, err
	}
	points := make([]domain.PricePoint, 0, len(candles))
	for _, cd := range candles {
		points = append(points, domain.PricePoint{Ts: cd.EndPeriodTs, Price: cd.ClosePrice()})
	}
	return points, nil
}
