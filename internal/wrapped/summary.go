package wrapped

// summary.go — reducers del resumen "wrapped" sobre la lista de trades
// reconstruidos. Todo es cómputo puro sobre los inputs salvo dos fuentes
// externas opcionales: el lookup de eventos (para categorías) y el provider
// de candles (para las series de los highlights y la oportunidad perdida).

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/ports"
)

const (
	// Pesos del score compuesto del biggest win: el P&L absoluto pesa más
	// que el retorno porcentual.
	winWeightProfit = 0.6
	winWeightPct    = 0.4

	// Solo se escanean los últimos N trades vendidos buscando la
	// oportunidad perdida; cada candidato cuesta un fetch de candles.
	missedScanLimit = 25
)

// Highlight es un trade destacado con su serie de precios y markers.
type Highlight struct {
	Trade            domain.Trade
	RealizedPnLCents int
	Pct              float64
	Series           []domain.PricePoint
	Markers          Markers
}

// Missed es la venta con mayor ganancia dejada sobre la mesa: el precio
// siguió subiendo después de vender.
type Missed struct {
	Trade              domain.Trade
	BestAfterSellPrice int
	BestAfterSellTs    int64
	PotentialGainCents int
	Series             []domain.PricePoint
	Markers            Markers
}

// Summary es el resumen completo de la actividad del año.
type Summary struct {
	TotalVolume           int // contratos comprados
	TotalRealizedPnLCents int
	TotalTrades           int
	Wins                  int
	WinRatePct            float64
	FirstTradeTs          int64 // 0 si no hay trades

	FavoriteCategory      string
	FavoriteCategoryCount int

	BiggestWin        *Highlight
	BiggestLoss       *Highlight
	BiggestLongshot   *Highlight
	MissedOpportunity *Missed
}

// Deps son los colaboradores externos del builder. Events y Candles pueden
// ser nil: sin Events no hay categoría favorita, sin Candles no hay series
// ni oportunidad perdida.
type Deps struct {
	Events  ports.EventLookup
	Candles ports.CandleProvider
	Now     func() time.Time
}

// Build computa el resumen wrapped a partir de los trades reconstruidos y
// la actividad raw de la cuenta.
func Build(ctx context.Context, trades []domain.Trade, fills []domain.Fill, settlements []domain.Settlement, deps Deps) (*Summary, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	resultByTicker := make(map[string]domain.MarketResult, len(settlements))
	settledAtByTicker := make(map[string]time.Time, len(settlements))
	for _, s := range settlements {
		resultByTicker[s.Ticker] = s.MarketResult
		settledAtByTicker[s.Ticker] = s.SettledTime
	}

	s := &Summary{TotalTrades: len(trades)}

	for _, f := range fills {
		if f.Action == domain.ActionBuy {
			s.TotalVolume += f.Count
		}
	}

	realized := make([]int, len(trades))
	for i, t := range trades {
		realized[i] = t.RealizedPnLCents(resultByTicker[t.Ticker])
		s.TotalRealizedPnLCents += realized[i]
		if realized[i] > 0 {
			s.Wins++
		}
	}
	if s.TotalTrades > 0 {
		s.WinRatePct = float64(s.Wins) / float64(s.TotalTrades) * 100
	}

	for _, t := range trades {
		ts := t.BuyTime.Unix()
		if t.BuyTime.IsZero() {
			continue
		}
		if s.FirstTradeTs == 0 || ts < s.FirstTradeTs {
			s.FirstTradeTs = ts
		}
	}

	s.BiggestWin = biggestWin(trades, realized, resultByTicker)
	s.BiggestLoss = biggestLoss(trades, realized)
	s.BiggestLongshot = biggestLongshot(trades, realized, resultByTicker)
	s.FavoriteCategory, s.FavoriteCategoryCount = favoriteCategory(ctx, trades, deps.Events)

	if deps.Candles != nil {
		attachHighlightSeries(ctx, deps.Candles, s, settledAtByTicker, resultByTicker, now())
		s.MissedOpportunity = findMissedOpportunity(ctx, deps.Candles, trades, settledAtByTicker, resultByTicker, now())
	}

	return s, nil
}

// biggestWin elige entre los trades con P&L positivo el de mejor score
// compuesto: 0.6 × P&L normalizado + 0.4 × retorno % normalizado. Así un
// retorno de 10x con poco tamaño puede ganarle a una ganancia grande pero
// porcentualmente plana.
func biggestWin(trades []domain.Trade, realized []int, results map[string]domain.MarketResult) *Highlight {
	var candidates []Highlight
	maxProfit, maxPct := 0, 0.0

	for i, t := range trades {
		if realized[i] <= 0 {
			continue
		}
		pct := t.ReturnPct(results[t.Ticker])
		if math.IsInf(pct, 0) || math.IsNaN(pct) {
			pct = 0
		}
		candidates = append(candidates, Highlight{Trade: t, RealizedPnLCents: realized[i], Pct: pct})
		if realized[i] > maxProfit {
			maxProfit = realized[i]
		}
		if pct > maxPct {
			maxPct = pct
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	best, bestScore := 0, -1.0
	for i, c := range candidates {
		profitNorm, pctNorm := 0.0, 0.0
		if maxProfit > 0 {
			profitNorm = float64(c.RealizedPnLCents) / float64(maxProfit)
		}
		if maxPct > 0 {
			pctNorm = c.Pct / maxPct
		}
		score := winWeightProfit*profitNorm + winWeightPct*pctNorm
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	win := candidates[best]
	return &win
}

// biggestLoss devuelve el trade con la mayor pérdida absoluta.
func biggestLoss(trades []domain.Trade, realized []int) *Highlight {
	var loss *Highlight
	for i, t := range trades {
		if realized[i] >= 0 {
			continue
		}
		if loss == nil || -realized[i] > -loss.RealizedPnLCents {
			loss = &Highlight{Trade: t, RealizedPnLCents: realized[i]}
		}
	}
	return loss
}

// biggestLongshot devuelve el trade liquidado ganador con el precio de
// compra más bajo: la apuesta más improbable que salió bien.
func biggestLongshot(trades []domain.Trade, realized []int, results map[string]domain.MarketResult) *Highlight {
	var longshot *Highlight
	for i, t := range trades {
		if !t.Settled() || realized[i] <= 0 {
			continue
		}
		if longshot == nil || t.BuyPrice < longshot.Trade.BuyPrice {
			longshot = &Highlight{
				Trade:            t,
				RealizedPnLCents: realized[i],
				Pct:              t.ReturnPct(results[t.Ticker]),
			}
		}
	}
	return longshot
}

// favoriteCategory cuenta la categoría del evento de cada trade y devuelve
// la moda. Los lookups de eventos son best-effort: un evento que falla
// cuenta como "Other".
func favoriteCategory(ctx context.Context, trades []domain.Trade, events ports.EventLookup) (string, int) {
	if len(trades) == 0 || events == nil {
		return "", 0
	}

	seen := make(map[string]struct{})
	var eventTickers []string
	for _, t := range trades {
		et := t.Market.EventTicker
		if et == "" {
			continue
		}
		if _, ok := seen[et]; ok {
			continue
		}
		seen[et] = struct{}{}
		eventTickers = append(eventTickers, et)
	}

	var mu sync.Mutex
	categoryByEvent := make(map[string]string, len(eventTickers))

	g, gctx := errgroup.WithContext(ctx)
	for _, et := range eventTickers {
		et := et
		g.Go(func() error {
			evt, err := events.GetEvent(gctx, et)
			if err != nil {
				slog.Debug("event lookup failed, skipping category", "event_ticker", et, "err", err)
				return nil
			}
			mu.Lock()
			categoryByEvent[et] = evt.Category
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	counts := make(map[string]int)
	for _, t := range trades {
		cat := categoryByEvent[t.Market.EventTicker]
		if cat == "" {
			cat = "Other"
		}
		counts[cat]++
	}

	favorite, favoriteCount := "", 0
	for cat, count := range counts {
		if count > favoriteCount || (count == favoriteCount && cat < favorite) {
			favorite, favoriteCount = cat, count
		}
	}
	return favorite, favoriteCount
}

// attachHighlightSeries rellena las series y markers de los highlights.
// Una serie que falla deja el highlight sin chart, nunca tumba el resumen.
func attachHighlightSeries(ctx context.Context, candles ports.CandleProvider, s *Summary, settledAt map[string]time.Time, results map[string]domain.MarketResult, now time.Time) {
	for _, h := range []*Highlight{s.BiggestWin, s.BiggestLoss, s.BiggestLongshot} {
		if h == nil {
			continue
		}
		series, markers, err := buildSeriesForTrade(ctx, candles, h.Trade,
			settledAt[h.Trade.Ticker], results[h.Trade.Ticker], now)
		if err != nil {
			slog.Warn("highlight series failed", "ticker", h.Trade.Ticker, "err", err)
			continue
		}
		h.Series, h.Markers = series, markers
	}
}

// findMissedOpportunity busca entre las últimas ventas el mejor precio
// alcanzado después de vender: la ganancia que quedó sobre la mesa.
func findMissedOpportunity(ctx context.Context, candles ports.CandleProvider, trades []domain.Trade, settledAt map[string]time.Time, results map[string]domain.MarketResult, now time.Time) *Missed {
	var sold []domain.Trade
	for _, t := range trades {
		if t.Sold() && t.SellSize > 0 {
			sold = append(sold, t)
		}
	}
	sort.SliceStable(sold, func(i, j int) bool {
		return sold[i].ClosedTime.After(sold[j].ClosedTime)
	})
	if len(sold) > missedScanLimit {
		sold = sold[:missedScanLimit]
	}

	var missed *Missed
	for _, t := range sold {
		sellTs := t.ClosedTime.Unix()

		series, markers, err := buildSeriesForTrade(ctx, candles, t,
			settledAt[t.Ticker], results[t.Ticker], now)
		if err != nil {
			slog.Debug("missed-opportunity series failed, skipping", "ticker", t.Ticker, "err", err)
			continue
		}

		bestPrice, bestTs := t.SellPrice, sellTs
		for _, p := range series {
			if p.Ts > sellTs && p.Price > bestPrice {
				bestPrice, bestTs = p.Price, p.Ts
			}
		}

		gain := (bestPrice - t.SellPrice) * t.SellSize
		if gain <= 0 {
			continue
		}
		if missed == nil || gain > missed.PotentialGainCents {
			missed = &Missed{
				Trade:              t,
				BestAfterSellPrice: bestPrice,
				BestAfterSellTs:    bestTs,
				PotentialGainCents: gain,
				Series:             series,
				Markers:            markers,
			}
		}
	}
	return missed
}
