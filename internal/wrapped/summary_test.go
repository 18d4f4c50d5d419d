package wrapped

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

type stubEvents struct {
	categories map[string]string
}

func (s *stubEvents) GetEvent(_ context.Context, eventTicker string) (domain.Event, error) {
	cat, ok := s.categories[eventTicker]
	if !ok {
		return domain.Event{}, errors.New("event not found")
	}
	return domain.Event{Ticker: eventTicker, Category: cat}, nil
}

type stubCandles struct {
	series map[string][]domain.PricePoint
	calls  int
}

func (s *stubCandles) FetchPriceSeries(_ context.Context, ticker string, _, _ int64) ([]domain.PricePoint, error) {
	s.calls++
	return s.series[ticker], nil
}

func ts(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func soldTrade(ticker string, buy, sellPx, size int, closedAt int64) domain.Trade {
	return domain.Trade{
		Ticker:     ticker,
		Side:       domain.SideYes,
		Market:     domain.Market{Ticker: ticker, EventTicker: "EVT-" + ticker},
		BuySize:    size,
		BuyPrice:   buy,
		BuyTime:    ts(closedAt - 3600),
		Outcome:    domain.OutcomeSold,
		SellPrice:  sellPx,
		SellSize:   size,
		ClosedTime: ts(closedAt),
	}
}

func settledTrade(ticker string, buy, size int, closedAt int64) domain.Trade {
	t := soldTrade(ticker, buy, 0, size, closedAt)
	t.Outcome = domain.OutcomeSettled
	t.SellPrice, t.SellSize = 0, 0
	t.SettleSize = size
	return t
}

func TestBuild_Totals(t *testing.T) {
	trades := []domain.Trade{
		soldTrade("A", 30, 50, 10, 200_000), // +200
		soldTrade("B", 60, 40, 5, 300_000),  // -100
	}
	fills := []domain.Fill{
		{Action: domain.ActionBuy, Count: 10},
		{Action: domain.ActionBuy, Count: 5},
		{Action: domain.ActionSell, Count: 15}, // las ventas no suman volumen
	}

	s, err := Build(context.Background(), trades, fills, nil, Deps{})
	require.NoError(t, err)

	assert.Equal(t, 15, s.TotalVolume)
	assert.Equal(t, 100, s.TotalRealizedPnLCents)
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.Wins)
	assert.InDelta(t, 50.0, s.WinRatePct, 0.01)
	assert.Equal(t, ts(200_000-3600).Unix(), s.FirstTradeTs)
}

func TestBuild_BiggestWinWeightedScore(t *testing.T) {
	// A gana más en absoluto (1000 vs 600) pero B tiene un retorno mucho
	// mayor: con pesos 0.6/0.4 el score de B (0.76) supera al de A (0.616).
	trades := []domain.Trade{
		soldTrade("A", 50, 70, 50, 200_000), // +1000, +40%
		soldTrade("B", 3, 33, 20, 300_000),  // +600, +1000%
	}

	s, err := Build(context.Background(), trades, nil, nil, Deps{})
	require.NoError(t, err)

	require.NotNil(t, s.BiggestWin)
	assert.Equal(t, "B", s.BiggestWin.Trade.Ticker)
	assert.Equal(t, 600, s.BiggestWin.RealizedPnLCents)
}

func TestBuild_BiggestLossAndNoWin(t *testing.T) {
	trades := []domain.Trade{
		soldTrade("A", 60, 40, 5, 200_000),  // -100
		soldTrade("B", 80, 20, 10, 300_000), // -600
	}

	s, err := Build(context.Background(), trades, nil, nil, Deps{})
	require.NoError(t, err)

	assert.Nil(t, s.BiggestWin)
	require.NotNil(t, s.BiggestLoss)
	assert.Equal(t, "B", s.BiggestLoss.Trade.Ticker)
	assert.Equal(t, -600, s.BiggestLoss.RealizedPnLCents)
}

func TestBuild_BiggestLongshot(t *testing.T) {
	trades := []domain.Trade{
		settledTrade("A", 8, 10, 200_000),  // longshot ganador a 8¢
		settledTrade("B", 45, 10, 300_000), // ganador normal
		settledTrade("C", 2, 10, 400_000),  // perdedor: no cuenta
	}
	settlements := []domain.Settlement{
		{Ticker: "A", MarketResult: domain.ResultYes, YesCount: 1, SettledTime: ts(200_000)},
		{Ticker: "B", MarketResult: domain.ResultYes, YesCount: 1, SettledTime: ts(300_000)},
		{Ticker: "C", MarketResult: domain.ResultNo, NoCount: 1, SettledTime: ts(400_000)},
	}

	s, err := Build(context.Background(), trades, nil, settlements, Deps{})
	require.NoError(t, err)

	require.NotNil(t, s.BiggestLongshot)
	assert.Equal(t, "A", s.BiggestLongshot.Trade.Ticker)
	assert.Equal(t, 8, s.BiggestLongshot.Trade.BuyPrice)
}

func TestBuild_FavoriteCategory(t *testing.T) {
	trades := []domain.Trade{
		soldTrade("A", 30, 50, 1, 200_000),
		soldTrade("B", 30, 50, 1, 300_000),
		soldTrade("C", 30, 50, 1, 400_000),
	}
	events := &stubEvents{categories: map[string]string{
		"EVT-A": "Politics",
		"EVT-B": "Politics",
		// EVT-C falla el lookup → cuenta como "Other"
	}}

	s, err := Build(context.Background(), trades, nil, nil, Deps{Events: events})
	require.NoError(t, err)

	assert.Equal(t, "Politics", s.FavoriteCategory)
	assert.Equal(t, 2, s.FavoriteCategoryCount)
}

func TestBuild_MissedOpportunity(t *testing.T) {
	trades := []domain.Trade{
		soldTrade("A", 30, 40, 10, 10_000),
	}
	candles := &stubCandles{series: map[string][]domain.PricePoint{
		"A": {
			{Ts: 9_000, Price: 90}, // antes de vender: no cuenta
			{Ts: 11_000, Price: 70},
			{Ts: 12_000, Price: 65},
		},
	}}

	s, err := Build(context.Background(), trades, nil, nil, Deps{
		Candles: candles,
		Now:     func() time.Time { return ts(20_000) },
	})
	require.NoError(t, err)

	require.NotNil(t, s.MissedOpportunity)
	m := s.MissedOpportunity
	assert.Equal(t, 70, m.BestAfterSellPrice)
	assert.Equal(t, int64(11_000), m.BestAfterSellTs)
	assert.Equal(t, (70-40)*10, m.PotentialGainCents)
	assert.Equal(t, int64(10_000-3600), m.Markers.BuyTs)
	assert.True(t, m.Markers.HasSell)
	assert.Equal(t, 40, m.Markers.SellPrice)
}

func TestBuild_NoCandlesSkipsCharts(t *testing.T) {
	trades := []domain.Trade{
		soldTrade("A", 30, 50, 10, 200_000),
	}

	s, err := Build(context.Background(), trades, nil, nil, Deps{})
	require.NoError(t, err)

	require.NotNil(t, s.BiggestWin)
	assert.Empty(t, s.BiggestWin.Series)
	assert.Nil(t, s.MissedOpportunity)
}

func TestBuild_NoSidePriceSeries(t *testing.T) {
	// Para un trade del lado no, la serie yes se invierte al frame no.
	trade := soldTrade("A", 70, 80, 5, 10_000)
	trade.Side = domain.SideNo

	candles := &stubCandles{series: map[string][]domain.PricePoint{
		"A": {{Ts: 9_500, Price: 25}},
	}}

	s, err := Build(context.Background(), []domain.Trade{trade}, nil, nil, Deps{
		Candles: candles,
		Now:     func() time.Time { return ts(20_000) },
	})
	require.NoError(t, err)

	require.NotNil(t, s.BiggestWin)
	require.Len(t, s.BiggestWin.Series, 1)
	assert.Equal(t, 75, s.BiggestWin.Series[0].Price)
}
