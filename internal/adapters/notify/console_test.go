package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/wrapped"
)

func sampleTrade() domain.Trade {
	return domain.Trade{
		Ticker: "KXBTC-25DEC31",
		Side:   domain.SideYes,
		Market: domain.Market{
			Ticker: "KXBTC-25DEC31",
			Title:  "BTC above 100k?",
		},
		BuySize:    10,
		BuyPrice:   30,
		BuyTime:    time.Unix(1_700_000_000, 0),
		Outcome:    domain.OutcomeSold,
		SellPrice:  55,
		SellSize:   10,
		ClosedTime: time.Unix(1_700_100_000, 0),
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	trade := sampleTrade()
	c.PrintSummary(&wrapped.Summary{
		TotalVolume:           120,
		TotalRealizedPnLCents: 250,
		TotalTrades:           4,
		Wins:                  3,
		WinRatePct:            75.0,
		FirstTradeTs:          1_700_000_000,
		FavoriteCategory:      "Crypto",
		FavoriteCategoryCount: 3,
		BiggestWin: &wrapped.Highlight{
			Trade:            trade,
			RealizedPnLCents: 250,
			Pct:              83.3,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "KALSHI WRAPPED")
	assert.Contains(t, out, "Contracts bought:  120")
	assert.Contains(t, out, "+$2.50")
	assert.Contains(t, out, "75.0% (3/4)")
	assert.Contains(t, out, "Favorite category: Crypto (3 trades)")
	assert.Contains(t, out, "Biggest win")
	assert.Contains(t, out, "BTC above 100k?")
}

func TestPrintSummary_NoHighlights(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	c.PrintSummary(&wrapped.Summary{})

	out := buf.String()
	assert.Contains(t, out, "Completed trades:  0")
	assert.NotContains(t, out, "Biggest win")
}

func TestPrintTrades(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	c.PrintTrades([]domain.Trade{sampleTrade()}, nil)

	out := buf.String()
	assert.Contains(t, out, "1 trades (showing 1)")
	assert.Contains(t, out, "30¢")
	assert.Contains(t, out, "55¢")
	assert.Contains(t, out, "sold")
	assert.Contains(t, out, "+$2.50")
}

func TestPrintTrades_HiddenByDefault(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	c.PrintTrades([]domain.Trade{sampleTrade()}, nil)

	assert.Empty(t, buf.String())
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "+$1.50", formatCents(150))
	assert.Equal(t, "-$0.35", formatCents(-35))
	assert.Equal(t, "$0.00", formatCents(0))
}
