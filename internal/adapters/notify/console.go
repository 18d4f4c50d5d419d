package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/wrapped"
)

// Console imprime el resumen wrapped y la tabla de trades por stdout.
type Console struct {
	out       io.Writer
	showAll   bool // imprime todos los trades, no solo los destacados
	maxTrades int
}

// NewConsole crea un Console que escribe a stdout.
func NewConsole(showAll bool) *Console {
	return NewConsoleWriter(os.Stdout, showAll)
}

// NewConsoleWriter crea un Console que escribe al writer dado.
func NewConsoleWriter(out io.Writer, showAll bool) *Console {
	return &Console{out: out, showAll: showAll, maxTrades: 50}
}

// PrintSummary imprime el resumen completo del año.
func (c *Console) PrintSummary(s *wrapped.Summary) {
	fmt.Fprintf(c.out, "\n=== KALSHI WRAPPED ===\n\n")

	fmt.Fprintf(c.out, "  Contracts bought:  %d\n", s.TotalVolume)
	fmt.Fprintf(c.out, "  Completed trades:  %d\n", s.TotalTrades)
	fmt.Fprintf(c.out, "  Realized P&L:      %s\n", formatCents(s.TotalRealizedPnLCents))
	fmt.Fprintf(c.out, "  Win rate:          %.1f%% (%d/%d)\n", s.WinRatePct, s.Wins, s.TotalTrades)
	if s.FirstTradeTs > 0 {
		fmt.Fprintf(c.out, "  First trade:       %s\n", time.Unix(s.FirstTradeTs, 0).Format("2006-01-02"))
	}
	if s.FavoriteCategory != "" {
		fmt.Fprintf(c.out, "  Favorite category: %s (%d trades)\n", s.FavoriteCategory, s.FavoriteCategoryCount)
	}
	fmt.Fprintln(c.out)

	c.printHighlights(s)
}

// printHighlights imprime la tabla de trades destacados.
func (c *Console) printHighlights(s *wrapped.Summary) {
	type row struct {
		label string
		h     *wrapped.Highlight
	}
	rows := []row{
		{"Biggest win", s.BiggestWin},
		{"Biggest loss", s.BiggestLoss},
		{"Biggest longshot", s.BiggestLongshot},
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Highlight", "Market", "Side", "Size", "Buy", "Close", "P&L", "Return")

	printed := 0
	for _, r := range rows {
		if r.h == nil {
			continue
		}
		t := r.h.Trade
		table.Append(
			r.label,
			t.Market.Label(40),
			string(t.Side),
			fmt.Sprintf("%d", t.Size()),
			fmt.Sprintf("%d¢", t.BuyPrice),
			closeLabel(t),
			formatCents(r.h.RealizedPnLCents),
			fmt.Sprintf("%+.1f%%", r.h.Pct),
		)
		printed++
	}

	if m := s.MissedOpportunity; m != nil {
		table.Append(
			"Missed opportunity",
			m.Trade.Market.Label(40),
			string(m.Trade.Side),
			fmt.Sprintf("%d", m.Trade.SellSize),
			fmt.Sprintf("%d¢", m.Trade.BuyPrice),
			fmt.Sprintf("sold %d¢, peaked %d¢", m.Trade.SellPrice, m.BestAfterSellPrice),
			formatCents(-m.PotentialGainCents),
			"",
		)
		printed++
	}

	if printed > 0 {
		table.Render()
	}
}

// PrintTrades imprime la tabla completa de trades reconstruidos,
// ordenados por timestamp de cierre.
func (c *Console) PrintTrades(trades []domain.Trade, results map[string]domain.MarketResult) {
	if !c.showAll || len(trades) == 0 {
		return
	}

	limit := min(len(trades), c.maxTrades)
	fmt.Fprintf(c.out, "\n%d trades (showing %d)\n", len(trades), limit)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Side", "Size", "Buy", "Close", "Kind", "P&L")

	for i, t := range trades[:limit] {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.Market.Label(40),
			string(t.Side),
			fmt.Sprintf("%d", t.Size()),
			fmt.Sprintf("%d¢", t.BuyPrice),
			closeLabel(t),
			string(t.Outcome),
			formatCents(t.RealizedPnLCents(results[t.Ticker])),
		)
	}

	table.Render()
}

// closeLabel describe el evento de cierre de un trade.
func closeLabel(t domain.Trade) string {
	if t.Sold() {
		return fmt.Sprintf("%d¢", t.SellPrice)
	}
	return "settled"
}

// formatCents formatea cents como dólares con signo.
func formatCents(cents int) string {
	switch {
	case cents > 0:
		return fmt.Sprintf("+$%.2f", float64(cents)/100)
	case cents < 0:
		return fmt.Sprintf("-$%.2f", float64(-cents)/100)
	}
	return "$0.00"
}
