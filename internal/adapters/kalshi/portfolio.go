package kalshi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

const (
	balancePath     = apiPrefix + "/portfolio/balance"
	positionsPath   = apiPrefix + "/portfolio/positions"
	fillsPath       = apiPrefix + "/portfolio/fills"
	settlementsPath = apiPrefix + "/portfolio/settlements"

	fillsPerPage = 1000
	maxPages     = 50 // corte de seguridad al paginar
)

// GetBalance devuelve el balance y el valor del portfolio de la cuenta.
func (c *Client) GetBalance(ctx context.Context) (domain.Balance, error) {
	var resp balanceResponse
	if err := c.get(ctx, balancePath, nil, &resp); err != nil {
		return domain.Balance{}, fmt.Errorf("kalshi.GetBalance: %w", err)
	}
	return domain.Balance{
		BalanceCents:   resp.Balance,
		PortfolioValue: resp.PortfolioValue,
		UpdatedAt:      time.Unix(resp.UpdatedTs, 0),
	}, nil
}

// PositionsParams filtra la consulta de posiciones.
type PositionsParams struct {
	Cursor           string
	Limit            int
	Ticker           string
	EventTicker      string
	SettlementStatus string // all | unsettled | settled
	CountFilter      string
}

// GetPositions devuelve una página de posiciones de mercado y evento,
// junto al cursor de la siguiente página ("" si no hay más).
func (c *Client) GetPositions(ctx context.Context, p PositionsParams) ([]domain.MarketPosition, []domain.EventPosition, string, error) {
	params := url.Values{}
	if p.Cursor != "" {
		params.Set("cursor", p.Cursor)
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Ticker != "" {
		params.Set("ticker", p.Ticker)
	}
	if p.EventTicker != "" {
		params.Set("event_ticker", p.EventTicker)
	}
	if p.SettlementStatus != "" {
		params.Set("settlement_status", p.SettlementStatus)
	}
	if p.CountFilter != "" {
		params.Set("count_filter", p.CountFilter)
	}

	var resp positionsResponse
	if err := c.get(ctx, positionsPath, params, &resp); err != nil {
		return nil, nil, "", fmt.Errorf("kalshi.GetPositions: %w", err)
	}

	markets := make([]domain.MarketPosition, 0, len(resp.MarketPositions))
	for _, r := range resp.MarketPositions {
		markets = append(markets, domain.MarketPosition(r))
	}
	events := make([]domain.EventPosition, 0, len(resp.EventPositions))
	for _, r := range resp.EventPositions {
		events = append(events, domain.EventPosition(r))
	}
	return markets, events, resp.Cursor, nil
}

// GetFills devuelve una página de fills y el cursor de la siguiente.
func (c *Client) GetFills(ctx context.Context, cursor string, limit int) ([]domain.Fill, string, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp fillsResponse
	if err := c.get(ctx, fillsPath, params, &resp); err != nil {
		return nil, "", fmt.Errorf("kalshi.GetFills: %w", err)
	}

	fills := make([]domain.Fill, 0, len(resp.Fills))
	for _, r := range resp.Fills {
		fills = append(fills, mapFill(r))
	}
	return fills, resp.Cursor, nil
}

// FetchAllFills recorre todas las páginas de fills hasta agotar el cursor.
func (c *Client) FetchAllFills(ctx context.Context) ([]domain.Fill, error) {
	var all []domain.Fill
	cursor := ""

	for page := 0; page < maxPages; page++ {
		fills, next, err := c.GetFills(ctx, cursor, fillsPerPage)
		if err != nil {
			return nil, fmt.Errorf("kalshi.FetchAllFills: %w", err)
		}
		all = append(all, fills...)

		slog.Debug("fetched fills page",
			"page", page,
			"count", len(fills),
			"total", len(all),
			"has_more", next != "",
		)

		if next == "" {
			break
		}
		cursor = next
	}

	return all, nil
}

// GetSettlements devuelve una página de settlements y el cursor de la siguiente.
func (c *Client) GetSettlements(ctx context.Context, cursor string) ([]domain.Settlement, string, error) {
	params := url.Values{}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp settlementsResponse
	if err := c.get(ctx, settlementsPath, params, &resp); err != nil {
		return nil, "", fmt.Errorf("kalshi.GetSettlements: %w", err)
	}

	settlements := make([]domain.Settlement, 0, len(resp.Settlements))
	for _, r := range resp.Settlements {
		settlements = append(settlements, mapSettlement(r))
	}
	return settlements, resp.Cursor, nil
}

// FetchAllSettlements recorre todas las páginas de settlements.
func (c *Client) FetchAllSettlements(ctx context.Context) ([]domain.Settlement, error) {
	var all []domain.Settlement
	cursor := ""

	for page := 0; page < maxPages; page++ {
		settlements, next, err := c.GetSettlements(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("kalshi.FetchAllSettlements: %w", err)
		}
		all = append(all, settlements...)

		slog.Debug("fetched settlements page",
			"page", page,
			"count", len(settlements),
			"total", len(all),
			"has_more", next != "",
		)

		if next == "" {
			break
		}
		cursor = next
	}

	return all, nil
}
