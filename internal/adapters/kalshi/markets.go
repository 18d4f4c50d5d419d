package kalshi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
)

// GetMarket devuelve la metadata de un mercado por ticker.
func (c *Client) GetMarket(ctx context.Context, ticker string) (domain.Market, error) {
	if ticker == "" {
		return domain.Market{}, fmt.Errorf("kalshi.GetMarket: ticker is required")
	}

	path := apiPrefix + "/markets/" + url.PathEscape(ticker)
	var resp marketResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return domain.Market{}, fmt.Errorf("kalshi.GetMarket %s: %w", ticker, err)
	}
	return mapMarket(resp.Market), nil
}

// GetEvent devuelve la metadata de un evento por event_ticker.
func (c *Client) GetEvent(ctx context.Context, eventTicker string) (domain.Event, error) {
	if eventTicker == "" {
		return domain.Event{}, fmt.Errorf("kalshi.GetEvent: event_ticker is required")
	}

	path := apiPrefix + "/events/" + url.PathEscape(eventTicker)
	var resp eventResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return domain.Event{}, fmt.Errorf("kalshi.GetEvent %s: %w", eventTicker, err)
	}
	return mapEvent(resp.Event), nil
}
