package domain

import "time"

// Balance es el balance de la cuenta en cents.
type Balance struct {
	BalanceCents   int
	PortfolioValue int
	UpdatedAt      time.Time
}

// MarketPosition es la posición abierta de la cuenta en un mercado.
type MarketPosition struct {
	Ticker             string
	Position           int // contratos netos: positivo = yes, negativo = no
	TotalTraded        int
	MarketExposure     int
	RealizedPnl        int
	RestingOrdersCount int
	FeesPaid           int
}

// EventPosition agrega la exposición de la cuenta a nivel de evento.
type EventPosition struct {
	EventTicker       string
	TotalCost         int
	EventExposure     int
	RealizedPnl       int
	RestingOrderCount int
	FeesPaid          int
}
