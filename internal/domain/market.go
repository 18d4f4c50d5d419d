package domain

import "time"

// Market es la metadata de un mercado de predicción de Kalshi.
// Los campos de precio están en cents (0-100).
type Market struct {
	Ticker      string
	EventTicker string
	MarketType  string // "binary" | "scalar" (scalar solo pass-through)
	Title       string
	Subtitle    string
	YesSubTitle string
	NoSubTitle  string
	Status      string
	Result      string
	Category    string

	YesBid    int
	YesAsk    int
	NoBid     int
	NoAsk     int
	LastPrice int

	Volume       int
	Volume24h    int
	OpenInterest int
	Liquidity    int

	OpenTime       time.Time
	CloseTime      time.Time
	ExpirationTime time.Time
	TickSize       int
	CanCloseEarly  bool
}

// Event agrupa mercados relacionados; su series_ticker es la clave para
// pedir el histórico de precios de toda la familia de mercados.
type Event struct {
	Ticker       string
	SeriesTicker string
	Title        string
	Subtitle     string
	Category     string
}

// Label devuelve el título del mercado truncado a maxLen caracteres,
// con el ticker como fallback si no hay título.
func (m Market) Label(maxLen int) string {
	t := m.Title
	if t == "" {
		t = m.Ticker
	}
	if maxLen > 3 && len(t) > maxLen {
		t = t[:maxLen-3] + "..."
	}
	return t
}
