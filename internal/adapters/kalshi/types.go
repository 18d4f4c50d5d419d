package kalshi

// DTOs raw de la Trade API v2 de Kalshi. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- Portfolio ---

type balanceResponse struct {
	Balance        int   `json:"balance"`
	PortfolioValue int   `json:"portfolio_value"`
	UpdatedTs      int64 `json:"updated_ts"`
}

type fillsResponse struct {
	Cursor string    `json:"cursor"`
	Fills  []rawFill `json:"fills"`
}

// rawFill usa punteros en los campos de precio porque la API puede codificar
// el precio como price, yes_price o no_price según el endpoint y la época.
type rawFill struct {
	FillID      string `json:"fill_id"`
	TradeID     string `json:"trade_id"`
	OrderID     string `json:"order_id"`
	Ticker      string `json:"ticker"`
	Side        string `json:"side"`
	Action      string `json:"action"`
	Count       int    `json:"count"`
	Price       *int   `json:"price"`
	YesPrice    *int   `json:"yes_price"`
	NoPrice     *int   `json:"no_price"`
	IsTaker     bool   `json:"is_taker"`
	CreatedTime string `json:"created_time"`
}

type settlementsResponse struct {
	Cursor      string          `json:"cursor"`
	Settlements []rawSettlement `json:"settlements"`
}

type rawSettlement struct {
	Ticker       string `json:"ticker"`
	MarketResult string `json:"market_result"`
	YesCount     int    `json:"yes_count"`
	YesTotalCost int    `json:"yes_total_cost"`
	NoCount      int    `json:"no_count"`
	NoTotalCost  int    `json:"no_total_cost"`
	Revenue      int    `json:"revenue"`
	SettledTime  string `json:"settled_time"`
}

type positionsResponse struct {
	Cursor          string              `json:"cursor"`
	MarketPositions []rawMarketPosition `json:"market_positions"`
	EventPositions  []rawEventPosition  `json:"event_positions"`
}

type rawMarketPosition struct {
	Ticker             string `json:"ticker"`
	Position           int    `json:"position"`
	TotalTraded        int    `json:"total_traded"`
	MarketExposure     int    `json:"market_exposure"`
	RealizedPnl        int    `json:"realized_pnl"`
	RestingOrdersCount int    `json:"resting_orders_count"`
	FeesPaid           int    `json:"fees_paid"`
}

type rawEventPosition struct {
	EventTicker       string `json:"event_ticker"`
	TotalCost         int    `json:"total_cost"`
	EventExposure     int    `json:"event_exposure"`
	RealizedPnl       int    `json:"realized_pnl"`
	RestingOrderCount int    `json:"resting_order_count"`
	FeesPaid          int    `json:"fees_paid"`
}

// --- Markets / Events ---

type marketResponse struct {
	Market rawMarket `json:"market"`
}

type rawMarket struct {
	Ticker         string `json:"ticker"`
	EventTicker    string `json:"event_ticker"`
	MarketType     string `json:"market_type"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	YesSubTitle    string `json:"yes_sub_title"`
	NoSubTitle     string `json:"no_sub_title"`
	Status         string `json:"status"`
	Result         string `json:"result"`
	Category       string `json:"category"`
	YesBid         int    `json:"yes_bid"`
	YesAsk         int    `json:"yes_ask"`
	NoBid          int    `json:"no_bid"`
	NoAsk          int    `json:"no_ask"`
	LastPrice      int    `json:"last_price"`
	Volume         int    `json:"volume"`
	Volume24h      int    `json:"volume_24h"`
	OpenInterest   int    `json:"open_interest"`
	Liquidity      int    `json:"liquidity"`
	OpenTime       string `json:"open_time"`
	CloseTime      string `json:"close_time"`
	ExpirationTime string `json:"expiration_time"`
	TickSize       int    `json:"tick_size"`
	CanCloseEarly  bool   `json:"can_close_early"`
}

type eventResponse struct {
	Event rawEvent `json:"event"`
}

type rawEvent struct {
	Ticker       string `json:"ticker"`
	SeriesTicker string `json:"series_ticker"`
	Title        string `json:"title"`
	Subtitle     string `json:"sub_title"`
	Category     string `json:"category"`
}

// --- Candlesticks ---

type candlesticksResponse struct {
	Ticker       string      `json:"ticker"`
	Candlesticks []rawCandle `json:"candlesticks"`
}

type rawCandle struct {
	EndPeriodTs  int64          `json:"end_period_ts"`
	Price        rawCandlePrice `json:"price"`
	Volume       int            `json:"volume"`
	OpenInterest int            `json:"open_interest"`
}

type rawCandlePrice struct {
	Open     *int `json:"open"`
	High     *int `json:"high"`
	Low      *int `json:"low"`
	Close    *int `json:"close"`
	Mean     *int `json:"mean"`
	Previous *int `json:"previous"`
}
