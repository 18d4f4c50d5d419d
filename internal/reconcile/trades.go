package reconcile

// trades.go — reconstrucción de trades completos a partir de fills y
// settlements.
//
// Un "trade" es un round-trip: una compra más exactamente un cierre, sea un
// fill contrario o la liquidación del mercado. Los fills llegan parciales e
// intercalados, así que el matching es FIFO por lotes: cada buy crea un lote
// y cada sell consume lotes del lado contrario, del más antiguo al más
// nuevo. Lo que no cierra ni un sell ni un settlement es posición abierta y
// no aparece en el resultado.

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/kalshi-wrapped/internal/domain"
	"github.com/alejandrodnm/kalshi-wrapped/internal/ports"
)

// lot es la porción sin consumir de un buy fill. Vive solo durante una
// llamada a BuildTrades.
type lot struct {
	ticker    string
	side      domain.Side
	remaining int
	price     int // cents raw, sin normalizar
	created   time.Time
}

// queueKey identifica la cola de lotes de un (ticker, side).
type queueKey struct {
	ticker string
	side   domain.Side
}

// lotQueues mantiene las colas FIFO de lotes por (ticker, side),
// preservando el orden de creación de las colas para que el resultado
// sea determinista.
type lotQueues struct {
	byKey map[queueKey][]*lot
	order []queueKey
}

func newLotQueues() *lotQueues {
	return &lotQueues{byKey: make(map[queueKey][]*lot)}
}

func (q *lotQueues) push(k queueKey, l *lot) {
	if _, ok := q.byKey[k]; !ok {
		q.order = append(q.order, k)
	}
	q.byKey[k] = append(q.byKey[k], l)
}

// BuildTrades reconstruye los trades completos de la cuenta.
//
// Pasos:
//  1. ordenar fills por created_time ascendente; a igual timestamp los buys
//     van antes que los sells (un buy+sell simultáneo es "abrir y cerrar",
//     nunca al revés);
//  2. matching FIFO de sells contra lotes de compra del lado contrario;
//  3. absorción de settlements sobre los lotes restantes;
//  4. resolución concurrente de metadata de mercado, una vez por ticker.
//
// Si falla el lookup de cualquier ticker, falla la reconstrucción entera.
func BuildTrades(ctx context.Context, fills []domain.Fill, settlements []domain.Settlement, lookup ports.MarketLookup) ([]domain.Trade, error) {
	sorted := sortFills(fills)

	trades, queues := pairBuysAndSells(sorted)
	trades = absorbSettlements(trades, queues, settlements)

	if err := attachMarkets(ctx, trades, lookup); err != nil {
		return nil, err
	}
	return trades, nil
}

// sortFills devuelve una copia ordenada por created_time ascendente,
// con buys antes que sells en caso de empate.
func sortFills(fills []domain.Fill) []domain.Fill {
	sorted := make([]domain.Fill, len(fills))
	copy(sorted, fills)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.CreatedTime.Equal(b.CreatedTime) {
			return a.CreatedTime.Before(b.CreatedTime)
		}
		if a.Action == b.Action {
			return false
		}
		return a.Action == domain.ActionBuy
	})
	return sorted
}

// pairBuysAndSells recorre los fills ordenados emparejando sells con lotes
// de compra. Un sell del lado S cierra exposición abierta como buy del lado
// contrario: en un contrato binario vender "yes" deshace lo que se abrió
// comprando "no" del mismo frame económico.
func pairBuysAndSells(fills []domain.Fill) ([]domain.Trade, *lotQueues) {
	queues := newLotQueues()
	var trades []domain.Trade

	for _, fill := range fills {
		price := fill.FillPrice()

		switch fill.Action {
		case domain.ActionBuy:
			queues.push(queueKey{fill.Ticker, fill.Side}, &lot{
				ticker:    fill.Ticker,
				side:      fill.Side,
				remaining: fill.Count,
				price:     price,
				created:   fill.CreatedTime,
			})

		case domain.ActionSell:
			k := queueKey{fill.Ticker, fill.Side.Opposite()}
			queue := queues.byKey[k]
			toSell := fill.Count

			for toSell > 0 && len(queue) > 0 {
				l := queue[0]
				matched := min(l.remaining, toSell)
				if matched <= 0 {
					break
				}

				trades = append(trades, domain.Trade{
					Ticker:   l.ticker,
					Side:     l.side,
					BuySize:  matched,
					BuyPrice: domain.NormalizePrice(l.side, l.price),
					BuyTime:  l.created,
					Outcome:  domain.OutcomeSold,
					// El precio de venta se normaliza al lado del buy
					// original para que el P&L cuadre.
					SellPrice:  domain.NormalizePrice(l.side, price),
					SellSize:   matched,
					ClosedTime: fill.CreatedTime,
				})

				l.remaining -= matched
				toSell -= matched
				if l.remaining == 0 {
					queue = queue[1:]
				}
			}
			queues.byKey[k] = queue
		}
	}

	return trades, queues
}

// absorbSettlements cierra contra su settlement los lotes que quedaron sin
// vender. Los settlements con yes_count == no_count representan posiciones
// completamente cerradas y se ignoran. Lo que el settlement no absorbe se
// descarta en silencio: es posición abierta, no un trade completo.
func absorbSettlements(trades []domain.Trade, queues *lotQueues, settlements []domain.Settlement) []domain.Trade {
	byTicker := make(map[string]domain.Settlement, len(settlements))
	for _, s := range settlements {
		if s.FullyExited() {
			continue
		}
		byTicker[s.Ticker] = s
	}

	for _, k := range queues.order {
		queue := queues.byKey[k]
		if len(queue) == 0 {
			continue
		}
		settlement, ok := byTicker[k.ticker]
		if !ok {
			continue
		}

		sideCount := settlement.SideCount(k.side)
		if sideCount <= 0 {
			continue
		}

		for _, l := range queue {
			if sideCount <= 0 {
				break
			}
			matched := min(l.remaining, sideCount)
			if matched <= 0 {
				continue
			}

			trades = append(trades, domain.Trade{
				Ticker:     l.ticker,
				Side:       l.side,
				BuySize:    matched,
				BuyPrice:   domain.NormalizePrice(l.side, l.price),
				BuyTime:    l.created,
				Outcome:    domain.OutcomeSettled,
				SettleSize: matched,
				ClosedTime: settlement.SettledTime,
			})

			sideCount -= matched
			l.remaining -= matched
		}
	}

	return trades
}

// attachMarkets resuelve la metadata de cada ticker exactamente una vez,
// en paralelo, y la adjunta a todos los trades del ticker. Un lookup
// fallido cancela el resto y aborta la reconstrucción completa.
func attachMarkets(ctx context.Context, trades []domain.Trade, lookup ports.MarketLookup) error {
	if len(trades) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var tickers []string
	for _, t := range trades {
		if _, ok := seen[t.Ticker]; ok {
			continue
		}
		seen[t.Ticker] = struct{}{}
		tickers = append(tickers, t.Ticker)
	}

	var mu sync.Mutex
	markets := make(map[string]domain.Market, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			m, err := lookup.GetMarket(gctx, ticker)
			if err != nil {
				return fmt.Errorf("reconcile: lookup market %s: %w", ticker, err)
			}
			mu.Lock()
			markets[ticker] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range trades {
		trades[i].Market = markets[trades[i].Ticker]
	}
	return nil
}
