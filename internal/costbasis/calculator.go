package costbasis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cryptoclient/internal/rest"
	"cryptoclient/internal/trading"
)

const defaultQuoteCurrency = "USD"

// OrderHistory is the slice of the trading API the calculator needs.
// Satisfied by *trading.Client.
type OrderHistory interface {
	GetHoldings(ctx context.Context, assetCodes ...string) ([]trading.Holding, error)
	GetOrders(ctx context.Context, filter trading.OrderFilter) ([]trading.Order, error)
}

// Calculator pulls holdings and filled-order history from the trading API
// and feeds them through the FIFO engine. Requests run sequentially, one
// buy-side and one sell-side history fetch per held asset.
type Calculator struct {
	api           OrderHistory
	quoteCurrency string
	logger        zerolog.Logger
}

// CalculatorOption configures the calculator
type CalculatorOption func(*Calculator)

// WithQuoteCurrency overrides the quote currency used to derive trading
// pair symbols from asset codes (default USD).
func WithQuoteCurrency(quote string) CalculatorOption {
	return func(c *Calculator) {
		c.quoteCurrency = quote
	}
}

// WithLogger sets the logger used for per-asset progress
func WithLogger(logger zerolog.Logger) CalculatorOption {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator creates a calculator backed by the given API client
func NewCalculator(api OrderHistory, opts ...CalculatorOption) *Calculator {
	calc := &Calculator{
		api:           api,
		quoteCurrency: defaultQuoteCurrency,
		logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(calc)
	}

	return calc
}

// ComputeCostBasis fetches current holdings (optionally restricted to the
// given asset codes) and, per asset, the filled buy and sell order
// history, then computes one FIFO summary per held asset. Execution order
// within an asset is re-sorted locally rather than trusted from the API.
func (c *Calculator) ComputeCostBasis(ctx context.Context, assetCodes ...string) ([]Summary, error) {
	apiHoldings, err := c.api.GetHoldings(ctx, assetCodes...)
	if err != nil {
		return nil, rest.ErrorWithContext(err, "ComputeCostBasis")
	}

	holdings := make([]Holding, 0, len(apiHoldings))
	buys := make(map[string][]Execution, len(apiHoldings))
	sells := make(map[string][]Execution, len(apiHoldings))

	for _, h := range apiHoldings {
		holdings = append(holdings, Holding{
			AssetCode: h.AssetCode,
			Quantity:  h.TotalQuantity,
		})

		symbol := h.AssetCode + "-" + c.quoteCurrency

		buys[h.AssetCode], err = c.fetchExecutions(ctx, symbol, trading.SideBuy)
		if err != nil {
			return nil, err
		}
		sells[h.AssetCode], err = c.fetchExecutions(ctx, symbol, trading.SideSell)
		if err != nil {
			return nil, err
		}

		c.logger.Debug().
			Str("asset", h.AssetCode).
			Int("buy_executions", len(buys[h.AssetCode])).
			Int("sell_executions", len(sells[h.AssetCode])).
			Msg("fetched order history")
	}

	return Compute(holdings, buys, sells), nil
}

// fetchExecutions pulls the filled orders for one side of a symbol and
// flattens their fills, tagging each with the order's creation time.
func (c *Calculator) fetchExecutions(ctx context.Context, symbol string, side trading.Side) ([]Execution, error) {
	orders, err := c.api.GetOrders(ctx, trading.OrderFilter{
		Symbol: symbol,
		Side:   side,
		State:  trading.OrderStateFilled,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s orders for %s: %w", side, symbol, err)
	}

	var execs []Execution
	for _, order := range orders {
		for _, e := range order.Executions {
			execs = append(execs, Execution{
				Quantity:       e.Quantity,
				EffectivePrice: e.EffectivePrice,
				OrderCreatedAt: order.CreatedAt,
			})
		}
	}
	return execs, nil
}
