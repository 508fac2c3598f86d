package trading

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeInForce controls how long a resting order stays active
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "gtc"
	TimeInForceIOC TimeInForce = "ioc"
	TimeInForceFOK TimeInForce = "fok"
)

// MarketOrderConfig executes immediately at the best available price
type MarketOrderConfig struct {
	AssetQuantity decimal.Decimal `json:"asset_quantity"`
}

// LimitOrderConfig rests at the limit price
type LimitOrderConfig struct {
	AssetQuantity decimal.Decimal `json:"asset_quantity"`
	LimitPrice    decimal.Decimal `json:"limit_price"`
	TimeInForce   TimeInForce     `json:"time_in_force"`
}

// StopLossOrderConfig triggers a market order at the stop price
type StopLossOrderConfig struct {
	AssetQuantity decimal.Decimal `json:"asset_quantity"`
	StopPrice     decimal.Decimal `json:"stop_price"`
	TimeInForce   TimeInForce     `json:"time_in_force"`
}

// StopLimitOrderConfig triggers a limit order at the stop price
type StopLimitOrderConfig struct {
	AssetQuantity decimal.Decimal `json:"asset_quantity"`
	LimitPrice    decimal.Decimal `json:"limit_price"`
	StopPrice     decimal.Decimal `json:"stop_price"`
	TimeInForce   TimeInForce     `json:"time_in_force"`
}

// OrderRequest creates a new order. Exactly one of the config fields must
// be set and it must match Type; the constructors below enforce that shape
// so a request never mixes configurations.
type OrderRequest struct {
	Symbol        string    `json:"symbol"`
	ClientOrderID string    `json:"client_order_id"`
	Side          Side      `json:"side"`
	Type          OrderType `json:"type"`

	MarketOrderConfig    *MarketOrderConfig    `json:"market_order_config,omitempty"`
	LimitOrderConfig     *LimitOrderConfig     `json:"limit_order_config,omitempty"`
	StopLossOrderConfig  *StopLossOrderConfig  `json:"stop_loss_order_config,omitempty"`
	StopLimitOrderConfig *StopLimitOrderConfig `json:"stop_limit_order_config,omitempty"`
}

// NewMarketOrder builds a market order request with a fresh client order ID
func NewMarketOrder(symbol string, side Side, quantity decimal.Decimal) *OrderRequest {
	return &OrderRequest{
		Symbol:            symbol,
		ClientOrderID:     uuid.NewString(),
		Side:              side,
		Type:              OrderTypeMarket,
		MarketOrderConfig: &MarketOrderConfig{AssetQuantity: quantity},
	}
}

// NewLimitOrder builds a limit order request with a fresh client order ID
func NewLimitOrder(symbol string, side Side, quantity, limitPrice decimal.Decimal, tif TimeInForce) *OrderRequest {
	return &OrderRequest{
		Symbol:        symbol,
		ClientOrderID: uuid.NewString(),
		Side:          side,
		Type:          OrderTypeLimit,
		LimitOrderConfig: &LimitOrderConfig{
			AssetQuantity: quantity,
			LimitPrice:    limitPrice,
			TimeInForce:   tif,
		},
	}
}

// NewStopLossOrder builds a stop-loss order request with a fresh client order ID
func NewStopLossOrder(symbol string, side Side, quantity, stopPrice decimal.Decimal, tif TimeInForce) *OrderRequest {
	return &OrderRequest{
		Symbol:        symbol,
		ClientOrderID: uuid.NewString(),
		Side:          side,
		Type:          OrderTypeStopLoss,
		StopLossOrderConfig: &StopLossOrderConfig{
			AssetQuantity: quantity,
			StopPrice:     stopPrice,
			TimeInForce:   tif,
		},
	}
}

// NewStopLimitOrder builds a stop-limit order request with a fresh client order ID
func NewStopLimitOrder(symbol string, side Side, quantity, limitPrice, stopPrice decimal.Decimal, tif TimeInForce) *OrderRequest {
	return &OrderRequest{
		Symbol:        symbol,
		ClientOrderID: uuid.NewString(),
		Side:          side,
		Type:          OrderTypeStopLimit,
		StopLimitOrderConfig: &StopLimitOrderConfig{
			AssetQuantity: quantity,
			LimitPrice:    limitPrice,
			StopPrice:     stopPrice,
			TimeInForce:   tif,
		},
	}
}

// Validate validates the order request
func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return fmt.Errorf("side must be %q or %q", SideBuy, SideSell)
	}

	configs := 0
	if r.MarketOrderConfig != nil {
		configs++
	}
	if r.LimitOrderConfig != nil {
		configs++
	}
	if r.StopLossOrderConfig != nil {
		configs++
	}
	if r.StopLimitOrderConfig != nil {
		configs++
	}
	if configs != 1 {
		return fmt.Errorf("exactly one order config is required, got %d", configs)
	}

	switch r.Type {
	case OrderTypeMarket:
		if r.MarketOrderConfig == nil {
			return fmt.Errorf("market orders require market_order_config")
		}
		if !r.MarketOrderConfig.AssetQuantity.IsPositive() {
			return fmt.Errorf("asset quantity must be positive")
		}
	case OrderTypeLimit:
		if r.LimitOrderConfig == nil {
			return fmt.Errorf("limit orders require limit_order_config")
		}
		if !r.LimitOrderConfig.AssetQuantity.IsPositive() {
			return fmt.Errorf("asset quantity must be positive")
		}
		if !r.LimitOrderConfig.LimitPrice.IsPositive() {
			return fmt.Errorf("limit price must be positive")
		}
	case OrderTypeStopLoss:
		if r.StopLossOrderConfig == nil {
			return fmt.Errorf("stop-loss orders require stop_loss_order_config")
		}
		if !r.StopLossOrderConfig.AssetQuantity.IsPositive() {
			return fmt.Errorf("asset quantity must be positive")
		}
		if !r.StopLossOrderConfig.StopPrice.IsPositive() {
			return fmt.Errorf("stop price must be positive")
		}
	case OrderTypeStopLimit:
		if r.StopLimitOrderConfig == nil {
			return fmt.Errorf("stop-limit orders require stop_limit_order_config")
		}
		if !r.StopLimitOrderConfig.AssetQuantity.IsPositive() {
			return fmt.Errorf("asset quantity must be positive")
		}
		if !r.StopLimitOrderConfig.LimitPrice.IsPositive() {
			return fmt.Errorf("limit price must be positive")
		}
		if !r.StopLimitOrderConfig.StopPrice.IsPositive() {
			return fmt.Errorf("stop price must be positive")
		}
	default:
		return fmt.Errorf("unknown order type: %q", r.Type)
	}

	return nil
}
