package trading

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side represents the side of an order
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType identifies which configuration an order carries
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStopLoss  OrderType = "stop_loss"
	OrderTypeStopLimit OrderType = "stop_limit"
)

// OrderState is the lifecycle state reported by the API
type OrderState string

const (
	OrderStateOpen            OrderState = "open"
	OrderStatePartiallyFilled OrderState = "partially_filled"
	OrderStateFilled          OrderState = "filled"
	OrderStateCanceled        OrderState = "canceled"
	OrderStateFailed          OrderState = "failed"
)

// Account is the trading account summary
type Account struct {
	AccountNumber       string          `json:"account_number"`
	Status              string          `json:"status"`
	BuyingPower         decimal.Decimal `json:"buying_power"`
	BuyingPowerCurrency string          `json:"buying_power_currency"`
}

// Holding is the currently held quantity of one asset. TotalQuantity
// includes amounts locked in open orders; QuantityAvailableForTrading does
// not.
type Holding struct {
	AccountNumber               string          `json:"account_number"`
	AssetCode                   string          `json:"asset_code"`
	TotalQuantity               decimal.Decimal `json:"total_quantity"`
	QuantityAvailableForTrading decimal.Decimal `json:"quantity_available_for_trading"`
}

// Execution is a single fill of an order
type Execution struct {
	EffectivePrice decimal.Decimal `json:"effective_price"`
	Quantity       decimal.Decimal `json:"quantity"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Order is an order as reported by the API, including its fills
type Order struct {
	ID                  string          `json:"id"`
	AccountNumber       string          `json:"account_number"`
	Symbol              string          `json:"symbol"`
	ClientOrderID       string          `json:"client_order_id"`
	Side                Side            `json:"side"`
	Type                OrderType       `json:"type"`
	State               OrderState      `json:"state"`
	AveragePrice        decimal.Decimal `json:"average_price"`
	FilledAssetQuantity decimal.Decimal `json:"filled_asset_quantity"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Executions          []Execution     `json:"executions"`

	MarketOrderConfig    *MarketOrderConfig    `json:"market_order_config,omitempty"`
	LimitOrderConfig     *LimitOrderConfig     `json:"limit_order_config,omitempty"`
	StopLossOrderConfig  *StopLossOrderConfig  `json:"stop_loss_order_config,omitempty"`
	StopLimitOrderConfig *StopLimitOrderConfig `json:"stop_limit_order_config,omitempty"`
}

// BestBidAsk is the current spread-inclusive quote for one trading pair
type BestBidAsk struct {
	Symbol                   string          `json:"symbol"`
	Price                    decimal.Decimal `json:"price"`
	BidInclusiveOfSellSpread decimal.Decimal `json:"bid_inclusive_of_sell_spread"`
	SellSpread               decimal.Decimal `json:"sell_spread"`
	AskInclusiveOfBuySpread  decimal.Decimal `json:"ask_inclusive_of_buy_spread"`
	BuySpread                decimal.Decimal `json:"buy_spread"`
	Timestamp                time.Time       `json:"timestamp"`
}

// EstimatedPrice is the estimated execution price for a given quantity
type EstimatedPrice struct {
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderFilter narrows an order-history query. Zero-valued fields are
// omitted from the request.
type OrderFilter struct {
	Symbol string
	Side   Side
	State  OrderState
}

// Paginated list envelopes. The API returns cursor pagination with
// absolute URLs in next/previous.

type ordersPage struct {
	Next     string  `json:"next"`
	Previous string  `json:"previous"`
	Results  []Order `json:"results"`
}

type holdingsPage struct {
	Next     string    `json:"next"`
	Previous string    `json:"previous"`
	Results  []Holding `json:"results"`
}

type bestBidAskResults struct {
	Results []BestBidAsk `json:"results"`
}

type estimatedPriceResults struct {
	Results []EstimatedPrice `json:"results"`
}
