package trading

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cryptoclient/internal/auth"
	"cryptoclient/internal/rest"
)

// API endpoint paths. Paths are appended to the base URL verbatim and form
// part of the signed payload, so the trailing slashes are significant.
const (
	accountsPath       = "/api/v1/crypto/trading/accounts/"
	holdingsPath       = "/api/v1/crypto/trading/holdings/"
	ordersPath         = "/api/v1/crypto/trading/orders/"
	bestBidAskPath     = "/api/v1/crypto/marketdata/best_bid_ask/"
	estimatedPricePath = "/api/v1/crypto/marketdata/estimated_price/"
)

// Client is the high-level trading API client. It owns the credentials and
// composes request building, signing, and dispatch, so callers never
// handle a partially signed request.
type Client struct {
	apiKey string
	seed   string
	rest   *rest.Client
}

// NewClient creates a trading client for the given credentials and base
// URL. Dispatcher behaviour (timeout, rate limiting, logging) is tuned
// through rest options.
func NewClient(apiKey, privateKeySeed, baseURL string, opts ...rest.Option) *Client {
	return &Client{
		apiKey: apiKey,
		seed:   privateKeySeed,
		rest:   rest.NewClient(baseURL, opts...),
	}
}

// SignAndSend builds a request for the given call, signs it with the
// client's key, and dispatches it. Every endpoint wrapper reduces to this.
func (c *Client) SignAndSend(ctx context.Context, path, method, body string) (json.RawMessage, error) {
	req := auth.NewRequest(c.apiKey, path, method, body)
	signed, err := auth.Sign(req, c.seed)
	if err != nil {
		return nil, err
	}
	return c.rest.Send(ctx, signed)
}

// GetAccount fetches the trading account summary
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	raw, err := c.SignAndSend(ctx, accountsPath, http.MethodGet, "")
	if err != nil {
		return nil, rest.ErrorWithContext(err, "GetAccount")
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, rest.ErrorWithContext(err, "GetAccount")
	}

	return &account, nil
}

// GetHoldings fetches current holdings, optionally restricted to the given
// asset codes. All pages are followed.
func (c *Client) GetHoldings(ctx context.Context, assetCodes ...string) ([]Holding, error) {
	var params rest.Params
	params.AddAll("asset_code", assetCodes...)

	path := holdingsPath + params.Encode()
	var holdings []Holding

	for path != "" {
		raw, err := c.SignAndSend(ctx, path, http.MethodGet, "")
		if err != nil {
			return nil, rest.ErrorWithContext(err, "GetHoldings")
		}

		var page holdingsPage
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, rest.ErrorWithContext(err, "GetHoldings")
		}
		holdings = append(holdings, page.Results...)

		path, err = nextPath(page.Next)
		if err != nil {
			return nil, rest.ErrorWithContext(err, "GetHoldings")
		}
	}

	return holdings, nil
}

// GetOrders fetches order history matching the filter. All pages are
// followed; the API's return order is not relied on by any consumer.
func (c *Client) GetOrders(ctx context.Context, filter OrderFilter) ([]Order, error) {
	var params rest.Params
	if filter.Symbol != "" {
		params.Add("symbol", filter.Symbol)
	}
	if filter.Side != "" {
		params.Add("side", string(filter.Side))
	}
	if filter.State != "" {
		params.Add("state", string(filter.State))
	}

	path := ordersPath + params.Encode()
	var orders []Order

	for path != "" {
		raw, err := c.SignAndSend(ctx, path, http.MethodGet, "")
		if err != nil {
			return nil, rest.ErrorWithContext(err, "GetOrders")
		}

		var page ordersPage
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, rest.ErrorWithContext(err, "GetOrders")
		}
		orders = append(orders, page.Results...)

		path, err = nextPath(page.Next)
		if err != nil {
			return nil, rest.ErrorWithContext(err, "GetOrders")
		}
	}

	return orders, nil
}

// GetOrder fetches a single order by ID
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("orderID is required")
	}

	raw, err := c.SignAndSend(ctx, ordersPath+orderID+"/", http.MethodGet, "")
	if err != nil {
		return nil, rest.ErrorWithContext(err, "GetOrder")
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, rest.ErrorWithContext(err, "GetOrder")
	}

	return &order, nil
}

// PlaceOrder submits a new order. A missing client order ID is filled with
// a fresh UUID before validation.
func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if req.ClientOrderID == "" {
		req.ClientOrderID = uuid.NewString()
	}
	if err := req.Validate(); err != nil {
		return nil, rest.ErrorWithContext(err, "PlaceOrder")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, rest.ErrorWithContext(err, "PlaceOrder")
	}

	raw, err := c.SignAndSend(ctx, ordersPath, http.MethodPost, string(body))
	if err != nil {
		return nil, rest.ErrorWithContext(err, "PlaceOrder")
	}

	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, rest.ErrorWithContext(err, "PlaceOrder")
	}

	return &order, nil
}

// CancelOrder cancels an open order. The endpoint takes no parameters; an
// empty JSON object satisfies the body requirement for POST requests.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return fmt.Errorf("orderID is required")
	}

	_, err := c.SignAndSend(ctx, ordersPath+orderID+"/cancel/", http.MethodPost, "{}")
	if err != nil {
		return rest.ErrorWithContext(err, "CancelOrder")
	}

	return nil
}

// GetBestBidAsk fetches the current best bid and ask for the given trading
// pairs.
func (c *Client) GetBestBidAsk(ctx context.Context, symbols ...string) ([]BestBidAsk, error) {
	var params rest.Params
	params.AddAll("symbol", symbols...)

	raw, err := c.SignAndSend(ctx, bestBidAskPath+params.Encode(), http.MethodGet, "")
	if err != nil {
		return nil, rest.ErrorWithContext(err, "GetBestBidAsk")
	}

	var results bestBidAskResults
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, rest.ErrorWithContext(err, "GetBestBidAsk")
	}

	return results.Results, nil
}

// GetEstimatedPrice fetches estimated execution prices for one or more
// quantities of a trading pair. side is "bid", "ask", or "both".
func (c *Client) GetEstimatedPrice(ctx context.Context, symbol, side string, quantities ...decimal.Decimal) ([]EstimatedPrice, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if len(quantities) == 0 {
		return nil, fmt.Errorf("at least one quantity is required")
	}

	qty := make([]string, len(quantities))
	for i, q := range quantities {
		qty[i] = q.String()
	}

	var params rest.Params
	params.Add("symbol", symbol)
	params.Add("side", side)
	params.Add("quantity", strings.Join(qty, ","))

	raw, err := c.SignAndSend(ctx, estimatedPricePath+params.Encode(), http.MethodGet, "")
	if err != nil {
		return nil, rest.ErrorWithContext(err, "GetEstimatedPrice")
	}

	var results estimatedPriceResults
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, rest.ErrorWithContext(err, "GetEstimatedPrice")
	}

	return results.Results, nil
}

// nextPath converts the absolute next-page URL from a paginated response
// into the path-and-query form requests are signed over. An empty next
// means the last page was reached.
func nextPath(next string) (string, error) {
	if next == "" {
		return "", nil
	}

	u, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next page URL %q: %w", next, err)
	}
	return u.RequestURI(), nil
}
