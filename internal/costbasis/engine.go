package costbasis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Execution is one order fill consumed by the FIFO engine, tagged with the
// creation time of the order it belongs to. Ordering is by order creation
// time: fills of the same order keep their input order.
type Execution struct {
	Quantity       decimal.Decimal
	EffectivePrice decimal.Decimal
	OrderCreatedAt time.Time
}

// Holding is the currently held quantity of one asset as reported by the
// API, independent of the lot computation.
type Holding struct {
	AssetCode string
	Quantity  decimal.Decimal
}

// Summary is the derived cost basis for one asset. CurrentQuantity comes
// straight from holdings and is not reconciled against the FIFO-remaining
// quantity; transfers and airdrops make the two diverge and that is
// expected.
type Summary struct {
	AssetCode          string
	CurrentQuantity    decimal.Decimal
	TotalCost          decimal.Decimal // rounded to 2 decimal places
	AverageCostPerUnit decimal.Decimal // rounded to 8 decimal places
}

// lot is an unconsumed slice of bought quantity. cost is the total cost of
// the lot, not per-unit; lots only shrink or disappear once created.
type lot struct {
	quantity decimal.Decimal
	cost     decimal.Decimal
}

// Compute derives the FIFO cost basis for each held asset. Assets with no
// buy history (acquired by transfer or airdrop) yield zero cost and zero
// average; that is a documented approximation, not an error.
func Compute(holdings []Holding, buys, sells map[string][]Execution) []Summary {
	summaries := make([]Summary, 0, len(holdings))
	for _, h := range holdings {
		summaries = append(summaries, computeAsset(h, buys[h.AssetCode], sells[h.AssetCode]))
	}
	return summaries
}

func computeAsset(holding Holding, buys, sells []Execution) Summary {
	lots := make([]lot, 0, len(buys))
	for _, b := range sortedByOrderCreation(buys) {
		lots = append(lots, lot{
			quantity: b.Quantity,
			cost:     b.EffectivePrice.Mul(b.Quantity),
		})
	}

	// Each sell only sees the lots left over from earlier sells.
	for _, s := range sortedByOrderCreation(sells) {
		lots = consume(lots, s.Quantity)
	}

	totalQuantity := decimal.Zero
	totalCost := decimal.Zero
	for _, l := range lots {
		totalQuantity = totalQuantity.Add(l.quantity)
		totalCost = totalCost.Add(l.cost)
	}

	average := decimal.Zero
	if totalQuantity.IsPositive() {
		average = totalCost.Div(totalQuantity)
	}

	return Summary{
		AssetCode:          holding.AssetCode,
		CurrentQuantity:    holding.Quantity,
		TotalCost:          totalCost.Round(2),
		AverageCostPerUnit: average.Round(8),
	}
}

// consume applies one sell to the lot list, oldest lot first. A partially
// consumed lot keeps its per-unit cost by scaling total cost with the
// remaining quantity. Sell quantity beyond the available lots is ignored;
// lots never go negative.
func consume(lots []lot, quantity decimal.Decimal) []lot {
	remaining := quantity
	for len(lots) > 0 && remaining.IsPositive() {
		front := lots[0]
		if front.quantity.LessThanOrEqual(remaining) {
			remaining = remaining.Sub(front.quantity)
			lots = lots[1:]
			continue
		}

		newQuantity := front.quantity.Sub(remaining)
		lots[0] = lot{
			quantity: newQuantity,
			cost:     front.cost.Mul(newQuantity).Div(front.quantity),
		}
		break
	}
	return lots
}

// sortedByOrderCreation returns a copy ordered ascending by the
// originating order's creation time. The sort is stable so fills of the
// same order keep their input order. The copy keeps Compute from mutating
// caller-owned slices.
func sortedByOrderCreation(execs []Execution) []Execution {
	out := make([]Execution, len(execs))
	copy(out, execs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderCreatedAt.Before(out[j].OrderCreatedAt)
	})
	return out
}
