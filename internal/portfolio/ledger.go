package portfolio

import (
	"errors"

	"github.com/carbonx/carbonx-api/internal/types"
)

var ErrInsufficientQuantity = errors.New("sell quantity exceeds held quantity")

// ApplyBuy folds a buy fill into the holding. The average price becomes the
// quantity-weighted blend of the prior cost basis and the new fill, and the
// holding is revalued at the fill price.
func ApplyBuy(h *types.Holding, quantity int64, price float64) {
	oldQty := h.Quantity
	newQty := oldQty + quantity

	if oldQty == 0 {
		h.AvgPrice = price
	} else {
		h.AvgPrice = (float64(oldQty)*h.AvgPrice + float64(quantity)*price) / float64(newQty)
	}

	h.Quantity = newQty
	Revalue(h, price)
}

// ApplySell reduces the holding by the sold quantity and revalues it at the
// fill price. The average price is left untouched: sells never alter the cost
// basis of the remaining position. The caller is responsible for removing a
// holding whose quantity reaches zero.
func ApplySell(h *types.Holding, quantity int64, price float64) error {
	if quantity > h.Quantity {
		return ErrInsufficientQuantity
	}

	h.Quantity -= quantity
	Revalue(h, price)
	return nil
}

// Revalue refreshes the holding's valuation at the given current price.
// Quantity and average price are never changed here.
func Revalue(h *types.Holding, price float64) {
	h.CurrentPrice = price
	h.Value = float64(h.Quantity) * price

	cost := float64(h.Quantity) * h.AvgPrice
	h.GainLoss = h.Value - cost
	if cost > 0 {
		h.GainLossPercent = h.GainLoss / cost * 100
	} else {
		h.GainLossPercent = 0
	}
}

// Recalculate rebuilds the portfolio rollups from its holdings. Total value
// is always the sum of the constituent holding values, which keeps the
// aggregate reconciled no matter how the holdings were mutated.
func Recalculate(p *types.Portfolio) {
	var total float64
	for i := range p.Holdings {
		total += p.Holdings[i].Value
	}
	p.TotalValue = total

	if total > 0 {
		p.YieldPercent = p.TotalYield / total * 100
	} else {
		p.YieldPercent = 0
	}
}
