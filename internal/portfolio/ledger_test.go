package portfolio

import (
	"math"
	"testing"

	"github.com/carbonx/carbonx-api/internal/types"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestApplyBuyFirstFill(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}

	ApplyBuy(h, 150, 23.80)

	if h.Quantity != 150 {
		t.Errorf("Quantity = %d, want 150", h.Quantity)
	}
	if !almostEqual(h.AvgPrice, 23.80) {
		t.Errorf("AvgPrice = %v, want 23.80", h.AvgPrice)
	}
	if !almostEqual(h.CurrentPrice, 23.80) {
		t.Errorf("CurrentPrice = %v, want 23.80", h.CurrentPrice)
	}
	if !almostEqual(h.Value, 150*23.80) {
		t.Errorf("Value = %v, want %v", h.Value, 150*23.80)
	}
	if !almostEqual(h.GainLoss, 0) {
		t.Errorf("GainLoss = %v, want 0", h.GainLoss)
	}
}

func TestApplyBuyWeightedAverage(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}

	ApplyBuy(h, 150, 23.80)
	ApplyBuy(h, 50, 24.75)

	if h.Quantity != 200 {
		t.Errorf("Quantity = %d, want 200", h.Quantity)
	}
	// (150*23.80 + 50*24.75) / 200
	if !almostEqual(h.AvgPrice, 24.0375) {
		t.Errorf("AvgPrice = %v, want 24.0375", h.AvgPrice)
	}
	if !almostEqual(h.Value, 200*24.75) {
		t.Errorf("Value = %v, want %v", h.Value, 200*24.75)
	}
}

func TestApplyBuySequenceMatchesWeightedMean(t *testing.T) {
	fills := []struct {
		quantity int64
		price    float64
	}{
		{10, 5.00},
		{25, 7.50},
		{3, 4.20},
		{62, 9.99},
	}

	h := &types.Holding{ProjectID: "PRJ-A"}
	var totalQty int64
	var totalCost float64
	for _, f := range fills {
		ApplyBuy(h, f.quantity, f.price)
		totalQty += f.quantity
		totalCost += float64(f.quantity) * f.price
	}

	want := totalCost / float64(totalQty)
	if !almostEqual(h.AvgPrice, want) {
		t.Errorf("AvgPrice = %v, want %v", h.AvgPrice, want)
	}
	if h.Quantity != totalQty {
		t.Errorf("Quantity = %d, want %d", h.Quantity, totalQty)
	}
}

func TestApplySellKeepsAvgPrice(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}
	ApplyBuy(h, 100, 10.00)

	if err := ApplySell(h, 40, 12.00); err != nil {
		t.Fatalf("ApplySell() error = %v", err)
	}

	if h.Quantity != 60 {
		t.Errorf("Quantity = %d, want 60", h.Quantity)
	}
	if !almostEqual(h.AvgPrice, 10.00) {
		t.Errorf("AvgPrice = %v, want 10.00: sells must not recompute the cost basis", h.AvgPrice)
	}
	if !almostEqual(h.Value, 60*12.00) {
		t.Errorf("Value = %v, want %v", h.Value, 60*12.00)
	}
	if !almostEqual(h.GainLoss, 60*12.00-60*10.00) {
		t.Errorf("GainLoss = %v, want %v", h.GainLoss, 60*12.00-60*10.00)
	}
}

func TestApplySellToZero(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}
	ApplyBuy(h, 50, 20.00)

	if err := ApplySell(h, 50, 20.00); err != nil {
		t.Fatalf("ApplySell() error = %v", err)
	}

	if h.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", h.Quantity)
	}
	if !almostEqual(h.Value, 0) {
		t.Errorf("Value = %v, want 0", h.Value)
	}
}

func TestApplySellInsufficientQuantity(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}
	ApplyBuy(h, 50, 20.00)

	if err := ApplySell(h, 60, 20.00); err != ErrInsufficientQuantity {
		t.Fatalf("ApplySell() error = %v, want ErrInsufficientQuantity", err)
	}

	// The holding must be untouched after a rejected sell
	if h.Quantity != 50 {
		t.Errorf("Quantity = %d, want 50", h.Quantity)
	}
}

func TestRevalueRefreshesValuationOnly(t *testing.T) {
	h := &types.Holding{ProjectID: "PRJ-A"}
	ApplyBuy(h, 100, 10.00)

	Revalue(h, 11.50)

	if h.Quantity != 100 {
		t.Errorf("Quantity = %d, want 100", h.Quantity)
	}
	if !almostEqual(h.AvgPrice, 10.00) {
		t.Errorf("AvgPrice = %v, want 10.00", h.AvgPrice)
	}
	if !almostEqual(h.CurrentPrice, 11.50) {
		t.Errorf("CurrentPrice = %v, want 11.50", h.CurrentPrice)
	}
	if !almostEqual(h.Value, 1150) {
		t.Errorf("Value = %v, want 1150", h.Value)
	}
	if !almostEqual(h.GainLoss, 150) {
		t.Errorf("GainLoss = %v, want 150", h.GainLoss)
	}
	if !almostEqual(h.GainLossPercent, 15) {
		t.Errorf("GainLossPercent = %v, want 15", h.GainLossPercent)
	}
}

func TestRecalculateReconcilesTotalValue(t *testing.T) {
	p := &types.Portfolio{
		AccountID:  "acct-1",
		TotalYield: 50,
	}

	a := types.Holding{ProjectID: "PRJ-A"}
	ApplyBuy(&a, 10, 5.00)
	b := types.Holding{ProjectID: "PRJ-B"}
	ApplyBuy(&b, 20, 2.50)

	p.Holdings = []types.Holding{a, b}
	Recalculate(p)

	want := a.Value + b.Value
	if !almostEqual(p.TotalValue, want) {
		t.Errorf("TotalValue = %v, want %v", p.TotalValue, want)
	}
	if !almostEqual(p.YieldPercent, 50/want*100) {
		t.Errorf("YieldPercent = %v, want %v", p.YieldPercent, 50/want*100)
	}
}

func TestRecalculateEmptyPortfolio(t *testing.T) {
	p := &types.Portfolio{AccountID: "acct-1", TotalYield: 50}

	Recalculate(p)

	if p.TotalValue != 0 {
		t.Errorf("TotalValue = %v, want 0", p.TotalValue)
	}
	if p.YieldPercent != 0 {
		t.Errorf("YieldPercent = %v, want 0", p.YieldPercent)
	}
}
