package types

import (
	"gorm.io/gorm"
)

// Holding is an account's open position in a single project. At most one
// holding exists per account and project; a holding whose quantity reaches
// zero is removed rather than kept around.
type Holding struct {
	gorm.Model      `json:"-"`
	AccountID       string  `gorm:"uniqueIndex:idx_holding_account_project" json:"-"`
	ProjectID       string  `gorm:"uniqueIndex:idx_holding_account_project" json:"project_id"`
	ProjectName     string  `json:"project_name"`
	Quantity        int64   `json:"quantity"`
	AvgPrice        float64 `json:"avg_price"` // weighted-average cost basis
	CurrentPrice    float64 `json:"current_price"`
	Value           float64 `json:"value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// Portfolio is the per-account aggregate over all holdings. TotalValue is
// always the sum of the constituent holding values; TotalYield is the
// cumulative profit realized by completed sells.
type Portfolio struct {
	gorm.Model   `json:"-"`
	AccountID    string    `gorm:"uniqueIndex" json:"account_id"`
	TotalValue   float64   `json:"total_value"`
	TotalYield   float64   `json:"total_yield"`
	YieldPercent float64   `json:"yield_percent"`
	TreesPlanted float64   `json:"trees_planted"`
	Holdings     []Holding `gorm:"-" json:"holdings"`
}
