package types

import (
	"time"

	"gorm.io/gorm"
)

const (
	SideBuy  = "Buy"
	SideSell = "Sell"

	OrderStatusCompleted = "Completed"
	OrderStatusPending   = "Pending"
	OrderStatusFailed    = "Failed"
)

// Order is an executed trade. Orders are append-only: they are written
// exactly once at execution time and never mutated afterwards.
type Order struct {
	gorm.Model  `json:"-"`
	OrderID     string    `gorm:"uniqueIndex" json:"order_id"`
	AccountID   string    `gorm:"index" json:"account_id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Side        string    `json:"side"` // Buy or Sell
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"` // unit price snapshot at execution
	Total       float64   `json:"total"`
	Status      string    `json:"status"` // Completed, Pending, Failed
	Date        time.Time `json:"date"`
}

// TradeRequest is the body of POST /trade.
type TradeRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// TradeResult carries the newly created order together with the updated
// portfolio snapshot.
type TradeResult struct {
	Order     *Order     `json:"order"`
	Portfolio *Portfolio `json:"portfolio"`
}
