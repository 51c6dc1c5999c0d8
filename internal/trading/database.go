package trading

import (
	"errors"

	"github.com/carbonx/carbonx-api/internal/types"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// CreateOrder appends an order to the ledger. Orders are never updated or
// deleted afterwards.
func (d *Database) CreateOrder(order *types.Order) error {
	return d.db.Create(order).Error
}

// GetOrder looks up a single order by ID, scoped to the account that placed
// it. Returns nil without error when no such order exists.
func (d *Database) GetOrder(accountID, orderID string) (*types.Order, error) {
	var order types.Order
	if err := d.db.Where("account_id = ? AND order_id = ?", accountID, orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the account's order history, newest first. Ties on the
// timestamp fall back to insertion order.
func (d *Database) ListOrders(accountID string) ([]types.Order, error) {
	var orders []types.Order
	err := d.db.Where("account_id = ?", accountID).
		Order("date DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
