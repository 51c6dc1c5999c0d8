package portfolio

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

func (d *Database) GetPortfolio(accountID string) (*types.Portfolio, error) {
	var portfolio types.Portfolio
	if err := d.db.Where("account_id = ?", accountID).First(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &portfolio, nil
}

func (d *Database) CreatePortfolio(portfolio *types.Portfolio) error {
	return d.db.Create(portfolio).Error
}

func (d *Database) GetHoldings(accountID string) ([]types.Holding, error) {
	var holdings []types.Holding
	if err := d.db.Where("account_id = ?", accountID).Order("id").Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

func (d *Database) GetHolding(accountID, projectID string) (*types.Holding, error) {
	var holding types.Holding
	err := d.db.Where("account_id = ? AND project_id = ?", accountID, projectID).First(&holding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holding, nil
}

// SavePortfolio writes the portfolio row together with the mutated holdings
// in one transaction, so a trade either fully applies to the aggregate or
// not at all. Removed holdings are hard-deleted: a zero-quantity holding must
// not linger behind the account+project unique index.
func (d *Database) SavePortfolio(portfolio *types.Portfolio, upserts []*types.Holding, removals []*types.Holding) error {
	tx := d.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(portfolio).Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, holding := range upserts {
		if err := tx.Save(holding).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	for _, holding := range removals {
		if err := tx.Unscoped().Delete(holding).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
