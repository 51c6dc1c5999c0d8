package reports

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

func (d *Database) GetReports() ([]types.Report, error) {
	var reports []types.Report
	if err := d.db.Order("generated_date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (d *Database) GetReport(reportID string) (*types.Report, error) {
	var report types.Report
	if err := d.db.Where("report_id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}
