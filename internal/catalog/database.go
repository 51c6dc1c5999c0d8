package catalog

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

func (d *Database) GetProjects() ([]types.Project, error) {
	var projects []types.Project
	if err := d.db.Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (d *Database) GetProject(projectID string) (*types.Project, error) {
	var project types.Project
	if err := d.db.Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (d *Database) GetMarketStats() (*types.MarketStat, error) {
	var stats types.MarketStat
	if err := d.db.First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (d *Database) GetNews() ([]types.News, error) {
	var news []types.News
	if err := d.db.Order("id").Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}
