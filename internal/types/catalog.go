package types

import (
	"time"

	"gorm.io/gorm"
)

// Project is a carbon-credit offering listed in the catalog.
// The trading core only ever reads it; the catalog owns it.
type Project struct {
	gorm.Model            `json:"-"`
	ProjectID             string  `gorm:"uniqueIndex" json:"project_id"`
	Name                  string  `json:"name"`
	Company               string  `json:"company"`
	Type                  string  `json:"type"` // VER or CER
	Location              string  `json:"location"`
	Description           string  `json:"description"`
	VerificationAgency    string  `json:"verification_agency"`
	Verified              bool    `json:"verified"`
	PriceCurrent          float64 `json:"price_current"`
	PriceChange24hValue   float64 `json:"price_change_24h_value"`
	PriceChange24hPercent float64 `json:"price_change_24h_percent"`
	Volume                float64 `json:"volume"`
	Rating                string  `json:"rating"`
	VisualScore           int     `json:"visual_score"`
	CreditsTotal          int64   `json:"credits_total"`
	CreditsAvailable      int64   `json:"credits_available"`
	Tags                  string  `json:"tags"` // comma separated
}

type MarketStat struct {
	gorm.Model      `json:"-"`
	TotalVolume     string  `json:"total_volume"`
	AveragePrice    float64 `json:"average_price"`
	PriceVolatility float64 `json:"price_volatility"`
	TotalProjects   int     `json:"total_projects"`
}

type News struct {
	gorm.Model `json:"-"`
	Headline   string `json:"headline"`
	Source     string `json:"source"`
	TimeAgo    string `json:"time_ago"`
	Sentiment  string `json:"sentiment"` // Positive, Neutral, Negative
}

type Report struct {
	gorm.Model    `json:"-"`
	ReportID      string    `gorm:"uniqueIndex" json:"report_id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"` // Impact, Financial, Audit, Verification
	GeneratedDate time.Time `json:"generated_date"`
	Size          string    `json:"size"`
	Status        string    `json:"status"` // Ready, Processing
}
