package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carbonx/carbonx-api/internal/auth"
	"github.com/carbonx/carbonx-api/internal/config"
	"github.com/carbonx/carbonx-api/internal/database"
	"github.com/carbonx/carbonx-api/internal/portfolio"
	"github.com/carbonx/carbonx-api/internal/types"
	"gorm.io/gorm"
)

// init configures the logger for the seeder with pretty printing and timestamp
func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// main wipes the database and loads the demo catalog, starter portfolio,
// order history and reports. The portfolio belongs to the test API account.
func main() {
	cfg := config.Load()

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := truncate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to truncate tables")
	}

	projects := seedProjects()
	if err := db.Create(&projects).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed projects")
	}
	log.Info().Int("count", len(projects)).Msg("seeded projects")

	if err := seedPortfolio(db, projects); err != nil {
		log.Fatal().Err(err).Msg("failed to seed portfolio")
	}
	log.Info().Msg("seeded portfolio")

	if err := seedMarket(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed market stats and news")
	}
	log.Info().Msg("seeded market stats and news")

	if err := seedOrders(db, projects); err != nil {
		log.Fatal().Err(err).Msg("failed to seed orders")
	}
	log.Info().Msg("seeded orders")

	if err := seedReports(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed reports")
	}
	log.Info().Msg("seeded reports")

	log.Info().Str("db", cfg.DBPath).Msg("seeding completed")
}

func truncate(db *gorm.DB) error {
	for _, model := range []interface{}{
		&types.Project{}, &types.MarketStat{}, &types.News{},
		&types.Portfolio{}, &types.Holding{}, &types.Order{}, &types.Report{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedProjects() []types.Project {
	return []types.Project{
		{
			ProjectID:          "PRJ-AMAZON",
			Name:               "Amazonian Rainforest Conservation",
			Company:            "Brazil Forestry Initiative",
			Type:               "VER",
			Location:           "Brazil",
			Description:        "Protects 100,000 hectares of primary rainforest from deforestation.",
			VerificationAgency: "SGS",
			Verified:           true,
			PriceCurrent:       24.75, PriceChange24hValue: 1.23, PriceChange24hPercent: 5.23,
			Volume: 15780, Rating: "AA", VisualScore: 95,
			CreditsTotal: 500000, CreditsAvailable: 280000,
			Tags: "Climate Action,Life on Land,Biodiversity",
		},
		{
			ProjectID:          "PRJ-SOLAR",
			Name:               "Indian Solar Farm Development",
			Company:            "Renewable Energy Fund",
			Type:               "CER",
			Location:           "India",
			Description:        "Development of utility-scale solar farms to replace coal power.",
			VerificationAgency: "DNV GL",
			Verified:           true,
			PriceCurrent:       32.50, PriceChange24hValue: 2.25, PriceChange24hPercent: 7.44,
			Volume: 12450, Rating: "AAA", VisualScore: 98,
			CreditsTotal: 750000, CreditsAvailable: 420000,
			Tags: "Affordable Clean Energy,Climate Action,Industry Innovation",
		},
		{
			ProjectID:          "PRJ-KENYA",
			Name:               "Kenyan Reforestation Project",
			Company:            "Africa Green Initiative",
			Type:               "VER",
			Location:           "Kenya",
			Description:        "Community-led reforestation project in Kenya.",
			VerificationAgency: "Rainforest Alliance",
			Verified:           true,
			PriceCurrent:       15.25, PriceChange24hValue: 0.75, PriceChange24hPercent: 5.17,
			Volume: 6280, Rating: "BBB", VisualScore: 82,
			CreditsTotal: 200000, CreditsAvailable: 120000,
			Tags: "Life on Land,Decent Work,Climate Action",
		},
		{
			ProjectID:          "PRJ-MANGROVE",
			Name:               "Indonesian Mangrove Restoration",
			Company:            "Blue Carbon Coalition",
			Type:               "VER",
			Location:           "Indonesia",
			Description:        "Restoration of mangrove ecosystems to store blue carbon.",
			VerificationAgency: "Bureau Veritas",
			Verified:           true,
			PriceCurrent:       18.92, PriceChange24hValue: -0.48, PriceChange24hPercent: -2.47,
			Volume: 8940, Rating: "A", VisualScore: 88,
			CreditsTotal: 320000, CreditsAvailable: 180000,
			Tags: "Life Below Water,Climate Action,Coastal Communities",
		},
		{
			ProjectID:          "PRJ-WIND",
			Name:               "Chinese Wind Farm Expansion",
			Company:            "Asia Clean Energy Fund",
			Type:               "CER",
			Location:           "China",
			Description:        "Expansion of wind power capacity impacting rural communities.",
			VerificationAgency: "TUV Nord",
			Verified:           true,
			PriceCurrent:       28.30, PriceChange24hValue: -1.15, PriceChange24hPercent: -3.90,
			Volume: 9870, Rating: "AA", VisualScore: 75,
			CreditsTotal: 400000, CreditsAvailable: 250000,
			Tags: "Affordable Clean Energy,No Poverty",
		},
		{
			ProjectID:          "PRJ-COSTARICA",
			Name:               "Costa Rican Biodiversity Protection",
			Company:            "Central American Conservation",
			Type:               "VER",
			Location:           "Costa Rica",
			Description:        "Preserving rich biodiversity hotspots.",
			VerificationAgency: "SGS",
			Verified:           true,
			PriceCurrent:       22.40, PriceChange24hValue: 0.90, PriceChange24hPercent: 4.19,
			Volume: 4560, Rating: "A", VisualScore: 91,
			CreditsTotal: 150000, CreditsAvailable: 50000,
			Tags: "Life on Land,Biodiversity",
		},
	}
}

func seedPortfolio(db *gorm.DB, projects []types.Project) error {
	accountID := auth.TestAPIKey

	starters := []struct {
		project  types.Project
		quantity int64
		avgPrice float64
	}{
		{projects[0], 150, 23.80},
		{projects[1], 100, 31.25},
		{projects[2], 200, 14.90},
	}

	pf := &types.Portfolio{
		AccountID:    accountID,
		TotalYield:   337.50,
		TreesPlanted: 1125,
	}

	holdings := make([]types.Holding, 0, len(starters))
	for _, s := range starters {
		holding := types.Holding{
			AccountID:   accountID,
			ProjectID:   s.project.ProjectID,
			ProjectName: s.project.Name,
			Quantity:    s.quantity,
			AvgPrice:    s.avgPrice,
		}
		portfolio.Revalue(&holding, s.project.PriceCurrent)
		holdings = append(holdings, holding)
	}

	pf.Holdings = holdings
	portfolio.Recalculate(pf)

	if err := db.Create(pf).Error; err != nil {
		return err
	}
	return db.Create(&holdings).Error
}

func seedMarket(db *gorm.DB) error {
	stats := types.MarketStat{
		TotalVolume:     "1.2M",
		AveragePrice:    24.75,
		PriceVolatility: 4.2,
		TotalProjects:   872,
	}
	if err := db.Create(&stats).Error; err != nil {
		return err
	}

	news := []types.News{
		{Headline: "Carbon Market Trading Volume Hits Record High", Source: "Bloomberg Green", TimeAgo: "2h ago", Sentiment: "Positive"},
		{Headline: "New EU Regulations on Carbon Credit Verification", Source: "Reuters", TimeAgo: "5h ago", Sentiment: "Neutral"},
		{Headline: "Amazonian Project Expands Conservation Efforts", Source: "Climate Wire", TimeAgo: "10h ago", Sentiment: "Positive"},
	}
	return db.Create(&news).Error
}

func seedOrders(db *gorm.DB, projects []types.Project) error {
	accountID := auth.TestAPIKey

	orders := []types.Order{
		{OrderID: "ORD-2025-001", AccountID: accountID, ProjectID: projects[0].ProjectID, ProjectName: projects[0].Name, Side: types.SideBuy, Quantity: 50, Price: 23.50, Total: 1175.00, Status: types.OrderStatusCompleted, Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{OrderID: "ORD-2025-002", AccountID: accountID, ProjectID: projects[1].ProjectID, ProjectName: projects[1].Name, Side: types.SideBuy, Quantity: 100, Price: 31.25, Total: 3125.00, Status: types.OrderStatusCompleted, Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{OrderID: "ORD-2025-003", AccountID: accountID, ProjectID: projects[2].ProjectID, ProjectName: projects[2].Name, Side: types.SideSell, Quantity: 50, Price: 16.00, Total: 800.00, Status: types.OrderStatusCompleted, Date: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)},
		{OrderID: "ORD-2025-004", AccountID: accountID, ProjectID: projects[4].ProjectID, ProjectName: projects[4].Name, Side: types.SideBuy, Quantity: 200, Price: 28.00, Total: 5600.00, Status: types.OrderStatusPending, Date: time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC)},
	}
	return db.Create(&orders).Error
}

func seedReports(db *gorm.DB) error {
	reports := []types.Report{
		{ReportID: uuid.New().String(), Title: "2024 Annual Impact Report", Type: "Impact", GeneratedDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Size: "4.2 MB", Status: "Ready"},
		{ReportID: uuid.New().String(), Title: "Q1 2025 Financial Statement", Type: "Financial", GeneratedDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), Size: "2.8 MB", Status: "Ready"},
		{ReportID: uuid.New().String(), Title: "Portfolio Carbon Audit", Type: "Audit", GeneratedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Size: "8.5 MB", Status: "Ready"},
		{ReportID: uuid.New().String(), Title: "July Project Verification Summary", Type: "Verification", GeneratedDate: time.Now(), Size: "--", Status: "Processing"},
	}
	return db.Create(&reports).Error
}
