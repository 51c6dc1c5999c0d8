package portfolio

import (
	"github.com/carbonx/carbonx-api/internal/catalog"
	"github.com/carbonx/carbonx-api/internal/types"
	"github.com/carbonx/carbonx-api/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Service owns the holdings ledger for every account. Holdings are created on
// first buy, mutated on every subsequent trade of the same project, and
// removed once the position is fully sold.
type Service struct {
	db      *Database
	catalog *catalog.Service
}

// NewService creates a new portfolio service with the given database
// connection and catalog for price lookups
func NewService(gormDB *gorm.DB, catalogService *catalog.Service) *Service {
	return &Service{
		db:      NewDatabase(gormDB),
		catalog: catalogService,
	}
}

// GetOrCreate returns the account's portfolio aggregate, creating the default
// zero-state row on first touch.
func (s *Service) GetOrCreate(accountID string) (*types.Portfolio, error) {
	portfolio, err := s.db.GetPortfolio(accountID)
	if err != nil {
		return nil, err
	}
	if portfolio == nil {
		portfolio = &types.Portfolio{AccountID: accountID}
		if err := s.db.CreatePortfolio(portfolio); err != nil {
			return nil, err
		}
	}
	return portfolio, nil
}

// Holding looks up the account's position in a project. Returns nil without
// error when no position exists.
func (s *Service) Holding(accountID, projectID string) (*types.Holding, error) {
	return s.db.GetHolding(accountID, projectID)
}

// Holdings returns all of the account's open positions
func (s *Service) Holdings(accountID string) ([]types.Holding, error) {
	return s.db.GetHoldings(accountID)
}

// Save persists the portfolio row and the mutated holdings atomically
func (s *Service) Save(portfolio *types.Portfolio, upserts []*types.Holding, removals []*types.Holding) error {
	return s.db.SavePortfolio(portfolio, upserts, removals)
}

// Snapshot loads the portfolio with its holdings, refreshing each holding's
// valuation from the catalog's current prices. The refreshed valuations are
// a read-time projection and are not written back; a project missing from
// the catalog keeps its last stored price.
func (s *Service) Snapshot(accountID string) (*types.Portfolio, error) {
	portfolio, err := s.GetOrCreate(accountID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.db.GetHoldings(accountID)
	if err != nil {
		return nil, err
	}

	for i := range holdings {
		holding := &holdings[i]
		price, ok, err := s.catalog.CurrentPrice(holding.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			price = holding.CurrentPrice
		}
		Revalue(holding, price)
	}

	if holdings == nil {
		holdings = make([]types.Holding, 0)
	}
	portfolio.Holdings = holdings
	Recalculate(portfolio)

	return portfolio, nil
}

// GinHandlers contains HTTP handlers for portfolio endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for portfolio endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// GetPortfolioHandler handles GET requests for the authenticated account's
// portfolio. Requires a valid JWT token; the account is the token's client ID.
func (h *GinHandlers) GetPortfolioHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("clientID")
		if accountID == "" {
			response.Unauthorized(c, "Missing client ID")
			return
		}

		portfolio, err := h.service.Snapshot(accountID)
		response.Handle(c, portfolio, err)
	}
}
