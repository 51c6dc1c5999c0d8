package trading

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carbonx/carbonx-api/internal/catalog"
	"github.com/carbonx/carbonx-api/internal/portfolio"
	"github.com/carbonx/carbonx-api/internal/types"
	"github.com/carbonx/carbonx-api/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidArgument      = errors.New("invalid trade request")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// Service executes trades against the order and holdings ledgers
type Service struct {
	db             *Database
	catalog        *catalog.Service
	portfolio      *portfolio.Service
	treesPerCredit float64

	// Trade execution is a read-modify-write over the portfolio aggregate;
	// the mutex serializes it so concurrent requests cannot interleave.
	mu sync.Mutex
}

// NewService creates a new trading service
func NewService(gormDB *gorm.DB, catalogService *catalog.Service, portfolioService *portfolio.Service, treesPerCredit float64) *Service {
	return &Service{
		db:             NewDatabase(gormDB),
		catalog:        catalogService,
		portfolio:      portfolioService,
		treesPerCredit: treesPerCredit,
	}
}

var orderSeq atomic.Int64

// nextOrderID returns a monotonic timestamp-plus-sequence identifier. The
// sequence keeps IDs unique when multiple orders land in the same millisecond.
func nextOrderID() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), orderSeq.Add(1)%10000)
}

// ExecuteTrade validates and executes a buy or sell for the account, updating
// the order ledger and the portfolio's holdings.
//
// The order row is committed on its own before the portfolio mutation, so a
// storage failure mid-update leaves the order retrievable as a historical
// record while the portfolio itself is updated all-or-nothing. Replaying the
// same request creates a second order and applies the mutation again: there
// is no deduplication on this endpoint.
func (s *Service) ExecuteTrade(accountID string, req *types.TradeRequest) (*types.TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.With().
		Str("account_id", accountID).
		Str("project_id", req.ProjectID).
		Str("side", req.Type).
		Int64("quantity", req.Quantity).
		Str("service", "trading").
		Logger()

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidArgument)
	}
	if req.Type != types.SideBuy && req.Type != types.SideSell {
		return nil, fmt.Errorf("%w: side must be %q or %q", ErrInvalidArgument, types.SideBuy, types.SideSell)
	}

	project, err := s.catalog.GetProject(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	// Snapshot the live price; the order records this price forever even if
	// the catalog moves afterwards.
	unitPrice := project.PriceCurrent
	tradeValue := float64(req.Quantity) * unitPrice

	pf, err := s.portfolio.GetOrCreate(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	holding, err := s.portfolio.Holding(accountID, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holding: %w", err)
	}

	if req.Type == types.SideSell {
		if holding == nil || holding.Quantity < req.Quantity {
			return nil, ErrInsufficientHoldings
		}
	}

	order := &types.Order{
		OrderID:     nextOrderID(),
		AccountID:   accountID,
		ProjectID:   project.ProjectID,
		ProjectName: project.Name,
		Side:        req.Type,
		Quantity:    req.Quantity,
		Price:       unitPrice,
		Total:       tradeValue,
		Status:      types.OrderStatusCompleted,
		Date:        time.Now(),
	}

	if err := s.db.CreateOrder(order); err != nil {
		logger.Error().Err(err).Msg("failed to append order")
		return nil, fmt.Errorf("failed to append order: %w", err)
	}

	var upserts, removals []*types.Holding
	if req.Type == types.SideBuy {
		if holding == nil {
			holding = &types.Holding{
				AccountID:   accountID,
				ProjectID:   project.ProjectID,
				ProjectName: project.Name,
			}
		}
		portfolio.ApplyBuy(holding, req.Quantity, unitPrice)
		upserts = append(upserts, holding)

		pf.TreesPlanted += float64(req.Quantity) * s.treesPerCredit
	} else {
		// Realized profit is taken against the weighted-average cost basis,
		// which sells never recompute.
		pf.TotalYield += (unitPrice - holding.AvgPrice) * float64(req.Quantity)

		if err := portfolio.ApplySell(holding, req.Quantity, unitPrice); err != nil {
			return nil, ErrInsufficientHoldings
		}
		if holding.Quantity == 0 {
			removals = append(removals, holding)
		} else {
			upserts = append(upserts, holding)
		}
	}

	holdings, err := s.portfolio.Holdings(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	pf.Holdings = mergeHolding(holdings, holding)
	portfolio.Recalculate(pf)

	if err := s.portfolio.Save(pf, upserts, removals); err != nil {
		logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to update portfolio")
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	logger.Info().
		Str("order_id", order.OrderID).
		Float64("unit_price", unitPrice).
		Float64("trade_value", tradeValue).
		Float64("total_value", pf.TotalValue).
		Msg("trade executed")

	return &types.TradeResult{Order: order, Portfolio: pf}, nil
}

// mergeHolding replaces the stored copy of the mutated holding in the list,
// dropping it when the position was fully sold.
func mergeHolding(holdings []types.Holding, mutated *types.Holding) []types.Holding {
	merged := make([]types.Holding, 0, len(holdings)+1)
	found := false
	for _, existing := range holdings {
		if existing.ProjectID == mutated.ProjectID && existing.AccountID == mutated.AccountID {
			found = true
			if mutated.Quantity > 0 {
				merged = append(merged, *mutated)
			}
			continue
		}
		merged = append(merged, existing)
	}
	if !found && mutated.Quantity > 0 {
		merged = append(merged, *mutated)
	}
	return merged
}

// ListOrders returns the account's order history, newest first
func (s *Service) ListOrders(accountID string) ([]types.Order, error) {
	orders, err := s.db.ListOrders(accountID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]types.Order, 0)
	}
	return orders, nil
}

// GetOrder retrieves one of the account's orders by its ID. Returns nil
// without error when the order does not exist or belongs to another account.
func (s *Service) GetOrder(accountID, orderID string) (*types.Order, error) {
	return s.db.GetOrder(accountID, orderID)
}

// GinHandlers contains HTTP handlers for trading endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for trading endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// ExecuteTradeHandler handles POST requests to execute trades
// Requires a valid JWT token; the account is the token's client ID
func (h *GinHandlers) ExecuteTradeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("clientID")
		if accountID == "" {
			response.Unauthorized(c, "Missing client ID")
			return
		}

		var req types.TradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid trade request")
			return
		}

		result, err := h.service.ExecuteTrade(accountID, &req)
		switch {
		case errors.Is(err, ErrProjectNotFound):
			response.NotFound(c, "Project not found")
		case errors.Is(err, ErrInvalidArgument):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrInsufficientHoldings):
			response.BadRequest(c, "Insufficient holdings")
		case err != nil:
			response.InternalError(c, err.Error())
		default:
			response.OK(c, result)
		}
	}
}

// ListOrdersHandler handles GET requests for the account's order history
func (h *GinHandlers) ListOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("clientID")
		if accountID == "" {
			response.Unauthorized(c, "Missing client ID")
			return
		}

		orders, err := h.service.ListOrders(accountID)
		response.Handle(c, orders, err)
	}
}

// GetOrderHandler handles GET requests for a single order by ID
// URL parameter: order_id. Orders of other accounts read as not found.
func (h *GinHandlers) GetOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("clientID")
		if accountID == "" {
			response.Unauthorized(c, "Missing client ID")
			return
		}

		order, err := h.service.GetOrder(accountID, c.Param("order_id"))
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		if order == nil {
			response.NotFound(c, "Order not found")
			return
		}

		response.OK(c, order)
	}
}

// ExportOrdersHandler handles GET requests for the order history as CSV.
// Rows carry the snapshot price recorded at execution, not the live price.
func (h *GinHandlers) ExportOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString("clientID")
		if accountID == "" {
			response.Unauthorized(c, "Missing client ID")
			return
		}

		orders, err := h.service.ListOrders(accountID)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"order_id", "project", "side", "quantity", "price", "total", "status", "date"})
		for _, o := range orders {
			_ = w.Write([]string{
				o.OrderID,
				o.ProjectName,
				o.Side,
				strconv.FormatInt(o.Quantity, 10),
				strconv.FormatFloat(o.Price, 'f', 2, 64),
				strconv.FormatFloat(o.Total, 'f', 2, 64),
				o.Status,
				o.Date.Format(time.RFC3339),
			})
		}
		w.Flush()
	}
}
