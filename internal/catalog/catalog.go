package catalog

import (
	"github.com/carbonx/carbonx-api/internal/types"
	"github.com/carbonx/carbonx-api/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Service exposes the project catalog and market data. It is the pricing
// snapshot source for the trade executor: the live price of a project is
// whatever the catalog says it is at execution time.
type Service struct {
	db *Database
}

// NewService creates a new catalog service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// GetProjects returns all listed projects
func (s *Service) GetProjects() ([]types.Project, error) {
	return s.db.GetProjects()
}

// GetProject retrieves a project by its ID. Returns nil without error when
// the project does not exist.
func (s *Service) GetProject(projectID string) (*types.Project, error) {
	return s.db.GetProject(projectID)
}

// CurrentPrice returns the live unit price for a project. The second return
// value reports whether the project exists.
func (s *Service) CurrentPrice(projectID string) (float64, bool, error) {
	project, err := s.db.GetProject(projectID)
	if err != nil {
		return 0, false, err
	}
	if project == nil {
		return 0, false, nil
	}
	return project.PriceCurrent, true, nil
}

// GetMarketStats returns the aggregate market statistics row
func (s *Service) GetMarketStats() (*types.MarketStat, error) {
	return s.db.GetMarketStats()
}

// GetNews returns the market news feed
func (s *Service) GetNews() ([]types.News, error) {
	return s.db.GetNews()
}

// GinHandlers contains HTTP handlers for catalog endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for catalog endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// GetProjectsHandler handles GET requests for the project list
func (h *GinHandlers) GetProjectsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := h.service.GetProjects()
		response.Handle(c, projects, err)
	}
}

// GetProjectHandler handles GET requests for a single project
// URL parameter: project_id
func (h *GinHandlers) GetProjectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Param("project_id")

		project, err := h.service.GetProject(projectID)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		if project == nil {
			response.NotFound(c, "Project not found")
			return
		}

		response.OK(c, project)
	}
}

// GetMarketStatsHandler handles GET requests for market statistics
func (h *GinHandlers) GetMarketStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.service.GetMarketStats()
		response.Handle(c, stats, err)
	}
}

// GetNewsHandler handles GET requests for the news feed
func (h *GinHandlers) GetNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		news, err := h.service.GetNews()
		response.Handle(c, news, err)
	}
}
