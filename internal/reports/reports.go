package reports

import (
	"github.com/carbonx/carbonx-api/internal/types"
	"github.com/carbonx/carbonx-api/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Service lists the generated impact, financial and audit reports
type Service struct {
	db *Database
}

// NewService creates a new reports service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// GetReports returns all reports, newest first
func (s *Service) GetReports() ([]types.Report, error) {
	return s.db.GetReports()
}

// GetReport retrieves a report by its ID. Returns nil without error when the
// report does not exist.
func (s *Service) GetReport(reportID string) (*types.Report, error) {
	return s.db.GetReport(reportID)
}

// GinHandlers contains HTTP handlers for report endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for report endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// GetReportsHandler handles GET requests for the report list
func (h *GinHandlers) GetReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := h.service.GetReports()
		response.Handle(c, reports, err)
	}
}

// GetReportHandler handles GET requests for a single report
// URL parameter: report_id
func (h *GinHandlers) GetReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID := c.Param("report_id")

		report, err := h.service.GetReport(reportID)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		if report == nil {
			response.NotFound(c, "Report not found")
			return
		}

		response.OK(c, report)
	}
}
