package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/service"
)

// Resource is the CRUD surface of one entity.
type Resource[T any] interface {
	List(ctx context.Context, filter service.ListFilter) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id uint, item *T) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type AuthService interface {
	SignupAdmin(ctx context.Context, input service.AdminSignupInput) (*service.AuthResult, error)
	SignupUser(ctx context.Context, input service.UserSignupInput) (*service.AuthResult, error)
	LoginAdmin(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
	LoginUser(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
	Me(ctx context.Context, principal model.Principal) (*service.Profile, error)
}

type ReportService interface {
	BusUsage(ctx context.Context, q service.ReportQuery) (*model.BusUsageReport, error)
	Complaints(ctx context.Context, q service.ReportQuery) (*model.ComplaintsReport, error)
	ShiftCompliance(ctx context.Context, q service.ReportQuery) (*model.ShiftComplianceReport, error)
	Summary(ctx context.Context, q service.ReportQuery) (*model.SummaryReport, error)
	Accidents(ctx context.Context, q service.ReportQuery) (*model.AccidentsReport, error)
	Export(ctx context.Context, q service.ReportQuery, format string) (*service.ExportResult, error)
}

type Services struct {
	Drivers    Resource[model.Driver]
	Conductors Resource[model.Conductor]
	Buses      Resource[model.Bus]
	Routes     Resource[model.Route]
	Shifts     Resource[model.Shift]
	Complaints Resource[model.Complaint]
	Accidents  Resource[model.AccidentReport]
	Auth       AuthService
	Reports    ReportService
}

type Handler struct {
	svc Services
	log zerolog.Logger
}

func NewHandler(svc Services, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	public := router.Group("/auth")
	public.POST("/admin/signup", h.signupAdmin)
	public.POST("/admin/login", h.loginAdmin)
	public.POST("/user/signup", h.signupUser)
	public.POST("/user/login", h.loginUser)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/auth/me", h.me)

	registerResource(protected, "/drivers", h.svc.Drivers, h)
	registerResource(protected, "/conductors", h.svc.Conductors, h)
	registerResource(protected, "/buses", h.svc.Buses, h)
	registerResource(protected, "/routes", h.svc.Routes, h)
	registerResource(protected, "/shifts", h.svc.Shifts, h)
	registerResource(protected, "/complaints", h.svc.Complaints, h)
	registerResource(protected, "/accidents", h.svc.Accidents, h)

	reports := protected.Group("/reports")
	reports.GET("/bus-usage", h.busUsageReport)
	reports.GET("/complaints", h.complaintsReport)
	reports.GET("/shift-compliance", h.shiftComplianceReport)
	reports.GET("/summary", h.summaryReport)
	reports.GET("/summary/export", h.exportReport)
	reports.GET("/accidents", h.accidentsReport)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
