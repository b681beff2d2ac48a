package handler

import (
	"errors"
	"net/http"
	"strconv"

	"casebook/internal/config"
	"casebook/internal/infrastructure/cache"
	"casebook/internal/infrastructure/lock"
	"casebook/internal/logger"
	"casebook/internal/model"
	"casebook/internal/report"
	"casebook/internal/repository"
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators the HTTP layer is built from.
type Deps struct {
	DB       *gorm.DB
	Locker   lock.Locker
	Sessions cache.SessionStore
	PDF      report.PDFRenderer
	Config   *config.Config
	Logger   *zap.Logger
}

// Handler holds every service the routes dispatch to.
type Handler struct {
	cfg    *config.Config
	logger *zap.Logger

	authService        *service.AuthService
	caseService        *service.CaseService
	ledgerService      *service.LedgerService
	noteService        *service.NoteService
	clientService      *service.ClientService
	searchService      *service.SearchService
	dashboardService   *service.DashboardService
	reportService      *service.ReportService
	customFieldService *service.CustomFieldService
	chargeService      *service.ChargeService
	adminService       *service.AdminService
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		cfg:                d.Config,
		logger:             d.Logger,
		authService:        service.NewAuthService(d.DB, d.Sessions, d.Logger),
		caseService:        service.NewCaseService(d.DB, d.Locker, d.Config, d.Logger),
		ledgerService:      service.NewLedgerService(d.DB, d.Config, d.Logger),
		noteService:        service.NewNoteService(d.DB),
		clientService:      service.NewClientService(d.DB, d.Logger),
		searchService:      service.NewSearchService(d.DB, d.Config),
		dashboardService:   service.NewDashboardService(d.DB, d.Config),
		reportService:      service.NewReportService(d.DB, d.PDF),
		customFieldService: service.NewCustomFieldService(d.DB),
		chargeService:      service.NewChargeService(d.DB),
		adminService:       service.NewAdminService(d.DB),
	}
}

// fail writes the envelope for err. Unexpected errors are logged with the
// request id and hidden from the caller.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCaseNotFound):
		response.NotFound(c, response.CodeCaseNotFound, "case not found")
	case errors.Is(err, repository.ErrClientNotFound):
		response.NotFound(c, response.CodeClientNotFound, "client not found")
	case errors.Is(err, repository.ErrEntryNotFound):
		response.NotFound(c, response.CodeEntryNotFound, "transaction not found")
	case errors.Is(err, repository.ErrNoteNotFound):
		response.NotFound(c, response.CodeNoteNotFound, "note not found")
	case errors.Is(err, repository.ErrChargeNotFound),
		errors.Is(err, repository.ErrFieldNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		response.NotFound(c, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrNothingToUndo):
		response.Info(c, response.CodeNothingToUndo, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeLoginFailed, err.Error())
	case errors.Is(err, cache.ErrSessionNotFound):
		response.Unauthorized(c, "login required")
	case errors.Is(err, lock.ErrLockFailed):
		response.Conflict(c, response.CodeCaseStatusLocked, "case status is being changed, try again")
	case errors.Is(err, model.ErrInvalidEnum):
		response.BusinessError(c, response.CodeInvalidEnum, err.Error())
	case errors.Is(err, service.ErrInvalidAmount):
		response.BusinessError(c, response.CodeInvalidAmount, err.Error())
	case errors.Is(err, service.ErrFieldNotLinked):
		response.BusinessError(c, response.CodeFieldNotLinked, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptyNote),
		errors.Is(err, service.ErrChargeTypeMismatch),
		errors.Is(err, service.ErrInvalidFieldValue),
		errors.Is(err, service.ErrWeakPassword):
		response.ParamError(c, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("request_id", logger.RequestID(c.Request.Context())),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.ServerError(c, "internal server error")
	}
}

// bind decodes a form or JSON body into req and answers 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		response.ParamError(c, "invalid request: "+err.Error())
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryID parses an optional id query parameter; absent means zero.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		response.ParamError(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
