package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"complytrack/internal/compliance/models"
	"complytrack/internal/compliance/service"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/platform/httputil"
	"complytrack/pkg/requestcontext"
)

// Service defines the interface for compliance operations.
type Service interface {
	CreateRequirement(ctx context.Context, input models.NewRequirementInput) (*models.CreateResult, error)
	ListRequirements(ctx context.Context, filter models.ListFilter, page models.Page) (*models.RequirementPage, error)
	GetRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) (*models.Requirement, error)
	UpdateRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID, patch service.UpdatePatch) (*models.Requirement, error)
	DeleteRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) error
	RunAudit(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) (*models.AuditRunResult, error)
	OverdueInspections(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) (*models.OverdueReport, error)
	UpcomingTasks(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID, horizonDays int) (*models.UpcomingReport, error)
	Statistics(ctx context.Context, filter models.StatisticsFilter) (*models.StatisticsReport, error)
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/requirements", h.HandleCreate)
	r.Get("/compliance/requirements", h.HandleList)
	r.Get("/compliance/requirements/{requirementID}", h.HandleGet)
	r.Patch("/compliance/requirements/{requirementID}", h.HandleUpdate)
	r.Delete("/compliance/requirements/{requirementID}", h.HandleDelete)

	r.Post("/compliance/audit/run", h.HandleRunAudit)

	r.Get("/compliance/reports/overdue", h.HandleOverdueReport)
	r.Get("/compliance/reports/upcoming", h.HandleUpcomingReport)
	r.Get("/compliance/reports/statistics", h.HandleStatistics)
}

func tenantFrom(ctx context.Context) (id.TenantID, bool) {
	tenantID := requestcontext.TenantID(ctx)
	return tenantID, !tenantID.IsNil()
}

// siteFromQuery reads an optional site_id query parameter.
func siteFromQuery(r *http.Request) (*id.SiteID, error) {
	raw := r.URL.Query().Get("site_id")
	if raw == "" {
		return nil, nil
	}
	siteID, err := id.ParseSiteID(raw)
	if err != nil {
		return nil, err
	}
	return &siteID, nil
}

// HandleCreate handles POST /compliance/requirements requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateRequirementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CreateRequirement(ctx, req.ToInput(tenantID))
	if err != nil {
		h.logger.ErrorContext(ctx, "requirement creation failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "requirement created",
		"request_id", requestID,
		"tenant_id", tenantID,
		"requirement_id", result.Requirement.ID,
		"category", result.Requirement.Category,
		"linkage_failed", result.LinkageErr != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromCreateResult(result))
}

// HandleList handles GET /compliance/requirements requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	filter, page, err := listParamsFrom(r, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.ListRequirements(ctx, filter, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "requirement listing failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromPage(result))
}

func listParamsFrom(r *http.Request, tenantID id.TenantID) (models.ListFilter, models.Page, error) {
	q := r.URL.Query()
	filter := models.ListFilter{
		TenantID:       tenantID,
		ComplianceType: q.Get("compliance_type"),
	}

	if raw := q.Get("category"); raw != "" {
		category, err := id.ParseCategory(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.Category = category
	}
	if raw := q.Get("priority"); raw != "" {
		priority, err := id.ParsePriority(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.Priority = priority
	}
	if raw := q.Get("site_id"); raw != "" {
		siteID, err := id.ParseSiteID(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.SiteID = &siteID
	}
	if raw := q.Get("assigned_to"); raw != "" {
		assignee, err := id.ParseUserID(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.AssignedTo = assignee
	}

	page := models.Page{}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter, page, dErrors.New(dErrors.CodeValidation, "page must be an integer")
		}
		page.Number = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filter, page, dErrors.New(dErrors.CodeValidation, "limit must be an integer")
		}
		page.Limit = n
	}
	return filter, page, nil
}

// HandleGet handles GET /compliance/requirements/{requirementID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	requirement, err := h.service.GetRequirement(ctx, tenantID, reqID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRequirement(requirement))
}

// HandleUpdate handles PATCH /compliance/requirements/{requirementID}
// requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequirementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	requirement, err := h.service.UpdateRequirement(ctx, tenantID, reqID, req.Patch())
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "requirement update failed",
				"request_id", requestID,
				"tenant_id", tenantID,
				"requirement_id", reqID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "requirement updated",
		"request_id", requestID,
		"tenant_id", tenantID,
		"requirement_id", reqID,
	)

	httputil.WriteJSON(w, http.StatusOK, FromRequirement(requirement))
}

// HandleDelete handles DELETE /compliance/requirements/{requirementID}
// requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteRequirement(ctx, tenantID, reqID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "requirement deleted",
		"request_id", requestID,
		"tenant_id", tenantID,
		"requirement_id", reqID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// HandleRunAudit handles POST /compliance/audit/run requests. An optional
// site_id query parameter narrows the run to one site.
func (h *Handler) HandleRunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	siteID, err := siteFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.RunAudit(ctx, tenantID, siteID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit run failed",
			"request_id", requestID,
			"tenant_id", tenantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "audit run completed",
		"request_id", requestID,
		"tenant_id", tenantID,
		"total", result.TotalRequirements,
		"updated", result.RequirementsUpdated,
		"failed", result.FailedUpdates,
		"compliance_rate", result.NewComplianceRate,
		"concurrent_run", result.ConcurrentRunDetected,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAuditRun(result))
}

// HandleOverdueReport handles GET /compliance/reports/overdue requests.
func (h *Handler) HandleOverdueReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	siteID, err := siteFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.OverdueInspections(ctx, tenantID, siteID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromOverdueReport(report))
}

// HandleUpcomingReport handles GET /compliance/reports/upcoming requests. An
// optional days query parameter overrides the default horizon.
func (h *Handler) HandleUpcomingReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	siteID, err := siteFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	horizonDays := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "days must be a non-negative integer"))
			return
		}
		horizonDays = n
	}

	report, err := h.service.UpcomingTasks(ctx, tenantID, siteID, horizonDays)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromUpcomingReport(report))
}

// HandleStatistics handles GET /compliance/reports/statistics requests.
// Optional from and to query parameters bound the created-at range.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantID, ok := tenantFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "tenant scope is required"))
		return
	}

	siteID, err := siteFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	filter := models.StatisticsFilter{TenantID: tenantID, SiteID: siteID}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := parseDate(raw, "from")
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.From = from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := parseDate(raw, "to")
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.To = to
	}

	report, err := h.service.Statistics(ctx, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStatistics(report))
}
