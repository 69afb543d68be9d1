package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// Summary implements DashboardHandler.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := dashboard.SummaryRequest{
		Department: middleware.DepartmentFromContext(r.Context()),
		Date:       r.URL.Query().Get("date"),
	}

	summary, err := h.dashboardService.Summary(r.Context(), req)
	if err != nil {
		slog.Error("Dashboard summary error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
