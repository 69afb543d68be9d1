package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	absenteeService absentee.Service
}

func NewReportHandler(absenteeService absentee.Service) ReportHandler {
	return &ReportHandlerImpl{
		absenteeService: absenteeService,
	}
}

// List implements ReportHandler.
func (h *ReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := absentee.ListReportsRequest{
		Department: middleware.DepartmentFromContext(r.Context()),
		Date:       r.URL.Query().Get("date"),
	}

	entries, err := h.absenteeService.ListReports(r.Context(), req)
	if err != nil {
		slog.Error("ListReports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Preview implements ReportHandler.
func (h *ReportHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.absenteeService.Preview(r.Context(), previewRequest(r))
	if err != nil {
		slog.Error("PreviewReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// Download implements ReportHandler.
func (h *ReportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.absenteeService.Download(r.Context(), previewRequest(r))
	if err != nil {
		slog.Error("DownloadReport service error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer content.Close()

	response.File(w, filename, xlsxMediaType, content)
}

func previewRequest(r *http.Request) absentee.PreviewRequest {
	return absentee.PreviewRequest{
		Department: middleware.DepartmentFromContext(r.Context()),
		Date:       r.URL.Query().Get("date"),
		Bucket:     chi.URLParam(r, "bucket"),
	}
}
