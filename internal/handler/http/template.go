package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
)

const (
	maxUploadSize = 10 << 20
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type TemplateHandler interface {
	Empty(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
}

type TemplateHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewTemplateHandler(attendanceService attendance.AttendanceService) TemplateHandler {
	return &TemplateHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Empty implements TemplateHandler.
func (h *TemplateHandlerImpl) Empty(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	tmpl, err := h.attendanceService.EmptyTemplate(r.Context(), attendance.EmptyTemplateRequest{
		Month: month,
		Year:  year,
	})
	if err != nil {
		slog.Error("EmptyTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, tmpl.Filename, xlsxMediaType, bytes.NewReader(tmpl.Content))
}

// Upload implements TemplateHandler.
func (h *TemplateHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("UploadTemplate parse form error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	month, _ := strconv.Atoi(r.FormValue("month"))
	year, _ := strconv.Atoi(r.FormValue("year"))
	req := attendance.UploadTemplateRequest{
		Department: middleware.DepartmentFromContext(r.Context()),
		Month:      month,
		Year:       year,
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		req.File = file
		req.Filename = header.Filename
	}

	result, err := h.attendanceService.UploadTemplate(r.Context(), req)
	if err != nil {
		slog.Error("UploadTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Template uploaded successfully", result)
}
