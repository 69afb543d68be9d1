package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	UploadDaily(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	hub               *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, hub *sse.Hub) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		hub:               hub,
	}
}

// UploadDaily implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UploadDaily(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("UploadDaily parse form error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := attendance.UploadDailyRequest{
		Department: middleware.DepartmentFromContext(r.Context()),
		Date:       r.FormValue("date"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		req.File = file
		req.Filename = header.Filename
	}

	result, err := h.attendanceService.UploadDaily(r.Context(), req)
	if err != nil {
		slog.Error("UploadDaily service error", "error", err, "department", req.Department, "date", req.Date)
		response.HandleError(w, err)
		return
	}

	slog.Info("Daily attendance processed",
		"run_id", result.RunID,
		"department", result.Department,
		"date", result.Date,
		"reports", len(result.Reports),
	)
	h.hub.Publish(sse.Event{Department: result.Department, Event: eventReportsGenerated, Data: result})
	response.SuccessWithMessage(w, "Attendance merged and reports generated", result)
}
