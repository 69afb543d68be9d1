package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/notification"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/response"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/sse"
)

type NotificationHandler interface {
	Dispatch(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// Dispatch implements NotificationHandler.
func (h *NotificationHandlerImpl) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req notification.DispatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Dispatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Department = middleware.DepartmentFromContext(r.Context())

	result, err := h.notificationService.Dispatch(r.Context(), req)
	if err != nil {
		slog.Error("Dispatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	h.hub.Publish(sse.Event{Department: result.Department, Event: eventNotificationsDispatch, Data: result})
	response.SuccessWithMessage(w, "Notifications dispatched", result)
}
