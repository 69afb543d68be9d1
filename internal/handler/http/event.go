package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/pkg/sse"
)

const (
	eventReportsGenerated      = "reports.generated"
	eventNotificationsDispatch = "notifications.dispatched"
)

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewEventHandler(hub *sse.Hub) EventHandler {
	return &EventHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// Stream pushes the department's run and dispatch events over SSE
func (h *EventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	department := middleware.DepartmentFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(department)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"department\":%q}\n\n", department)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
