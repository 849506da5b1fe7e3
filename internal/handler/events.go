// internal/handler/events.go
package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"foyer-finance/internal/calendar"
	"foyer-finance/internal/domain"
	"foyer-finance/internal/middleware"
	"foyer-finance/internal/storage"

	"github.com/gin-gonic/gin"
)

type EventCombined interface {
	storage.DirectoryStorage
	storage.EventStorage
}

type EventHandler struct {
	store EventCombined
}

func NewEventHandler(store EventCombined) *EventHandler {
	return &EventHandler{store: store}
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Param request body EventRequest true "Event data"
// @Success 200 {object} map[string]string{"id":"..."}
// @Router /api/v1/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	ev, err := req.toDomain(orgID, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.store.CreateEvent(context.Background(), ev)
	if err != nil {
		slog.Error("Failed to create event", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdateEvent godoc
// @Summary Update a calendar event
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id path param required"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	ev, err := req.toDomain(orgID, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev.ID = id

	if err := h.store.UpdateEvent(context.Background(), ev); err != nil {
		slog.Error("Failed to update event", "error", err, "id", id, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteEvent godoc
// @Summary Delete a calendar event
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id path param required"})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	if err := h.store.DeleteEvent(context.Background(), orgID, id); err != nil {
		slog.Error("Failed to delete event", "error", err, "id", id, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListEvents godoc
// @Summary List all events of the household
// @Success 200 {array} domain.Event
// @Router /api/v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	events, err := h.store.EventsByOrganization(context.Background(), orgID)
	if err != nil {
		slog.Error("Failed to list events", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// EventsForDate godoc
// @Summary Events occurring on a given day
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {array} domain.Event
// @Router /api/v1/events/day [get]
func (h *EventHandler) EventsForDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param required in YYYY-MM-DD format"})
		return
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	events, err := h.store.EventsByOrganization(context.Background(), orgID)
	if err != nil {
		slog.Error("Failed to list events", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	out := calendar.EventsForDate(events, date)
	if out == nil {
		out = []domain.Event{}
	}
	c.JSON(http.StatusOK, out)
}

// Upcoming godoc
// @Summary Event occurrences over the next days
// @Param days query int false "Horizon in days, default 30"
// @Success 200 {array} calendar.Occurrence
// @Router /api/v1/events/upcoming [get]
func (h *EventHandler) Upcoming(c *gin.Context) {
	days := 30
	if q := c.Query("days"); q != "" {
		if _, err := fmt.Sscanf(q, "%d", &days); err != nil || days < 1 || days > 366 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 366"})
			return
		}
	}

	orgID, ok := organizationOf(c, h.store)
	if !ok {
		return
	}

	events, err := h.store.EventsByOrganization(context.Background(), orgID)
	if err != nil {
		slog.Error("Failed to list events", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	now := time.Now()
	out := calendar.Upcoming(events, now, now.AddDate(0, 0, days))
	if out == nil {
		out = []calendar.Occurrence{}
	}
	c.JSON(http.StatusOK, out)
}

// AddParticipant godoc
// @Summary Add a household member to an event
// @Param id path string true "Event ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/events/{id}/participants/{user_id} [post]
func (h *EventHandler) AddParticipant(c *gin.Context) {
	eventID, userID := c.Param("id"), c.Param("user_id")
	if eventID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and user_id path params required"})
		return
	}
	if _, ok := organizationOf(c, h.store); !ok {
		return
	}

	if err := h.store.AddParticipant(context.Background(), eventID, userID); err != nil {
		slog.Error("Failed to add participant", "error", err, "event_id", eventID, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add participant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveParticipant godoc
// @Summary Remove a household member from an event
// @Param id path string true "Event ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Router /api/v1/events/{id}/participants/{user_id} [delete]
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	eventID, userID := c.Param("id"), c.Param("user_id")
	if eventID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and user_id path params required"})
		return
	}
	if _, ok := organizationOf(c, h.store); !ok {
		return
	}

	if err := h.store.RemoveParticipant(context.Background(), eventID, userID); err != nil {
		slog.Error("Failed to remove participant", "error", err, "event_id", eventID, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove participant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Stream godoc
// @Summary Server-sent events fired whenever the calendar changes
// @Produce text/event-stream
// @Router /api/v1/events/stream [get]
func (h *EventHandler) Stream(c *gin.Context) {
	if _, ok := organizationOf(c, h.store); !ok {
		return
	}

	ctx := c.Request.Context()
	changes, err := h.store.WatchEvents(ctx)
	if err != nil {
		slog.Error("Failed to watch events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Battement de cœur pour garder les proxys éveillés
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("events_changed", "1")
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "1")
			return true
		}
	})
}

// === DTO ===

type EventRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" validate:"required,isodate"`
	EndDate     string `json:"end_date" validate:"omitempty,isodate"`
	StartTime   string `json:"start_time" validate:"omitempty,len=5"`
	Frequency   string `json:"frequency" validate:"required,oneof=once daily weekly monthly yearly"`
}

func (r EventRequest) toDomain(orgID, userID string) (domain.Event, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return domain.Event{}, fmt.Errorf("start_date must be in YYYY-MM-DD format")
	}
	ev := domain.Event{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		StartDate:      start,
		StartTime:      r.StartTime,
		Frequency:      domain.EventFrequency(r.Frequency),
		CreatedBy:      userID,
		OrganizationID: orgID,
	}
	if r.EndDate != "" {
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return domain.Event{}, fmt.Errorf("end_date must be in YYYY-MM-DD format")
		}
		if end.Before(start) {
			return domain.Event{}, fmt.Errorf("end_date must not precede start_date")
		}
		ev.EndDate = &end
	}
	return ev, nil
}
