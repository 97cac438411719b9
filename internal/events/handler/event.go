package handler

import (
	"net/http"
	"strconv"

	"campusconnect/internal/events/service"
	apperrors "campusconnect/pkg/errors"
	httputil "campusconnect/pkg/http"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/middleware"
	"campusconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type EventHandler struct {
	service service.EventService
	log     *logger.Logger
}

func NewEventHandler(service service.EventService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.EventRequest
	if err := httputil.DecodeJSONBody(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, event); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, event); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	events, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, events, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *EventHandler) GetByDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	events, err := h.service.GetByDate(r.Context(), ps.ByName("date"))
	if err != nil {
		h.writeError(w, "GetByDate", err)
		return
	}

	if err := httputil.WriteSuccess(w, events); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByDate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	year, err := optionalInt(query.Get("year"), "year")
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}
	month, err := optionalInt(query.Get("month"), "month")
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	grid, err := h.service.Calendar(r.Context(), year, month)
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	if err := httputil.WriteSuccess(w, grid); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func optionalInt(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return n, nil
}

func (h *EventHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *EventHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/events", h.GetAll)
	router.GET("/api/v1/events/id/:id", h.GetByID)
	router.GET("/api/v1/events/date/:date", h.GetByDate)
	router.GET("/api/v1/events/calendar", h.Calendar)

	router.POST("/api/v1/events", middleware.RequireUser(h.log, h.Create))
}
