package handler

import (
	"net/http"

	"campusconnect/internal/bookings/service"
	httputil "campusconnect/pkg/http"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/middleware"
	"campusconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSONBody(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	bookings, total, err := h.service.ListMine(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListMine", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) DaySchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	bookings, err := h.service.DaySchedule(r.Context(), query.Get("room"), query.Get("date"))
	if err != nil {
		h.writeError(w, "DaySchedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "DaySchedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	result, err := h.service.CheckAvailability(r.Context(), query.Get("room"), query.Get("date"), query.Get("time"))
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Rooms(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Rooms()); err != nil {
		h.log.Error("failed to write success response", "handler", "Rooms", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.Rooms)
	router.GET("/api/v1/bookings/availability", h.Availability)
	router.GET("/api/v1/bookings/schedule", h.DaySchedule)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)

	router.GET("/api/v1/bookings", middleware.RequireUser(h.log, h.ListMine))
	router.POST("/api/v1/bookings", middleware.RequireUser(h.log, h.Create))
	router.DELETE("/api/v1/bookings/id/:id", middleware.RequireUser(h.log, h.Delete))
}
