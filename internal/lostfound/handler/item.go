package handler

import (
	"net/http"

	"campusconnect/internal/lostfound/service"
	httputil "campusconnect/pkg/http"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/middleware"
	"campusconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ItemHandler struct {
	service service.ItemService
	log     *logger.Logger
}

func NewItemHandler(service service.ItemService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LostFoundRequest
	if err := httputil.DecodeJSONBody(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, item); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	item, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, item); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	items, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, items, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ItemHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ItemHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/lost-found", h.GetAll)
	router.GET("/api/v1/lost-found/id/:id", h.GetByID)

	router.POST("/api/v1/lost-found", middleware.RequireUser(h.log, h.Create))
	router.DELETE("/api/v1/lost-found/id/:id", middleware.RequireUser(h.log, h.Delete))
}
