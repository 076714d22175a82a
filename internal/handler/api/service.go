package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "bookit-api/internal/handler/dto/request"
	resdto "bookit-api/internal/handler/dto/response"
	"bookit-api/internal/handler/httperr"
	"bookit-api/internal/handler/middleware"
	"bookit-api/internal/usecase/commands"
	"bookit-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiceHandler struct {
	cmds commands.ServiceCommands
	q    queries.ServiceQueries
}

func NewServiceHandler(cmds commands.ServiceCommands, q queries.ServiceQueries) *ServiceHandler {
	return &ServiceHandler{cmds: cmds, q: q}
}

// @Summary Create service
// @Description Create a new bookable service (admin only)
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequest true "Service definition"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateService(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAdminOnly):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Admin role required", nil)
		case isValidationError(err):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ServiceID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromServiceView(view))
}

// @Summary Get service
// @Description Get a service by ID
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary List services
// @Description List services with keyset pagination
// @Tags services
// @Produce json
// @Param active query bool false "Only active services"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	filters := queries.ServiceFilters{}
	if v := c.Query("active"); v != "" {
		if b, e := strconv.ParseBool(v); e == nil {
			filters.ActiveOnly = b
		}
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.List(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	resp := gin.H{"services": resdto.FromServiceList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update service
// @Description Partially update a service (admin only)
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Fields to update"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [patch]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.UpdateServiceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateService(c.Request.Context(), actor, id, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrAdminOnly):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Admin role required", nil)
		case errors.Is(err, commands.ErrServiceNotFoundWrite):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
		case isValidationError(err):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary Delete service
// @Description Delete a service with no bookings (admin only)
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	if err := h.cmds.DeleteService(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrAdminOnly):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Admin role required", nil)
		case errors.Is(err, commands.ErrServiceNotFoundWrite):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
