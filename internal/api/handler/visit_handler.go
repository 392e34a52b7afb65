package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/api/metrics"
	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// VisitHandler handles HTTP requests for field visit operations.
type VisitHandler struct {
	visitService ports.VisitService
}

func NewVisitHandler(visitService ports.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

// Create schedules a new field visit.
//
// @Summary      Schedule a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVisitRequest  true  "Visit details"
// @Success      201   {object}  visitResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /v1/visits [post]
func (h *VisitHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	visit, err := h.visitService.Create(c.Request().Context(), user, ports.CreateVisitInput{
		ClientID:     req.ClientID,
		TechnicianID: req.TechnicianID,
		ScheduledAt:  req.ScheduledAt,
		SiteAddress:  req.SiteAddress,
		Notes:        req.Notes,
		Operations:   toEntries(req.Operations),
	})
	if err != nil {
		return err
	}

	metrics.VisitsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toVisitResponse(visit))
}

// List returns the visits visible to the actor.
//
// @Summary      List visits
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listVisitsResponse
// @Failure      401  {object}  map[string]any
// @Router       /v1/visits [get]
func (h *VisitHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	visits, err := h.visitService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}

	resp := listVisitsResponse{Data: make([]visitResponse, 0, len(visits))}
	for _, v := range visits {
		resp.Data = append(resp.Data, toVisitResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single visit by id.
//
// @Summary      Get a visit
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Visit id"
// @Success      200  {object}  visitResponse
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/visits/{id} [get]
func (h *VisitHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	visit, err := h.visitService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVisitResponse(visit))
}

// Update applies a partial update to a visit's details.
//
// @Summary      Update a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Visit id"
// @Param        body  body      updateVisitRequest  true  "Fields to change"
// @Success      200   {object}  visitResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /v1/visits/{id} [put]
func (h *VisitHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req updateVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	visit, err := h.visitService.Update(c.Request().Context(), user, c.Param("id"), ports.UpdateVisitInput{
		TechnicianID: req.TechnicianID,
		ScheduledAt:  req.ScheduledAt,
		SiteAddress:  req.SiteAddress,
		Notes:        req.Notes,
		Operations:   toEntries(req.Operations),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVisitResponse(visit))
}

// UpdateStatus moves a visit through its lifecycle.
//
// @Summary      Change a visit's status
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Visit id"
// @Param        body  body      updateVisitStatusRequest  true  "Target status"
// @Success      200   {object}  visitResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /v1/visits/{id}/status [patch]
func (h *VisitHandler) UpdateStatus(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req updateVisitStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	visit, err := h.visitService.UpdateStatus(c.Request().Context(), user, c.Param("id"), domain.VisitStatus(req.Status), req.Notes)
	if err != nil {
		return err
	}

	metrics.VisitStatusChangesTotal.WithLabelValues(string(visit.Status)).Inc()
	return c.JSON(http.StatusOK, toVisitResponse(visit))
}

// Delete removes a visit.
//
// @Summary      Delete a visit
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Visit id"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /v1/visits/{id} [delete]
func (h *VisitHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.visitService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReportSummary aggregates the actor-visible visits.
//
// @Summary      Visit report summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ReportSummary
// @Failure      401  {object}  map[string]any
// @Router       /v1/reports/summary [get]
func (h *VisitHandler) ReportSummary(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	summary, err := h.visitService.ReportSummary(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
