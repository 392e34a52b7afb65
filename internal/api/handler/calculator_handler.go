package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/api/metrics"
	"github.com/ecotriz/cee-visits/internal/core/cee"
)

// CalculatorHandler exposes the CEE credit calculator: the operation catalog
// and a stateless estimate endpoint.
type CalculatorHandler struct {
	ratePerMWh float64
}

func NewCalculatorHandler(ratePerMWh float64) *CalculatorHandler {
	return &CalculatorHandler{ratePerMWh: ratePerMWh}
}

type operationsResponse struct {
	Data []cee.OperationType `json:"data"`
}

type estimateRequest struct {
	Entries []operationEntryRequest `json:"entries" validate:"required,min=1"`
}

// Operations returns the supported operation sheets.
//
// @Summary      List CEE operation types
// @Tags         calculator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  operationsResponse
// @Router       /v1/calculator/operations [get]
func (h *CalculatorHandler) Operations(c echo.Context) error {
	return c.JSON(http.StatusOK, operationsResponse{Data: cee.Catalog()})
}

// Estimate values a set of operations without persisting anything.
//
// @Summary      Estimate CEE credits
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      estimateRequest  true  "Operations to value"
// @Success      200   {object}  cee.Result
// @Failure      400   {object}  map[string]any
// @Router       /v1/calculator/estimate [post]
func (h *CalculatorHandler) Estimate(c echo.Context) error {
	var req estimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := cee.Compute(toEntries(req.Entries), h.ratePerMWh)
	if err != nil {
		metrics.EstimatesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.EstimatesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, result)
}
