package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// ClientHandler handles HTTP requests for tenant administration.
type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientRequest struct {
	Name         string `json:"name"          validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

type clientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type listClientsResponse struct {
	Data []clientResponse `json:"data"`
}

func toClientResponse(cl *domain.Client) clientResponse {
	return clientResponse{
		ID:           cl.ID,
		Name:         cl.Name,
		ContactEmail: cl.ContactEmail,
		Phone:        cl.Phone,
		Address:      cl.Address,
		CreatedAt:    cl.CreatedAt,
		UpdatedAt:    cl.UpdatedAt,
	}
}

func (r clientRequest) toInput() ports.ClientInput {
	return ports.ClientInput{
		Name:         r.Name,
		ContactEmail: r.ContactEmail,
		Phone:        r.Phone,
		Address:      r.Address,
	}
}

// Create registers a new tenant.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.clientService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// List returns the tenants visible to the actor.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClientsResponse
// @Failure      401  {object}  map[string]any
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	clients, err := h.clientService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}

	resp := listClientsResponse{Data: make([]clientResponse, 0, len(clients))}
	for _, cl := range clients {
		resp.Data = append(resp.Data, toClientResponse(cl))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single tenant by id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path      string  true  "Client id"
// @Success      200       {object}  clientResponse
// @Failure      401       {object}  map[string]any
// @Failure      404       {object}  map[string]any
// @Router       /v1/clients/{clientId} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.Request().Context(), user, c.Param("clientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update replaces a tenant's writable fields.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path      string         true  "Client id"
// @Param        body      body      clientRequest  true  "Client details"
// @Success      200       {object}  clientResponse
// @Failure      400       {object}  map[string]any
// @Failure      404       {object}  map[string]any
// @Router       /v1/clients/{clientId} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.clientService.Update(c.Request().Context(), c.Param("clientId"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete removes a tenant.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  path  string  true  "Client id"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /v1/clients/{clientId} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clientService.Delete(c.Request().Context(), c.Param("clientId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
