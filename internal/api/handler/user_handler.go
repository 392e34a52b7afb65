package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration and the
// self-service profile endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateUserRequest struct {
	Email     *string `json:"email,omitempty"      validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"       validate:"omitempty,oneof=ADMIN CLIENT_ADMIN TECHNICIAN"`
	ClientID  *string `json:"client_id,omitempty"`
}

type updateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

// List returns the users visible to the actor.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	details, err := h.userService.List(c.Request().Context(), user)
	if err != nil {
		return err
	}

	resp := listUsersResponse{Data: make([]userResponse, 0, len(details))}
	for _, d := range details {
		resp.Data = append(resp.Data, toUserResponse(d.User, d.Client))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	detail, err := h.userService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(detail.User, detail.Client))
}

// Update applies a partial update to a user.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ClientID:  req.ClientID,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	detail, err := h.userService.Update(c.Request().Context(), user, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(detail.User, detail.Client))
}

// Delete removes a user.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]any
// @Router       /v1/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	detail, err := h.userService.Get(c.Request().Context(), user, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(detail.User, detail.Client))
}

// UpdateProfile applies the self-service subset of user updates.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /v1/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.userService.UpdateProfile(c.Request().Context(), user, ports.UpdateProfileInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(detail.User, detail.Client))
}
