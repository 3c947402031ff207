package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/policy"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// UserHandler handles account administration.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id. Users can read their own account;
// everyone else's requires ADMIN.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if !policy.AllowOwnerOrRole(principal, id, domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Me handles GET /api/users/me, the caller's own account.
//
// @Summary      Get the caller's account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateRole handles PUT /api/users/:id/role, the only path that mutates
// a user's role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.users.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// CheckUsername handles GET /api/users/check/username?username=. Public so
// the registration form can check before submitting.
//
// @Summary      Check username availability
// @Tags         users
// @Produce      json
// @Param        username  query     string  true  "Username to check"
// @Success      200       {object}  availabilityResponse
// @Failure      422       {object}  errorResponse
// @Router       /api/users/check/username [get]
func (h *UserHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username is required")
	}

	available, err := h.users.UsernameAvailable(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: available})
}

// CheckEmail handles GET /api/users/check/email?email=.
//
// @Summary      Check email availability
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "Email to check"
// @Success      200    {object}  availabilityResponse
// @Failure      422    {object}  errorResponse
// @Router       /api/users/check/email [get]
func (h *UserHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required")
	}

	available, err := h.users.EmailAvailable(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: available})
}
