package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/policy"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// InstructorHandler handles instructor profile operations.
type InstructorHandler struct {
	instructors ports.InstructorService
}

func NewInstructorHandler(instructors ports.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructors: instructors}
}

// Create handles POST /api/instructors.
//
// @Summary      Create an instructor profile
// @Tags         instructors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInstructorRequest  true  "Profile details"
// @Success      201   {object}  instructorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/instructors [post]
func (h *InstructorHandler) Create(c echo.Context) error {
	var req createInstructorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	inst, err := h.instructors.Create(c.Request().Context(), ports.CreateInstructorInput{
		UserID:    req.UserID,
		Expertise: req.Expertise,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toInstructorResponse(inst))
}

// Get handles GET /api/instructors/:id.
//
// @Summary      Get an instructor
// @Tags         instructors
// @Produce      json
// @Param        id   path      string  true  "Instructor ID"
// @Success      200  {object}  instructorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/{id} [get]
func (h *InstructorHandler) Get(c echo.Context) error {
	inst, err := h.instructors.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInstructorResponse(inst))
}

// Me handles GET /api/instructors/me, the caller's own profile.
//
// @Summary      Get the caller's instructor profile
// @Tags         instructors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  instructorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/me [get]
func (h *InstructorHandler) Me(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	inst, ok, err := h.instructors.ForUser(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInstructorNotFound
	}
	return c.JSON(http.StatusOK, toInstructorResponse(inst))
}

// List handles GET /api/instructors with optional expertise and min_rating
// filters.
//
// @Summary      List instructors
// @Tags         instructors
// @Produce      json
// @Param        expertise   query     string  false  "Filter by expertise"
// @Param        min_rating  query     number  false  "Minimum aggregate rating"
// @Success      200         {array}   instructorResponse
// @Failure      422         {object}  errorResponse
// @Router       /api/instructors [get]
func (h *InstructorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if expertise := c.QueryParam("expertise"); expertise != "" {
		instructors, err := h.instructors.ListByExpertise(ctx, expertise)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toInstructorResponses(instructors))
	}

	if raw := c.QueryParam("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "min_rating must be a number")
		}
		instructors, err := h.instructors.ListByMinRating(ctx, minRating)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toInstructorResponses(instructors))
	}

	instructors, err := h.instructors.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInstructorResponses(instructors))
}

// Update handles PUT /api/instructors/:id. The profile owner or an admin
// may edit expertise and bio; the aggregate rating is never writable here.
//
// @Summary      Update an instructor profile
// @Tags         instructors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Instructor ID"
// @Param        body  body      updateInstructorRequest  true  "New expertise and bio"
// @Success      200   {object}  instructorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/instructors/{id} [put]
func (h *InstructorHandler) Update(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req updateInstructorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	inst, err := h.instructors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if !policy.AllowOwnerOrRole(principal, inst.UserID, domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	updated, err := h.instructors.UpdateProfile(ctx, inst.ID, req.Expertise, req.Bio)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInstructorResponse(updated))
}

// RefreshRating handles POST /api/instructors/:id/refresh-rating, the
// admin repair path that re-derives the aggregate from the review set.
//
// @Summary      Recompute an instructor's aggregate rating
// @Tags         instructors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Instructor ID"
// @Success      200  {object}  instructorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/{id}/refresh-rating [post]
func (h *InstructorHandler) RefreshRating(c echo.Context) error {
	inst, err := h.instructors.RefreshRating(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInstructorResponse(inst))
}

// Delete handles DELETE /api/instructors/:id.
//
// @Summary      Delete an instructor profile
// @Tags         instructors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Instructor ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/{id} [delete]
func (h *InstructorHandler) Delete(c echo.Context) error {
	if err := h.instructors.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "instructor deleted"})
}
