package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// CourseHandler handles course catalog operations.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

func bindCourseRequest(c echo.Context) (courseRequest, error) {
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}

func toCourseInput(req courseRequest) ports.CourseInput {
	return ports.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Mode:          req.Mode,
		DurationHours: req.DurationHours,
		Price:         req.Price,
	}
}

// Create handles POST /api/courses. When the creator is an instructor with
// a profile, the service attaches them to the new course.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      courseRequest  true  "Course details"
// @Success      201   {object}  courseResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	req, err := bindCourseRequest(c)
	if err != nil {
		return err
	}

	course, err := h.courses.Create(c.Request().Context(), toCourseInput(req), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// Get handles GET /api/courses/:id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  courseResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// List handles GET /api/courses. Query params narrow the catalog:
// category, mode, instructor_id, title (substring), max_price.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        category       query    string  false  "Filter by category"
// @Param        mode           query    string  false  "Filter by delivery mode"
// @Param        instructor_id  query    string  false  "Filter by teaching instructor"
// @Param        title          query    string  false  "Title substring search"
// @Param        max_price      query    number  false  "Maximum price"
// @Success      200  {array}   courseResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	filter := ports.CourseFilter{
		Category:     c.QueryParam("category"),
		Mode:         c.QueryParam("mode"),
		InstructorID: c.QueryParam("instructor_id"),
		Title:        c.QueryParam("title"),
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "max_price must be a number")
		}
		filter.MaxPrice = &maxPrice
	}

	courses, err := h.courses.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponses(courses))
}

// Update handles PUT /api/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Course ID"
// @Param        body  body      courseRequest  true  "New course details"
// @Success      200   {object}  courseResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	req, err := bindCourseRequest(c)
	if err != nil {
		return err
	}

	course, err := h.courses.Update(c.Request().Context(), c.Param("id"), toCourseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// AddInstructor handles POST /api/courses/:id/instructors/:instructorId.
// Attaching an already attached instructor is a no-op.
//
// @Summary      Attach an instructor to a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Course ID"
// @Param        instructorId  path      string  true  "Instructor ID"
// @Success      200           {object}  messageResponse
// @Failure      401           {object}  errorResponse
// @Failure      403           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/courses/{id}/instructors/{instructorId} [post]
func (h *CourseHandler) AddInstructor(c echo.Context) error {
	if err := h.courses.AddInstructor(c.Request().Context(), c.Param("id"), c.Param("instructorId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "instructor attached"})
}

// RemoveInstructor handles DELETE /api/courses/:id/instructors/:instructorId.
// Detaching an instructor that is not attached is a no-op.
//
// @Summary      Detach an instructor from a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Course ID"
// @Param        instructorId  path      string  true  "Instructor ID"
// @Success      200           {object}  messageResponse
// @Failure      401           {object}  errorResponse
// @Failure      403           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/courses/{id}/instructors/{instructorId} [delete]
func (h *CourseHandler) RemoveInstructor(c echo.Context) error {
	if err := h.courses.RemoveInstructor(c.Request().Context(), c.Param("id"), c.Param("instructorId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "instructor detached"})
}

// SetInstructors handles PUT /api/courses/:id/instructors, replacing the
// teaching set wholesale.
//
// @Summary      Replace a course's instructors
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Course ID"
// @Param        body  body      setInstructorsRequest  true  "Instructor IDs"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/courses/{id}/instructors [put]
func (h *CourseHandler) SetInstructors(c echo.Context) error {
	var req setInstructorsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.courses.SetInstructors(c.Request().Context(), c.Param("id"), req.InstructorIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "instructors replaced"})
}

// Delete handles DELETE /api/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.courses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "course deleted"})
}
