package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plasturgie/learning-platform/internal/api/metrics"
	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/ports"
)

// ReviewHandler handles review CRUD and the average-rating reads.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func subjectType(r *domain.Review) string {
	if r.InstructorID != "" {
		return "instructor"
	}
	return "course"
}

// CreateCourseReview handles POST /api/reviews/course.
//
// @Summary      Review a course
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseReviewRequest  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/reviews/course [post]
func (h *ReviewHandler) CreateCourseReview(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req createCourseReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	review, err := h.reviews.CreateCourseReview(c.Request().Context(), ports.CreateReviewInput{
		AuthorID: principal.UserID,
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			metrics.ReviewConflictsTotal.Inc()
		}
		return err
	}
	metrics.ReviewsCreatedTotal.WithLabelValues("course").Inc()
	metrics.ReviewMutationDuration.WithLabelValues("create", "course").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// CreateInstructorReview handles POST /api/reviews/instructor.
//
// @Summary      Review an instructor
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInstructorReviewRequest  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/reviews/instructor [post]
func (h *ReviewHandler) CreateInstructorReview(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req createInstructorReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	review, err := h.reviews.CreateInstructorReview(c.Request().Context(), ports.CreateReviewInput{
		AuthorID:     principal.UserID,
		InstructorID: req.InstructorID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			metrics.ReviewConflictsTotal.Inc()
		}
		return err
	}
	metrics.ReviewsCreatedTotal.WithLabelValues("instructor").Inc()
	metrics.ReviewMutationDuration.WithLabelValues("create", "instructor").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// Get handles GET /api/reviews/:id.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  reviewResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviews.GetReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Update handles PUT /api/reviews/:id. Only the author or an admin may
// change a review; the service enforces this against the stored record.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Review ID"
// @Param        body  body      updateReviewRequest  true  "New rating and comment"
// @Success      200   {object}  reviewResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	review, err := h.reviews.UpdateReview(c.Request().Context(), ports.UpdateReviewInput{
		ReviewID: c.Param("id"),
		Rating:   req.Rating,
		Comment:  req.Comment,
		Actor:    principal,
	})
	if err != nil {
		return err
	}
	metrics.ReviewMutationDuration.WithLabelValues("update", subjectType(review)).Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Delete handles DELETE /api/reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.reviews.DeleteReview(c.Request().Context(), c.Param("id"), principal); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "review deleted"})
}

// ListByCourse handles GET /api/courses/:id/reviews.
//
// @Summary      List reviews for a course
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {array}   reviewResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id}/reviews [get]
func (h *ReviewHandler) ListByCourse(c echo.Context) error {
	reviews, err := h.reviews.ReviewsByCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListByInstructor handles GET /api/instructors/:id/reviews.
//
// @Summary      List reviews for an instructor
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Instructor ID"
// @Success      200  {array}   reviewResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/{id}/reviews [get]
func (h *ReviewHandler) ListByInstructor(c echo.Context) error {
	reviews, err := h.reviews.ReviewsByInstructor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListByUser handles GET /api/reviews/user/:id.
//
// @Summary      List reviews written by a user
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {array}   reviewResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reviews/user/{id} [get]
func (h *ReviewHandler) ListByUser(c echo.Context) error {
	reviews, err := h.reviews.ReviewsByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListByRating handles GET /api/reviews/rating/:value.
//
// @Summary      List reviews with a given rating
// @Tags         reviews
// @Produce      json
// @Param        value  path      int  true  "Rating value (1-5)"
// @Success      200    {array}   reviewResponse
// @Failure      422    {object}  errorResponse
// @Router       /api/reviews/rating/{value} [get]
func (h *ReviewHandler) ListByRating(c echo.Context) error {
	rating, err := strconv.Atoi(c.Param("value"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "rating must be an integer")
	}

	reviews, err := h.reviews.ReviewsByRating(c.Request().Context(), rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// CourseRating handles GET /api/courses/:id/rating, the on-demand mean.
//
// @Summary      Average rating for a course
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  averageRatingResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/courses/{id}/rating [get]
func (h *ReviewHandler) CourseRating(c echo.Context) error {
	avg, err := h.reviews.AverageForCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, averageRatingResponse{Rating: avg})
}

// InstructorRating handles GET /api/instructors/:id/rating.
//
// @Summary      Average rating for an instructor
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Instructor ID"
// @Success      200  {object}  averageRatingResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/instructors/{id}/rating [get]
func (h *ReviewHandler) InstructorRating(c echo.Context) error {
	avg, err := h.reviews.AverageForInstructor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, averageRatingResponse{Rating: avg})
}
