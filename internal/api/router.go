package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plasturgie/learning-platform/internal/api/handler"
	"github.com/plasturgie/learning-platform/internal/api/middleware"
	"github.com/plasturgie/learning-platform/internal/core/domain"
	"github.com/plasturgie/learning-platform/internal/core/policy"
	"github.com/plasturgie/learning-platform/internal/core/service"
	mongodb "github.com/plasturgie/learning-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/plasturgie/learning-platform/internal/infrastructure/db/redis"
)

// Options carries the externally constructed dependencies of the router.
type Options struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Auditor   service.ReviewAuditor
	JWTSecret string
	JWTTTL    time.Duration
	Log       zerolog.Logger
}

// routePolicies is the single authorization table: every mutating or
// sensitive route is listed explicitly; a route absent from the table
// requires authentication. Catalog reads are deliberately public.
func routePolicies() map[string]policy.Policy {
	admin := domain.RoleAdmin
	instructor := domain.RoleInstructor

	return map[string]policy.Policy{
		// Auth
		"POST /api/auth/register": policy.Public(),
		"POST /api/auth/login":    policy.Public(),

		// Accounts
		"GET /api/users":                policy.RoleAnyOf(admin),
		"GET /api/users/me":             policy.Authenticated(),
		"GET /api/users/:id":            policy.OwnerOrRole(admin),
		"PUT /api/users/:id/role":       policy.RoleAnyOf(admin),
		"DELETE /api/users/:id":         policy.RoleAnyOf(admin),
		"GET /api/users/check/username": policy.Public(),
		"GET /api/users/check/email":    policy.Public(),

		// Instructor catalog
		"GET /api/instructors":             policy.Public(),
		"GET /api/instructors/:id":         policy.Public(),
		"GET /api/instructors/:id/reviews": policy.Public(),
		"GET /api/instructors/:id/rating":  policy.Public(),
		"GET /api/instructors/me":          policy.RoleAnyOf(instructor),

		// Instructor administration
		"POST /api/instructors":                    policy.RoleAnyOf(admin),
		"PUT /api/instructors/:id":                 policy.OwnerOrRole(admin),
		"POST /api/instructors/:id/refresh-rating": policy.RoleAnyOf(admin),
		"DELETE /api/instructors/:id":              policy.RoleAnyOf(admin),

		// Course catalog
		"GET /api/courses":             policy.Public(),
		"GET /api/courses/:id":         policy.Public(),
		"GET /api/courses/:id/reviews": policy.Public(),
		"GET /api/courses/:id/rating":  policy.Public(),

		// Course administration
		"POST /api/courses":                                 policy.RoleAnyOf(admin, instructor),
		"PUT /api/courses/:id":                              policy.RoleAnyOf(admin, instructor),
		"POST /api/courses/:id/instructors/:instructorId":   policy.RoleAnyOf(admin, instructor),
		"DELETE /api/courses/:id/instructors/:instructorId": policy.RoleAnyOf(admin, instructor),
		"PUT /api/courses/:id/instructors":                  policy.RoleAnyOf(admin, instructor),
		"DELETE /api/courses/:id":                           policy.RoleAnyOf(admin),

		// Reviews
		"POST /api/reviews/course":       policy.Authenticated(),
		"POST /api/reviews/instructor":   policy.Authenticated(),
		"GET /api/reviews/:id":           policy.Public(),
		"GET /api/reviews/rating/:value": policy.Public(),
		"GET /api/reviews/user/:id":      policy.Authenticated(),
		"PUT /api/reviews/:id":           policy.OwnerOrRole(admin),
		"DELETE /api/reviews/:id":        policy.OwnerOrRole(admin),
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("learning"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(opts.Mongo)
	reviews := mongodb.NewReviewRepository(opts.Mongo)
	instructors := mongodb.NewInstructorRepository(opts.Mongo)
	courses := mongodb.NewCourseRepository(opts.Mongo)
	locks := redisdb.NewSubjectLocker(opts.Redis)

	codec := service.NewTokenCodec(opts.JWTSecret, opts.JWTTTL)
	authService := service.NewAuthService(users, codec)
	userService := service.NewUserService(users, opts.Log)
	reviewService := service.NewReviewService(reviews, instructors, courses, users, locks, opts.Auditor, opts.Log)
	instructorService := service.NewInstructorService(instructors, reviews, users, locks, opts.Log)
	courseService := service.NewCourseService(courses, instructors, opts.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	instructorHandler := handler.NewInstructorHandler(instructorService)
	courseHandler := handler.NewCourseHandler(courseService)
	healthHandler := handler.NewHealthHandler(opts.Mongo, opts.Redis)

	// --- Auth pipeline: parse credentials, then enforce the policy table ---
	authenticated := e.Group("/api",
		middleware.Authenticate(codec),
		middleware.EnforcePolicy(routePolicies()),
	)

	// --- Auth routes ---
	authenticated.POST("/auth/register", authHandler.Register)
	authenticated.POST("/auth/login", authHandler.Login)

	// --- Account routes ---
	authenticated.GET("/users", userHandler.List)
	authenticated.GET("/users/me", userHandler.Me)
	authenticated.GET("/users/:id", userHandler.Get)
	authenticated.PUT("/users/:id/role", userHandler.UpdateRole)
	authenticated.DELETE("/users/:id", userHandler.Delete)
	authenticated.GET("/users/check/username", userHandler.CheckUsername)
	authenticated.GET("/users/check/email", userHandler.CheckEmail)

	// --- Instructor routes ---
	authenticated.POST("/instructors", instructorHandler.Create)
	authenticated.GET("/instructors", instructorHandler.List)
	authenticated.GET("/instructors/me", instructorHandler.Me)
	authenticated.GET("/instructors/:id", instructorHandler.Get)
	authenticated.PUT("/instructors/:id", instructorHandler.Update)
	authenticated.DELETE("/instructors/:id", instructorHandler.Delete)
	authenticated.POST("/instructors/:id/refresh-rating", instructorHandler.RefreshRating)
	authenticated.GET("/instructors/:id/reviews", reviewHandler.ListByInstructor)
	authenticated.GET("/instructors/:id/rating", reviewHandler.InstructorRating)

	// --- Course routes ---
	authenticated.POST("/courses", courseHandler.Create)
	authenticated.GET("/courses", courseHandler.List)
	authenticated.GET("/courses/:id", courseHandler.Get)
	authenticated.PUT("/courses/:id", courseHandler.Update)
	authenticated.DELETE("/courses/:id", courseHandler.Delete)
	authenticated.POST("/courses/:id/instructors/:instructorId", courseHandler.AddInstructor)
	authenticated.DELETE("/courses/:id/instructors/:instructorId", courseHandler.RemoveInstructor)
	authenticated.PUT("/courses/:id/instructors", courseHandler.SetInstructors)
	authenticated.GET("/courses/:id/reviews", reviewHandler.ListByCourse)
	authenticated.GET("/courses/:id/rating", reviewHandler.CourseRating)

	// --- Review routes ---
	authenticated.POST("/reviews/course", reviewHandler.CreateCourseReview)
	authenticated.POST("/reviews/instructor", reviewHandler.CreateInstructorReview)
	authenticated.GET("/reviews/:id", reviewHandler.Get)
	authenticated.PUT("/reviews/:id", reviewHandler.Update)
	authenticated.DELETE("/reviews/:id", reviewHandler.Delete)
	authenticated.GET("/reviews/user/:id", reviewHandler.ListByUser)
	authenticated.GET("/reviews/rating/:value", reviewHandler.ListByRating)

	// --- Operational routes (outside the policy table) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	return e
}
