package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sritek/scoops-fees/internal/config"
	domainRepo "github.com/sritek/scoops-fees/internal/domain/repository"
	"github.com/sritek/scoops-fees/internal/presentation/http/handler"
	"github.com/sritek/scoops-fees/internal/presentation/http/middleware"
	"github.com/sritek/scoops-fees/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Component   *handler.ComponentHandler
	Scholarship *handler.ScholarshipHandler
	Structure   *handler.StructureHandler
	Template    *handler.TemplateHandler
	Installment *handler.InstallmentHandler
	Payment     *handler.PaymentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerComponentRoutes(protected, h)
		registerScholarshipRoutes(protected, h)
		registerStructureRoutes(protected, h, deps)
		registerTemplateRoutes(protected, h)
		registerStudentRoutes(protected, h)
		registerPaymentRoutes(protected, h, deps)
		registerBatchRoutes(protected, h)
	}

	return router
}

func registerComponentRoutes(protected *gin.RouterGroup, h *Handlers) {
	components := protected.Group("/components")
	components.Use(middleware.RequireRole("admin", "accountant"))
	{
		components.GET("", h.Component.List)
		components.POST("", h.Component.Create)
		components.GET("/:id", h.Component.Get)
		components.DELETE("/:id", h.Component.Deactivate)
	}
}

func registerScholarshipRoutes(protected *gin.RouterGroup, h *Handlers) {
	scholarships := protected.Group("/scholarships")
	scholarships.Use(middleware.RequireRole("admin", "accountant"))
	{
		scholarships.GET("", h.Scholarship.List)
		scholarships.POST("", h.Scholarship.Create)
		scholarships.DELETE("/:id", h.Scholarship.Deactivate)
	}
}

func registerStructureRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	structures := protected.Group("/fee-structures")
	structures.Use(middleware.RequireRole("admin", "accountant"))
	{
		// Build and bulk apply are session-scoped writes.
		sessionScoped := structures.Group("")
		sessionScoped.Use(middleware.SessionMiddleware())
		{
			sessionScoped.POST("", h.Structure.Build)
			sessionScoped.POST("/apply-batch", h.Structure.ApplyBatch)
		}

		structures.GET("/:id", h.Structure.Get)
		structures.GET("/:id/installments", h.Installment.ListForStructure)
		// Generation replays must not produce a second installment set.
		structures.POST("/:id/installments", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Installment.Generate)
		structures.DELETE("/:id/installments", h.Installment.Delete)
	}
}

func registerTemplateRoutes(protected *gin.RouterGroup, h *Handlers) {
	templates := protected.Group("/emi-templates")
	templates.Use(middleware.RequireRole("admin", "accountant"))
	{
		templates.GET("", h.Template.List)
		templates.POST("", h.Template.Create)
		templates.GET("/:id", h.Template.Get)
		templates.DELETE("/:id", h.Template.Deactivate)
	}
}

func registerStudentRoutes(protected *gin.RouterGroup, h *Handlers) {
	students := protected.Group("/students")
	students.Use(middleware.RequireRole("admin", "accountant"))
	students.Use(middleware.SessionMiddleware())
	{
		students.GET("/:id/scholarships", h.Scholarship.ListForStudent)
		students.POST("/:id/scholarships", h.Scholarship.Assign)
		students.DELETE("/:id/scholarships/:assignment_id", h.Scholarship.Unassign)
		students.GET("/:id/installments", h.Installment.ListForStudent)
		students.GET("/:id/fee-summary", h.Payment.StudentSummary)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequireRole("admin", "accountant"))
	{
		// Gateway confirmation retries replay the cached response instead of
		// recording twice.
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Record)
		payments.GET("/:id/receipt", h.Payment.Receipt)
	}
}

func registerBatchRoutes(protected *gin.RouterGroup, h *Handlers) {
	batches := protected.Group("/batches")
	batches.Use(middleware.RequireRole("admin", "accountant"))
	batches.Use(middleware.SessionMiddleware())
	{
		batches.GET("/:id/pending-installments", h.Payment.BatchPending)
	}
}
