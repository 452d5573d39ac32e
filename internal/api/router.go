package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studycollab/collab-back/docs"
	"github.com/studycollab/collab-back/internal/auth"
	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/config"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
	"github.com/studycollab/collab-back/internal/payment"
)

// @title           Collab Study API
// @version         1.0
// @description     Backend for the collaborative study session platform.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, intents payment.IntentCreator, rc *cache.Cache) *gin.Engine {
	auth.InitGoogle(cfg)

	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		if err := db.PingDB(); err != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", auth.RegisterHandler(cfg))
	r.POST("/auth/login", auth.LoginHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))
	r.GET("/auth/google/login", auth.GoogleLoginHandler())
	r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))

	r.GET("/public-study-sessions", PublicStudySessions)
	r.GET("/study-pagination-sessions", PaginateStudySessions)
	r.GET("/tutors", ListTutors)
	r.GET("/reviews", ListReviews)

	// Any authenticated user
	authGroup := r.Group("")
	authGroup.Use(auth.AuthMiddleware(cfg))
	{
		authGroup.GET("/users/me", GetMe)
		authGroup.GET("/users/role", GetUserRole(rc))

		authGroup.GET("/study-sessions", ListStudySessions)
		authGroup.GET("/study-sessions/:id", GetStudySession)
		// Role branching (admin approve/reject/edit, tutor resubmit)
		// happens inside the handler.
		authGroup.PATCH("/study-sessions/:id", UpdateStudySession(rc))

		authGroup.POST("/booked-sessions", CreateBooking)
		authGroup.GET("/booked-sessions", ListBookings)

		authGroup.POST("/create-payment-intent", CreatePaymentIntent(intents))
		authGroup.POST("/payments", RecordPayment)
		authGroup.GET("/payments", ListPayments)

		authGroup.POST("/reviews", CreateReview)

		authGroup.GET("/notes", ListNotes)
		authGroup.POST("/notes", CreateNote)
		authGroup.PUT("/notes/:id", UpdateNote)
		authGroup.DELETE("/notes/:id", DeleteNote)

		authGroup.GET("/materials/:sessionId", ListSessionMaterials)
	}

	// Tutor only
	tutorGroup := r.Group("")
	tutorGroup.Use(auth.AuthMiddleware(cfg), auth.RequireRole(rc, models.RoleTutor))
	{
		tutorGroup.POST("/study-sessions", CreateStudySession)
		tutorGroup.GET("/materials", ListTutorMaterials)
		tutorGroup.POST("/materials", CreateMaterial)
		tutorGroup.DELETE("/materials/:id", DeleteMaterial)
	}

	// Admin only
	adminGroup := r.Group("")
	adminGroup.Use(auth.AuthMiddleware(cfg), auth.RequireRole(rc, models.RoleAdmin))
	{
		adminGroup.GET("/users", SearchUsers)
		adminGroup.PATCH("/users/:id", UpdateUserRole(rc))
		adminGroup.GET("/user-stats", GetUserStats(rc))
		adminGroup.DELETE("/study-sessions/:id", DeleteStudySession)
		adminGroup.GET("/admin/materials", AdminListMaterials)
		adminGroup.DELETE("/admin/materials/:id", AdminDeleteMaterial)
		adminGroup.GET("/admin/export/bookings", ExportBookings)
	}

	return r
}
