package app

import (
	_ "football_assistance_backend/docs"
	"football_assistance_backend/internal/middleware"
	"football_assistance_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// 1. Public routes
	a.registerPublicRoutes(router, c)

	// 2. Stateless function proxies
	a.registerFunctionRoutes(router, c, s)

	// 3. Signed-in routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth))
	{
		a.registerPlayerRoutes(authGroup, c)
		a.registerTeamRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/plans", c.payment.ListPlans)
		public.GET("/profile/options", c.profile.ProfileOptions)
	}
}

func (a *App) registerFunctionRoutes(router *gin.Engine, c *controllers, s *services) {
	functions := router.Group("/functions/v1")
	{
		functions.POST("/ai-consultation", c.function.AIConsultation)
		functions.POST("/ai-video-analysis", middleware.AuthMiddleware(s.auth), c.function.AIVideoAnalysis)
		functions.POST("/create-checkout-session", c.function.CreateCheckoutSession)
		functions.POST("/stripe-webhook", c.function.StripeWebhook)
	}
}

func (a *App) registerPlayerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)

	rg.GET("/profile", c.profile.GetProfile)
	rg.PUT("/profile", c.profile.UpdateProfile)
	rg.PUT("/profile/theme", c.profile.UpdateTheme)

	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// goals
	rg.GET("/goals", c.goal.ListGoals)
	rg.POST("/goals", c.goal.CreateGoal)
	rg.GET("/goals/export", c.goal.ExportGoals)
	rg.PATCH("/goals/:id/progress", c.goal.UpdateProgress)
	rg.DELETE("/goals/:id", c.goal.DeleteGoal)

	rg.GET("/training", c.training.ListTraining)
	rg.POST("/training", c.training.CreateTraining)
	rg.GET("/training/export", c.training.ExportTraining)
	rg.DELETE("/training/:id", c.training.DeleteTraining)

	rg.GET("/reflections", c.reflection.ListReflections)
	rg.POST("/reflections", c.reflection.CreateReflection)
	rg.GET("/reflections/export", c.reflection.ExportReflections)
	rg.DELETE("/reflections/:id", c.reflection.DeleteReflection)

	// coach
	rg.POST("/chat", c.chat.Chat)
	rg.GET("/chat/history", c.chat.History)
	rg.DELETE("/chat/history", c.chat.ClearHistory)

	rg.GET("/backup/export", c.backup.ExportBackup)
	rg.POST("/backup/import", c.backup.ImportBackup)

	rg.POST("/checkout", c.payment.Checkout)
}

func (a *App) registerTeamRoutes(rg *gin.RouterGroup, c *controllers) {
	team := rg.Group("/team")
	{
		team.GET("/members", c.team.ListMembers)
		team.POST("/members", c.team.CreateMember)
		team.PUT("/members/:id", c.team.UpdateMember)
		team.DELETE("/members/:id", c.team.DeleteMember)
		team.GET("/formations", c.team.ListFormations)
		team.GET("/formations/:id/lineup", c.team.Lineup)
	}
}
