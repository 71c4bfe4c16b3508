package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/config"
	"github.com/solidus85/evvie-time-tracker/internal/api/handler"
	"github.com/solidus85/evvie-time-tracker/internal/api/middleware"
	"github.com/solidus85/evvie-time-tracker/pkg/jwt"
	"github.com/solidus85/evvie-time-tracker/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(int64(cfg.Import.MaxFileSizeMB) << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", h.Employee.Create)
				employees.PUT("/:id", h.Employee.Update)
				employees.DELETE("/:id", h.Employee.Deactivate)
			}

			children := authorized.Group("/children")
			{
				children.GET("", h.Child.List)
				children.GET("/:id", h.Child.Get)
				children.POST("", h.Child.Create)
				children.PUT("/:id", h.Child.Update)
				children.DELETE("/:id", h.Child.Deactivate)
			}

			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.List)
				shifts.GET("/:id", h.Shift.Get)
				shifts.POST("", h.Shift.Create)
				shifts.PUT("/:id", h.Shift.Update)
				shifts.DELETE("/:id", h.Shift.Delete)
				shifts.POST("/auto-generate", h.Shift.AutoGenerate)
				shifts.POST("/validate", h.Shift.Validate)
				shifts.POST("/check-overlaps", h.Shift.CheckOverlaps)
				shifts.POST("/check-exclusions", h.Shift.CheckExclusions)
				shifts.POST("/check-hour-limit", h.Shift.CheckHourLimit)
			}

			payroll := authorized.Group("/payroll")
			{
				payroll.GET("/periods", h.Payroll.ListPeriods)
				payroll.GET("/periods/current", h.Payroll.CurrentPeriod)
				payroll.GET("/periods/for-date/:date", h.Payroll.PeriodForDate)
				payroll.GET("/periods/:id/navigate", h.Payroll.NavigatePeriod)
				payroll.GET("/periods/:id/summary", h.Payroll.PeriodSummary)
				payroll.POST("/periods/configure", h.Payroll.ConfigurePeriods)
			}

			exclusions := authorized.Group("/exclusions")
			{
				exclusions.GET("", h.Payroll.ListExclusions)
				exclusions.POST("", h.Payroll.CreateExclusion)
				exclusions.DELETE("/:id", h.Payroll.DeactivateExclusion)
				exclusions.POST("/bulk/expand", h.Payroll.ExpandBulkDates)
				exclusions.POST("/bulk", h.Payroll.CreateBulkExclusions)
			}

			cfgGroup := authorized.Group("/config")
			{
				cfgGroup.GET("/hour-limits", h.Config.ListHourLimits)
				cfgGroup.POST("/hour-limits", h.Config.CreateHourLimit)
				cfgGroup.PUT("/hour-limits/:id", h.Config.UpdateHourLimit)
				cfgGroup.DELETE("/hour-limits/:id", h.Config.DeactivateHourLimit)
				cfgGroup.GET("/settings", h.Config.GetSettings)
				cfgGroup.PUT("/settings", h.Config.UpdateSettings)
			}

			imports := authorized.Group("/import")
			{
				imports.POST("/csv/validate", h.Import.ValidateCSV)
				imports.POST("/csv", h.Import.ImportCSV)
			}

			exports := authorized.Group("/export")
			{
				exports.GET("/periods/:id/summary.xlsx", h.Export.PeriodSummary)
				exports.GET("/exclusions.ics", h.Export.ExclusionCalendar)
			}
		}
	}

	return r
}
