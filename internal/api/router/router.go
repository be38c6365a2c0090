package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventmaster/config"
	"eventmaster/internal/api/handler"
	"eventmaster/internal/api/middleware"
	"eventmaster/pkg/jwt"
	"eventmaster/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup builds the gin engine with all middleware and routes attached.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// ════════════════════════════════════════════════════════════════
	// Public routes
	// ════════════════════════════════════════════════════════════════

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// Calendar apps subscribe without credentials.
	v1.GET("/calendar.ics", h.Export.CalendarFeed)

	// ════════════════════════════════════════════════════════════════
	// Authenticated routes
	// ════════════════════════════════════════════════════════════════

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)

		// ── people ──
		people := authed.Group("/people")
		{
			people.GET("", h.Person.List)
			people.GET("/:id", h.Person.Get)
			people.POST("", middleware.RoleAuth("admin", "pastor"), h.Person.Create)
			people.PUT("/:id", middleware.RoleAuth("admin", "pastor"), h.Person.Update)
			people.DELETE("/:id", middleware.RoleAuth("admin"), h.Person.Delete)
		}

		// ── groups and membership ──
		groups := authed.Group("/groups")
		{
			groups.GET("", h.Group.List)
			groups.GET("/:id", h.Group.Get)
			groups.POST("", middleware.RoleAuth("admin", "pastor"), h.Group.Create)
			groups.PUT("/:id", middleware.RoleAuth("admin", "pastor"), h.Group.Update)
			groups.DELETE("/:id", middleware.RoleAuth("admin"), h.Group.Delete)
			groups.POST("/:id/members", middleware.RoleAuth("admin", "pastor"), h.Group.AddMember)
			groups.PUT("/members/:memberId", middleware.RoleAuth("admin", "pastor"), h.Group.UpdateMember)
			groups.DELETE("/members/:memberId", middleware.RoleAuth("admin", "pastor"), h.Group.RemoveMember)
			groups.POST("/:id/roles", middleware.RoleAuth("admin", "pastor"), h.Group.BindRole)
			groups.DELETE("/:id/roles/:roleId", middleware.RoleAuth("admin", "pastor"), h.Group.UnbindRole)
		}

		// ── service roles ──
		roles := authed.Group("/service-roles")
		{
			roles.GET("", h.ServiceRole.List)
			roles.GET("/:id", h.ServiceRole.Get)
			roles.GET("/:id/recommendation", h.ServiceRole.Recommend)
			roles.POST("", middleware.RoleAuth("admin", "pastor"), h.ServiceRole.Create)
			roles.PUT("/:id", middleware.RoleAuth("admin", "pastor"), h.ServiceRole.Update)
			roles.DELETE("/:id", middleware.RoleAuth("admin"), h.ServiceRole.Delete)
		}

		// ── templates and their defaults ──
		templates := authed.Group("/templates")
		{
			templates.GET("", h.Template.List)
			templates.GET("/:id", h.Template.Get)
			templates.POST("", middleware.RoleAuth("admin", "pastor"), h.Template.Create)
			templates.PUT("/:id", middleware.RoleAuth("admin", "pastor"), h.Template.Update)
			templates.DELETE("/:id", middleware.RoleAuth("admin"), h.Template.Delete)

			templates.GET("/:id/program", h.Template.ListProgram)
			templates.POST("/:id/program", middleware.RoleAuth("admin", "pastor"), h.Template.AddProgramItem)
			templates.PUT("/:id/program/order", middleware.RoleAuth("admin", "pastor"), h.Template.ReorderProgram)
			templates.GET("/:id/staffing", h.Template.ListStaffing)
			templates.POST("/:id/staffing", middleware.RoleAuth("admin", "pastor"), h.Template.AddAssignment)
			templates.GET("/:id/tasks", h.Template.ListTasks)
			templates.POST("/:id/tasks", middleware.RoleAuth("admin", "pastor"), h.Template.AddTask)
		}

		// ── occurrences ──
		occurrences := authed.Group("/occurrences")
		{
			occurrences.GET("", h.Occurrence.List)
			occurrences.GET("/:id", h.Occurrence.Get)
			occurrences.POST("", middleware.RoleAuth("admin", "pastor"), h.Occurrence.Create)
			occurrences.POST("/series", middleware.RoleAuth("admin", "pastor"), h.Occurrence.CreateSeries)
			occurrences.PUT("/:id", middleware.RoleAuth("admin", "pastor"), h.Occurrence.Update)
			occurrences.DELETE("/:id", middleware.RoleAuth("admin"), h.Occurrence.Delete)

			occurrences.GET("/:id/program", h.Occurrence.ListProgram)
			occurrences.POST("/:id/program", middleware.RoleAuth("admin", "pastor"), h.Occurrence.AddProgramItem)
			occurrences.PUT("/:id/program/order", middleware.RoleAuth("admin", "pastor"), h.Occurrence.ReorderProgram)
			occurrences.GET("/:id/tasks", h.Occurrence.ListTasks)
			occurrences.POST("/:id/tasks", middleware.RoleAuth("admin", "pastor"), h.Occurrence.AddTask)

			occurrences.GET("/:id/staffing", h.Staffing.List)
			occurrences.POST("/:id/staffing", middleware.RoleAuth("admin", "pastor"), h.Staffing.Add)
			occurrences.POST("/:id/staffing/sync", middleware.RoleAuth("admin", "pastor"), h.Staffing.Sync)
			occurrences.GET("/:id/change-logs", h.Staffing.ListChangeLogs)

			occurrences.GET("/:id/attendance", h.Attendance.ListByOccurrence)
			occurrences.POST("/:id/roles/:roleId/attendance", h.Attendance.Respond)
		}

		// ── item-scoped mutations ──
		authed.PUT("/program-items/:id", middleware.RoleAuth("admin", "pastor"), h.Occurrence.UpdateProgramItem)
		authed.DELETE("/program-items/:id", middleware.RoleAuth("admin", "pastor"), h.Occurrence.DeleteProgramItem)
		authed.PUT("/tasks/:id", middleware.RoleAuth("admin", "pastor"), h.Occurrence.UpdateTask)
		authed.DELETE("/tasks/:id", middleware.RoleAuth("admin", "pastor"), h.Occurrence.DeleteTask)
		authed.PUT("/assignments/:id", middleware.RoleAuth("admin", "pastor"), h.Staffing.Update)
		authed.DELETE("/assignments/:id", middleware.RoleAuth("admin", "pastor"), h.Staffing.Delete)

		// ── inbox and attendance ──
		notices := authed.Group("/notices")
		{
			notices.GET("", h.Notice.List)
			notices.GET("/unread-count", h.Notice.UnreadCount)
			notices.PUT("/:id/read", h.Notice.MarkRead)
			notices.PUT("/read-all", h.Notice.MarkAllRead)
		}

		authed.GET("/attendance/mine", h.Attendance.ListMine)

		// ── exports ──
		authed.GET("/export/occurrences/:id/staffing", h.Export.ExportStaffing)
	}

	return r
}
