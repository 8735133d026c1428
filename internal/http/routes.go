package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "team-task-hub.com/team-task-hub/internal/http/middlewares"
	"team-task-hub.com/team-task-hub/internal/services"
)

func Register(e *echo.Echo, h *Handler, profiles *services.ProfileService, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Use(ResolveActor(profiles))

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.POST("/tasks/:id/comments", h.CreateComment)
	e.GET("/tasks/:id/comments", h.ListComments)
	e.PATCH("/comments/:id", h.UpdateComment)
	e.DELETE("/comments/:id", h.DeleteComment)

	e.GET("/notifications", h.ListNotifications)
	e.POST("/notifications/:id/read", h.MarkNotificationRead)
	e.POST("/notifications/read-all", h.MarkAllNotificationsRead)

	e.GET("/analytics/stats", h.TaskStats)
	e.GET("/analytics/team", h.TeamPerformance)
	e.GET("/analytics/daily", h.DailyTaskMetrics)

	e.GET("/activity", h.RecentActivity)
	e.GET("/tasks/:id/activity", h.TaskActivity)

	e.GET("/profiles", h.ListProfiles)
	e.GET("/profiles/:id", h.GetProfile)
	e.POST("/profiles", h.CreateProfile)
	e.PUT("/profiles/:id/role", h.SetRole)

	e.GET("/nomenclature", h.GetNomenclature)
	e.PUT("/nomenclature", h.UpdateNomenclature)
}
