package app

import (
	"goalapp_backend/docs"
	"goalapp_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 目标
		goals := api.Group("/goals")
		{
			goals.POST("", c.goal.CreateGoal)
			goals.GET("", c.goal.GetAllGoals)
			goals.GET("/roots", c.goal.GetRootGoals)
			goals.GET("/today", c.goal.GetTodayGoals)
			goals.GET("/expired", c.goal.GetExpiredGoals)
			goals.GET("/archived", c.goal.GetArchivedGoals)
			goals.GET("/expiring-soon", c.goal.GetExpiringSoonGoals)
			goals.GET("/type/:type", c.goal.GetGoalsByType)
			goals.GET("/status/:status", c.goal.GetGoalsByStatus)

			goals.GET("/:id", c.goal.GetGoal)
			goals.PUT("/:id", c.goal.UpdateGoal)
			goals.DELETE("/:id", c.goal.DeleteGoal)
			goals.GET("/:id/children", c.goal.GetChildGoals)
			goals.GET("/:id/progress", c.goal.GetProgress)
			goals.GET("/:id/subtypes", c.goal.GetAvailableSubTypes)
			goals.POST("/:id/complete", c.goal.CompleteGoal)
			goals.POST("/:id/uncomplete", c.goal.UncompleteGoal)
			goals.POST("/:id/expire", c.goal.ExpireGoal)
			goals.POST("/:id/archive", c.goal.ArchiveGoal)
			goals.POST("/:id/extend", c.goal.ExtendGoal)
		}

		// 日常习惯
		routines := api.Group("/routines")
		{
			routines.POST("", c.routine.CreateRoutine)
			routines.GET("", c.routine.GetRoutines)
			routines.GET("/:id", c.routine.GetRoutine)
			routines.PUT("/:id", c.routine.UpdateRoutine)
			routines.DELETE("/:id", c.routine.DeleteRoutine)
			routines.POST("/:id/toggle", c.routine.ToggleActive)
			routines.POST("/:id/complete", c.routine.CompleteToday)
			routines.DELETE("/:id/complete", c.routine.UncompleteToday)
			routines.GET("/:id/completions", c.routine.GetCompletions)
		}

		// 设备令牌
		tokens := api.Group("/device-tokens")
		{
			tokens.POST("", c.deviceToken.RegisterToken)
			tokens.GET("", c.deviceToken.GetActiveTokens)
			tokens.GET("/by-token", c.deviceToken.GetByFcmToken)
			tokens.GET("/:id", c.deviceToken.GetToken)
			tokens.DELETE("/:id", c.deviceToken.DeactivateToken)
			tokens.POST("/:id/test-notification", c.deviceToken.SendTestNotification)
		}

		// 调度任务手动触发
		admin := api.Group("/admin/scheduler")
		{
			admin.POST("/expire-check", c.scheduler.RunExpireCheck)
			admin.POST("/archive-check", c.scheduler.RunArchiveCheck)
			admin.GET("/stale-completed", c.scheduler.GetStaleCompleted)
		}
	}
}
